// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ava-labs/ammvm/cli/prompt"
	"github.com/ava-labs/ammvm/throughput"
	"github.com/ava-labs/ammvm/utils"
)

var (
	swapsPerSecond int
	numClients     int
	loadDuration   time.Duration
	minAmountIn    uint64
	maxAmountIn    uint64
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Issue alternating swaps against a pool and report throughput",
	RunE: func(cmd *cobra.Command, _ []string) error {
		from, err := actor()
		if err != nil {
			return err
		}
		sel, err := promptPool()
		if err != nil {
			return err
		}
		cfg := throughput.NewDefaultConfig(from, sel.assetX, sel.assetY)
		cfg.Seed = sel.seed
		cfg.SwapsPerSecond = swapsPerSecond
		cfg.NumClients = numClients
		cfg.Duration = loadDuration
		cfg.MinAmountIn = minAmountIn
		cfg.MaxAmountIn = maxAmountIn
		if err := cfg.Verify(); err != nil {
			return err
		}
		cont, err := prompt.Continue(yes)
		if !cont || err != nil {
			return err
		}

		clients := make([]throughput.Submitter, numClients)
		for i := range clients {
			clients[i] = newClient()
		}
		stats, err := throughput.Run(cmd.Context(), cfg, clients)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{green}}sent:{{/}} %d {{green}}succeeded:{{/}} %d {{red}}failed:{{/}} %d\n",
			stats.Sent,
			stats.Succeeded,
			stats.Failed,
		)
		return nil
	},
}

func init() {
	loadCmd.PersistentFlags().StringVar(&uri, "uri", defaultURI, "ammvm node uri")
	loadCmd.PersistentFlags().StringVar(&actorHex, "actor", "", "address the swaps execute as")
	loadCmd.PersistentFlags().BoolVar(&yes, "yes", false, "skip confirmation")
	loadCmd.PersistentFlags().IntVar(&swapsPerSecond, "swaps-per-second", 100, "target issuance rate")
	loadCmd.PersistentFlags().IntVar(&numClients, "clients", 4, "concurrent rpc clients")
	loadCmd.PersistentFlags().DurationVar(&loadDuration, "duration", 10*time.Second, "how long to issue swaps")
	loadCmd.PersistentFlags().Uint64Var(&minAmountIn, "min-amount-in", 1_000, "smallest swap input in base units")
	loadCmd.PersistentFlags().Uint64Var(&maxAmountIn, "max-amount-in", 10_000, "largest swap input in base units")
}
