// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "ammvm-cli" serves an ammvm node and drives it from the command line.
package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/rpc"
)

const (
	defaultURI      = "http://127.0.0.1:9650"
	requestTimeout  = 30 * time.Second
	defaultSlippage = 50
)

var (
	uri         string
	actorHex    string
	yes         bool
	slippageBps uint64

	configFile string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:        "ammvm-cli",
		Short:      "AMMVM CLI",
		SuggestFor: []string{"ammvm-cli", "ammvmcli"},
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		serveCmd,
		simulateCmd,

		networkCmd,
		poolCmd,
		balanceCmd,
		quoteCmd,

		actionCmd,
		loadCmd,
	)

	// node
	serveCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		"",
		"config file path (.json or .yaml)",
	)
	simulateCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		"info",
		"log level for the simulated controller",
	)

	// client
	for _, c := range []*cobra.Command{poolCmd, balanceCmd, quoteCmd, actionCmd} {
		c.PersistentFlags().StringVar(
			&uri,
			"uri",
			defaultURI,
			"ammvm node uri",
		)
	}
	balanceCmd.PersistentFlags().StringVar(
		&actorHex,
		"actor",
		"",
		"account address (defaults to a prompt)",
	)
	actionCmd.PersistentFlags().StringVar(
		&actorHex,
		"actor",
		"",
		"address the action executes as",
	)
	actionCmd.PersistentFlags().BoolVar(
		&yes,
		"yes",
		false,
		"skip confirmation",
	)
	actionCmd.PersistentFlags().Uint64Var(
		&slippageBps,
		"slippage-bps",
		defaultSlippage,
		"tolerance applied to quoted amounts, in basis points",
	)

	// quote
	quoteCmd.AddCommand(
		quoteDepositCmd,
		quoteWithdrawCmd,
		quoteSwapCmd,
	)

	// action
	actionCmd.AddCommand(
		createPoolCmd,
		addLiquidityCmd,
		removeLiquidityCmd,
		swapCmd,
	)
}

func newClient() *rpc.JSONRPCClient {
	return rpc.NewJSONRPCClient(uri)
}

func actor() (codec.Address, error) {
	if len(actorHex) == 0 {
		return codec.EmptyAddress, ErrMissingActor
	}
	return codec.ParseAddress(actorHex)
}

func Execute() error {
	return rootCmd.Execute()
}
