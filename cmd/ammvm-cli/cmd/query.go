// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"math"

	"github.com/spf13/cobra"

	"github.com/ava-labs/ammvm/cli/prompt"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/utils"
)

type poolSelection struct {
	seed   uint64
	assetX codec.Address
	assetY codec.Address
}

func promptPool() (poolSelection, error) {
	var (
		sel poolSelection
		err error
	)
	sel.assetX, err = prompt.Asset("assetX")
	if err != nil {
		return sel, err
	}
	sel.assetY, err = prompt.Asset("assetY")
	if err != nil {
		return sel, err
	}
	sel.seed, err = prompt.Uint64("seed", math.MaxUint64)
	return sel, err
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Show the network and chain served by the node",
	RunE: func(*cobra.Command, []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		cli := newClient()
		networkID, chainID, err := cli.Network(ctx)
		if err != nil {
			return err
		}
		_, executed, rejected, err := cli.Ping(ctx)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}networkID:{{/}} %d\n", networkID)
		utils.Outf("{{yellow}}chainID:{{/}} %s\n", chainID)
		utils.Outf("{{yellow}}executed:{{/}} %d {{yellow}}rejected:{{/}} %d\n", executed, rejected)
		return nil
	},
}

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Show a pool and its reserves",
	RunE: func(*cobra.Command, []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		sel, err := promptPool()
		if err != nil {
			return err
		}
		pool, reserves, err := newClient().Pool(ctx, sel.seed, sel.assetX, sel.assetY)
		if err != nil {
			return err
		}
		printPool(pool, reserves)
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the balance of an account",
	RunE: func(*cobra.Command, []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		owner, err := actor()
		if err != nil {
			owner, err = prompt.Address("owner")
			if err != nil {
				return err
			}
		}
		asset, err := prompt.Asset("asset")
		if err != nil {
			return err
		}
		bal, err := newClient().Balance(ctx, asset, owner)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{yellow}}balance:{{/}} %s %s\n",
			utils.FormatAmount(bal.Amount, bal.Decimals),
			bal.Symbol,
		)
		return nil
	},
}

var quoteCmd = &cobra.Command{
	Use: "quote",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var quoteDepositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Quote the deposit required to mint LP units",
	RunE: func(*cobra.Command, []string) error {
		return quoteLiquidity(true)
	},
}

var quoteWithdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Quote the assets released by burning LP units",
	RunE: func(*cobra.Command, []string) error {
		return quoteLiquidity(false)
	},
}

func quoteLiquidity(deposit bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	cli := newClient()
	sel, err := promptPool()
	if err != nil {
		return err
	}
	_, reserves, err := cli.Pool(ctx, sel.seed, sel.assetX, sel.assetY)
	if err != nil {
		return err
	}
	lpAmount, err := prompt.Amount("lp amount", reserves.LPDecimals, math.MaxUint64)
	if err != nil {
		return err
	}
	quote := cli.QuoteWithdraw
	if deposit {
		quote = cli.QuoteDeposit
	}
	x, y, err := quote(ctx, sel.seed, sel.assetX, sel.assetY, lpAmount)
	if err != nil {
		return err
	}
	utils.Outf("{{yellow}}amountX:{{/}} %d {{yellow}}amountY:{{/}} %d\n", x, y)
	return nil
}

var quoteSwapCmd = &cobra.Command{
	Use:   "swap",
	Short: "Quote the output of a swap",
	RunE: func(*cobra.Command, []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		sel, err := promptPool()
		if err != nil {
			return err
		}
		inIsX, err := prompt.Bool("sell assetX")
		if err != nil {
			return err
		}
		amountIn, err := prompt.Uint64("amount in", math.MaxUint64)
		if err != nil {
			return err
		}
		inNet, out, err := newClient().QuoteSwap(ctx, sel.seed, sel.assetX, sel.assetY, inIsX, amountIn)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}amountInNet:{{/}} %d {{yellow}}amountOut:{{/}} %d\n", inNet, out)
		return nil
	},
}
