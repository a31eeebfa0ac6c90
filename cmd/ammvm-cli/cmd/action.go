// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//nolint:lll
package cmd

import (
	"context"
	"math"

	"github.com/spf13/cobra"

	"github.com/ava-labs/ammvm/actions"
	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/cli/prompt"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/rpc"
	"github.com/ava-labs/ammvm/utils"
)

var actionCmd = &cobra.Command{
	Use: "action",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

func submit(ctx context.Context, cli *rpc.JSONRPCClient, from codec.Address, action chain.Action) error {
	cont, err := prompt.Continue(yes)
	if !cont || err != nil {
		return err
	}
	result, err := cli.SubmitAction(ctx, from, action)
	if err != nil {
		return err
	}
	return printResult(result)
}

var createPoolCmd = &cobra.Command{
	Use:   "create-pool",
	Short: "Create an empty pool over an asset pair",
	RunE: func(*cobra.Command, []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		from, err := actor()
		if err != nil {
			return err
		}
		cli := newClient()
		g, err := cli.Genesis(ctx)
		if err != nil {
			return err
		}
		sel, err := promptPool()
		if err != nil {
			return err
		}
		maxFee := min(uint64(g.MaxFeeBps), consts.FeeDenominator)
		fee, err := prompt.Uint64("fee (bps)", maxFee)
		if err != nil {
			return err
		}
		action := &actions.CreatePool{
			Seed:   sel.seed,
			FeeBps: uint16(fee),
			AssetX: sel.assetX,
			AssetY: sel.assetY,
		}
		withAuthority, err := prompt.Bool("keep lock authority")
		if err != nil {
			return err
		}
		if withAuthority {
			action.Authority = &from
		}
		return submit(ctx, cli, from, action)
	},
}

var addLiquidityCmd = &cobra.Command{
	Use:   "add-liquidity",
	Short: "Deposit both assets of a pool in exchange for LP units",
	RunE: func(*cobra.Command, []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		from, err := actor()
		if err != nil {
			return err
		}
		cli := newClient()
		sel, err := promptPool()
		if err != nil {
			return err
		}
		_, reserves, err := cli.Pool(ctx, sel.seed, sel.assetX, sel.assetY)
		if err != nil {
			return err
		}
		balX, err := cli.Balance(ctx, sel.assetX, from)
		if err != nil {
			return err
		}
		balY, err := cli.Balance(ctx, sel.assetY, from)
		if err != nil {
			return err
		}

		lpAmount, err := prompt.Amount("lp amount", reserves.LPDecimals, math.MaxUint64)
		if err != nil {
			return err
		}
		action := &actions.AddLiquidity{
			Seed:     sel.seed,
			AssetX:   sel.assetX,
			AssetY:   sel.assetY,
			LPAmount: lpAmount,
		}
		if reserves.LPSupply == 0 {
			// The first deposit sets the price.
			utils.Outf("{{yellow}}pool is empty, the deposit sets the price{{/}}\n")
			action.MaxX, err = prompt.Amount("amount of "+balX.Symbol, balX.Decimals, balX.Amount)
			if err != nil {
				return err
			}
			action.MaxY, err = prompt.Amount("amount of "+balY.Symbol, balY.Decimals, balY.Amount)
			if err != nil {
				return err
			}
		} else {
			x, y, err := cli.QuoteDeposit(ctx, sel.seed, sel.assetX, sel.assetY, lpAmount)
			if err != nil {
				return err
			}
			action.MaxX = maxWithSlippage(x, slippageBps)
			action.MaxY = maxWithSlippage(y, slippageBps)
			utils.Outf(
				"{{yellow}}deposit:{{/}} %s %s (max %s) {{yellow}}and{{/}} %s %s (max %s)\n",
				utils.FormatAmount(x, balX.Decimals), balX.Symbol, utils.FormatAmount(action.MaxX, balX.Decimals),
				utils.FormatAmount(y, balY.Decimals), balY.Symbol, utils.FormatAmount(action.MaxY, balY.Decimals),
			)
		}
		return submit(ctx, cli, from, action)
	},
}

var removeLiquidityCmd = &cobra.Command{
	Use:   "remove-liquidity",
	Short: "Burn LP units for a share of both reserves",
	RunE: func(*cobra.Command, []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		from, err := actor()
		if err != nil {
			return err
		}
		cli := newClient()
		sel, err := promptPool()
		if err != nil {
			return err
		}
		pool, reserves, err := cli.Pool(ctx, sel.seed, sel.assetX, sel.assetY)
		if err != nil {
			return err
		}
		lpBal, err := cli.Balance(ctx, pool.LPAsset, from)
		if err != nil {
			return err
		}
		lpAmount, err := prompt.Amount("lp amount", reserves.LPDecimals, lpBal.Amount)
		if err != nil {
			return err
		}
		x, y, err := cli.QuoteWithdraw(ctx, sel.seed, sel.assetX, sel.assetY, lpAmount)
		if err != nil {
			return err
		}
		action := &actions.RemoveLiquidity{
			Seed:     sel.seed,
			AssetX:   sel.assetX,
			AssetY:   sel.assetY,
			LPAmount: lpAmount,
			MinX:     minWithSlippage(x, slippageBps),
			MinY:     minWithSlippage(y, slippageBps),
		}
		utils.Outf(
			"{{yellow}}withdraw:{{/}} x=%d (min %d) y=%d (min %d)\n",
			x, action.MinX, y, action.MinY,
		)
		return submit(ctx, cli, from, action)
	},
}

var swapCmd = &cobra.Command{
	Use:   "swap",
	Short: "Sell one asset of a pool for the other",
	RunE: func(*cobra.Command, []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		from, err := actor()
		if err != nil {
			return err
		}
		cli := newClient()
		sel, err := promptPool()
		if err != nil {
			return err
		}
		inIsX, err := prompt.Bool("sell assetX")
		if err != nil {
			return err
		}
		assetIn := sel.assetY
		if inIsX {
			assetIn = sel.assetX
		}
		bal, err := cli.Balance(ctx, assetIn, from)
		if err != nil {
			return err
		}
		amountIn, err := prompt.Amount("amount of "+bal.Symbol, bal.Decimals, bal.Amount)
		if err != nil {
			return err
		}
		inNet, out, err := cli.QuoteSwap(ctx, sel.seed, sel.assetX, sel.assetY, inIsX, amountIn)
		if err != nil {
			return err
		}
		action := &actions.Swap{
			Seed:         sel.seed,
			AssetX:       sel.assetX,
			AssetY:       sel.assetY,
			AssetInIsX:   inIsX,
			AmountIn:     amountIn,
			MinAmountOut: minWithSlippage(out, slippageBps),
		}
		utils.Outf(
			"{{yellow}}amountInNet:{{/}} %d {{yellow}}amountOut:{{/}} %d {{yellow}}minAmountOut:{{/}} %d\n",
			inNet, out, action.MinAmountOut,
		)
		return submit(ctx, cli, from, action)
	},
}
