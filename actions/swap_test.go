// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ammvm/chain/chaintest"
	"github.com/ava-labs/ammvm/pricing"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/storage"
)

func TestSwap(t *testing.T) {
	tests := []chaintest.ActionTest{
		{
			Name:        "pool must exist",
			Action:      &Swap{Seed: 1, AssetX: assetX, AssetY: assetY, AssetInIsX: true, AmountIn: 1},
			State:       newStore(t),
			Actor:       actor,
			ExpectedErr: storage.ErrPoolNotFound,
		},
		{
			Name:        "pool locked",
			Action:      &Swap{AssetX: assetX, AssetY: assetY, AssetInIsX: true, AmountIn: 10_000},
			State:       newLockedPool(t),
			Actor:       actor,
			ExpectedErr: ErrOutputPoolLocked,
		},
		{
			Name:        "zero input",
			Action:      &Swap{AssetX: assetX, AssetY: assetY, AssetInIsX: true},
			State:       newBalancedPool(t),
			Actor:       actor,
			ExpectedErr: ErrOutputInvalidAmount,
		},
		{
			Name:        "input consumed by fee",
			Action:      &Swap{AssetX: assetX, AssetY: assetY, AssetInIsX: true, AmountIn: 1},
			State:       newBalancedPool(t),
			Actor:       actor,
			ExpectedErr: ErrOutputInvalidAmount,
		},
		{
			Name:        "output rounds to zero",
			Action:      &Swap{AssetX: assetX, AssetY: assetY, AssetInIsX: true, AmountIn: 1},
			State:       newPool(t, 0, 1_000, 1, 1),
			Actor:       actor,
			ExpectedErr: ErrOutputInvalidAmount,
		},
		{
			Name:        "empty pool",
			Action:      &Swap{AssetX: assetX, AssetY: assetY, AssetInIsX: true, AmountIn: 10_000},
			State:       newPool(t, initialFee, 0, 0, 0),
			Actor:       actor,
			ExpectedErr: pricing.ErrReservesZero,
		},
		{
			Name:        "output below min",
			Action:      &Swap{AssetX: assetX, AssetY: assetY, AssetInIsX: true, AmountIn: 10_000, MinAmountOut: 9_872},
			State:       newBalancedPool(t),
			Actor:       actor,
			ExpectedErr: ErrOutputSlippageExceeded,
		},
		{
			Name:        "insufficient balance",
			Action:      &Swap{AssetX: assetX, AssetY: assetY, AssetInIsX: true, AmountIn: 10_000},
			State:       newBalancedPool(t),
			Actor:       stranger,
			ExpectedErr: storage.ErrInvalidBalance,
		},
		{
			Name:   "sell x",
			Action: &Swap{AssetX: assetX, AssetY: assetY, AssetInIsX: true, AmountIn: 10_000, MinAmountOut: 9_871},
			State:  newBalancedPool(t),
			Actor:  actor,
			ExpectedOutputs: &SwapResult{
				AssetIn:     assetX,
				AssetOut:    assetY,
				AmountIn:    10_000,
				AmountInNet: 9_970,
				AmountOut:   9_871,
			},
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				requireReserves(ctx, t, m, storage.Reserves{X: 1_010_000, Y: 990_129, LPSupply: initialReserve, LPDecimals: storage.LPDecimals})
				requireBalance(ctx, t, m, assetX, actor, initialBalance-initialReserve-10_000)
				requireBalance(ctx, t, m, assetY, actor, initialBalance-initialReserve+9_871)
			},
		},
		{
			Name:   "sell y",
			Action: &Swap{AssetX: assetX, AssetY: assetY, AmountIn: 10_000},
			State:  newBalancedPool(t),
			Actor:  actor,
			ExpectedOutputs: &SwapResult{
				AssetIn:     assetY,
				AssetOut:    assetX,
				AmountIn:    10_000,
				AmountInNet: 9_970,
				AmountOut:   9_871,
			},
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				requireReserves(ctx, t, m, storage.Reserves{X: 990_129, Y: 1_010_000, LPSupply: initialReserve, LPDecimals: storage.LPDecimals})
			},
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}

// Fees stay in the pool, so round trips of swaps only grow the invariant.
func TestSwapFeesAccrueToPool(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	store := newBalancedPool(t)

	for i := 0; i < 10; i++ {
		out, err := (&Swap{AssetX: assetX, AssetY: assetY, AssetInIsX: true, AmountIn: 10_000}).Execute(ctx, rules, store, 0, actor, ids.Empty)
		require.NoError(err)
		back := out.(*SwapResult).AmountOut
		_, err = (&Swap{AssetX: assetX, AssetY: assetY, AmountIn: back}).Execute(ctx, rules, store, 0, actor, ids.Empty)
		require.NoError(err)
	}

	pool, err := storage.GetPool(ctx, store, poolAddress)
	require.NoError(err)
	reserves, err := storage.GetReserves(ctx, store, pool)
	require.NoError(err)
	require.False(pricing.Invariant(reserves.X, reserves.Y).Lt(pricing.Invariant(initialReserve, initialReserve)))
	require.Greater(reserves.X, uint64(initialReserve))
}

func BenchmarkSwap(b *testing.B) {
	bench := &chaintest.ActionBenchmark{
		Name:   "swap",
		Action: &Swap{AssetX: assetX, AssetY: assetY, AssetInIsX: true, AmountIn: 10_000},
		Rules:  rules,
		CreateState: func() state.Mutable {
			return newBalancedPool(b)
		},
		Actor: actor,
		ExpectedOutput: &SwapResult{
			AssetIn:     assetX,
			AssetOut:    assetY,
			AmountIn:    10_000,
			AmountInNet: 9_970,
			AmountOut:   9_871,
		},
	}
	bench.Run(context.Background(), b)
}
