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

func TestRemoveLiquidity(t *testing.T) {
	tests := []chaintest.ActionTest{
		{
			Name:        "pool must exist",
			Action:      &RemoveLiquidity{Seed: 1, AssetX: assetX, AssetY: assetY, LPAmount: 1, MinX: 1},
			State:       newStore(t),
			Actor:       actor,
			ExpectedErr: storage.ErrPoolNotFound,
		},
		{
			Name:        "pool locked",
			Action:      &RemoveLiquidity{AssetX: assetX, AssetY: assetY, LPAmount: 1, MinX: 1},
			State:       newLockedPool(t),
			Actor:       actor,
			ExpectedErr: ErrOutputPoolLocked,
		},
		{
			Name:        "zero lp amount",
			Action:      &RemoveLiquidity{AssetX: assetX, AssetY: assetY, MinX: 1},
			State:       newBalancedPool(t),
			Actor:       actor,
			ExpectedErr: ErrOutputInvalidAmount,
		},
		{
			Name:        "no minimum set",
			Action:      &RemoveLiquidity{AssetX: assetX, AssetY: assetY, LPAmount: 1},
			State:       newBalancedPool(t),
			Actor:       actor,
			ExpectedErr: ErrOutputInvalidAmount,
		},
		{
			Name:        "burn exceeds supply",
			Action:      &RemoveLiquidity{AssetX: assetX, AssetY: assetY, LPAmount: initialReserve + 1, MinX: 1},
			State:       newBalancedPool(t),
			Actor:       actor,
			ExpectedErr: pricing.ErrBurnExceedsSupply,
		},
		{
			Name:        "empty pool",
			Action:      &RemoveLiquidity{AssetX: assetX, AssetY: assetY, LPAmount: 1, MinX: 1},
			State:       newPool(t, initialFee, 0, 0, 0),
			Actor:       actor,
			ExpectedErr: pricing.ErrZeroSupply,
		},
		{
			Name:        "withdraw below min",
			Action:      &RemoveLiquidity{AssetX: assetX, AssetY: assetY, LPAmount: 1, MinX: 1, MinY: 1},
			State:       newPool(t, initialFee, 1_000, 3, 1_000),
			Actor:       actor,
			ExpectedErr: ErrOutputSlippageExceeded,
		},
		{
			Name:        "no lp held",
			Action:      &RemoveLiquidity{AssetX: assetX, AssetY: assetY, LPAmount: 1, MinX: 1},
			State:       newBalancedPool(t),
			Actor:       stranger,
			ExpectedErr: storage.ErrInvalidBalance,
		},
		{
			// floor(1 * 3 / 1000) = 0
			Name:   "withdraw rounds down",
			Action: &RemoveLiquidity{AssetX: assetX, AssetY: assetY, LPAmount: 1, MinX: 1},
			State:  newPool(t, initialFee, 1_000, 3, 1_000),
			Actor:  actor,
			ExpectedOutputs: &RemoveLiquidityResult{
				AmountX:  1,
				AmountY:  0,
				LPBurned: 1,
			},
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				requireReserves(ctx, t, m, storage.Reserves{X: 999, Y: 3, LPSupply: 999, LPDecimals: storage.LPDecimals})
				requireBalance(ctx, t, m, lpAsset, actor, 999)
			},
		},
		{
			Name:   "withdraw everything",
			Action: &RemoveLiquidity{AssetX: assetX, AssetY: assetY, LPAmount: initialReserve, MinX: initialReserve, MinY: initialReserve},
			State:  newBalancedPool(t),
			Actor:  actor,
			ExpectedOutputs: &RemoveLiquidityResult{
				AmountX:  initialReserve,
				AmountY:  initialReserve,
				LPBurned: initialReserve,
			},
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				requireReserves(ctx, t, m, storage.Reserves{LPDecimals: storage.LPDecimals})
				requireBalance(ctx, t, m, assetX, actor, initialBalance)
				requireBalance(ctx, t, m, assetY, actor, initialBalance)
				requireBalance(ctx, t, m, lpAsset, actor, 0)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}

// A drained pool accepts a fresh first deposit at a new price.
func TestRemoveThenReseed(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	store := newBalancedPool(t)

	_, err := (&RemoveLiquidity{AssetX: assetX, AssetY: assetY, LPAmount: initialReserve, MinX: 1}).Execute(ctx, rules, store, 0, actor, ids.Empty)
	require.NoError(err)

	out, err := (&AddLiquidity{AssetX: assetX, AssetY: assetY, LPAmount: 10, MaxX: 40, MaxY: 20}).Execute(ctx, rules, store, 0, actor, ids.Empty)
	require.NoError(err)
	require.Equal(&AddLiquidityResult{AmountX: 40, AmountY: 20, LPMinted: 10}, out)
	requireReserves(ctx, t, store, storage.Reserves{X: 40, Y: 20, LPSupply: 10, LPDecimals: storage.LPDecimals})
}
