// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/ammvm/actions"
	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/codec/codectest"
	"github.com/ava-labs/ammvm/genesis"
	"github.com/ava-labs/ammvm/storage"
	"github.com/ava-labs/ammvm/trace"
)

const initialBalance = 100_000_000

var (
	assetX = storage.AssetAddress("AVAX")
	assetY = storage.AssetAddress("USDC")
)

func testGenesis(t *testing.T, holders ...codec.Address) []byte {
	g := genesis.Default()
	for _, a := range []struct {
		symbol   string
		decimals uint8
	}{{"AVAX", 9}, {"USDC", 6}} {
		asset := &genesis.Asset{Symbol: a.symbol, Decimals: a.decimals}
		for _, h := range holders {
			asset.Allocations = append(asset.Allocations, &genesis.Allocation{Address: h, Balance: initialBalance})
		}
		g.Assets = append(g.Assets, asset)
	}
	b, err := json.Marshal(g)
	require.NoError(t, err)
	return b
}

func newController(t *testing.T, db Database, genesisBytes []byte) *Controller {
	require := require.New(t)
	tracer, err := trace.New(&trace.Config{})
	require.NoError(err)
	c, err := New(context.Background(), logging.NoLog{}, tracer, db, genesisBytes, 1, prometheus.NewRegistry())
	require.NoError(err)
	return c
}

func seedPool(t *testing.T, c *Controller, actor codec.Address, seed uint64, reserve uint64) {
	require := require.New(t)
	ctx := context.Background()
	_, err := c.Execute(ctx, actor, &actions.CreatePool{Seed: seed, FeeBps: 30, AssetX: assetX, AssetY: assetY})
	require.NoError(err)
	_, err = c.Execute(ctx, actor, &actions.AddLiquidity{Seed: seed, AssetX: assetX, AssetY: assetY, LPAmount: reserve, MaxX: reserve, MaxY: reserve})
	require.NoError(err)
}

func TestGenesis(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	actor := codectest.NewRandomAddress()
	db := memdb.New()
	genesisBytes := testGenesis(t, actor)

	c := newController(t, db, genesisBytes)
	bal, err := c.Balance(ctx, assetX, actor)
	require.NoError(err)
	require.Equal(uint64(initialBalance), bal)
	asset, err := c.Asset(ctx, assetY)
	require.NoError(err)
	require.Equal(uint8(6), asset.Decimals)
	require.Equal(uint64(initialBalance), asset.Supply)

	// Reopening with the same genesis does not mint again.
	c = newController(t, db, genesisBytes)
	asset, err = c.Asset(ctx, assetY)
	require.NoError(err)
	require.Equal(uint64(initialBalance), asset.Supply)

	tracer, err := trace.New(&trace.Config{})
	require.NoError(err)
	_, err = New(ctx, logging.NoLog{}, tracer, db, testGenesis(t), 1, prometheus.NewRegistry())
	require.ErrorIs(err, storage.ErrGenesisMismatch)
}

func TestExecute(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	actor := codectest.NewRandomAddress()
	c := newController(t, memdb.New(), testGenesis(t, actor))
	seedPool(t, c, actor, 0, 1_000_000)

	net, out, err := c.QuoteSwap(ctx, 0, assetX, assetY, true, 10_000)
	require.NoError(err)
	require.Equal(uint64(9_970), net)
	require.Equal(uint64(9_871), out)

	result, err := c.Execute(ctx, actor, &actions.Swap{AssetX: assetX, AssetY: assetY, AssetInIsX: true, AmountIn: 10_000, MinAmountOut: out})
	require.NoError(err)
	require.Equal(out, result.(*actions.SwapResult).AmountOut)

	pool, reserves, err := c.Pool(ctx, 0, assetX, assetY)
	require.NoError(err)
	require.Equal(uint16(30), pool.FeeBps)
	require.Equal(storage.Reserves{X: 1_010_000, Y: 990_129, LPSupply: 1_000_000, LPDecimals: storage.LPDecimals}, reserves)

	require.Equal(uint64(3), c.Executed())
	require.InDelta(1, testutil.ToFloat64(c.metrics.swap), 0)
	require.InDelta(1, testutil.ToFloat64(c.metrics.createPool), 0)
	require.InDelta(1, testutil.ToFloat64(c.metrics.addLiquidity), 0)
	require.InDelta(
		actions.CreatePoolComputeUnits+actions.AddLiquidityComputeUnits+actions.SwapComputeUnits,
		testutil.ToFloat64(c.metrics.computeUnits),
		0,
	)
}

func TestComputeUnitsLimit(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	actor := codectest.NewRandomAddress()

	g := genesis.Default()
	g.BaseComputeUnits = 4
	g.MaxActionComputeUnits = 12
	genesisBytes, err := json.Marshal(g)
	require.NoError(err)
	c := newController(t, memdb.New(), genesisBytes)

	create := &actions.CreatePool{FeeBps: 30, AssetX: assetX, AssetY: assetY}
	require.Equal(uint64(20), create.ComputeUnits(c.Rules()))
	_, err = c.Execute(ctx, actor, create)
	require.ErrorIs(err, chain.ErrComputeUnitsExceeded)
	require.Equal(uint64(1), c.Rejected())
	require.Zero(testutil.ToFloat64(c.metrics.computeUnits))

	_, _, err = c.Pool(ctx, 0, assetX, assetY)
	require.ErrorIs(err, storage.ErrPoolNotFound)
}

func TestRejectedLeavesStateUnchanged(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	actor := codectest.NewRandomAddress()
	c := newController(t, memdb.New(), testGenesis(t, actor))
	seedPool(t, c, actor, 0, 1_000_000)

	_, before, err := c.Pool(ctx, 0, assetX, assetY)
	require.NoError(err)
	balBefore, err := c.Balance(ctx, assetX, actor)
	require.NoError(err)

	for _, tt := range []struct {
		action chain.Action
		err    error
	}{
		{&actions.Swap{AssetX: assetX, AssetY: assetY, AssetInIsX: true, AmountIn: 10_000, MinAmountOut: 9_872}, actions.ErrOutputSlippageExceeded},
		{&actions.Swap{AssetX: assetX, AssetY: assetY, AssetInIsX: true}, actions.ErrOutputInvalidAmount},
		{&actions.AddLiquidity{AssetX: assetX, AssetY: assetY, LPAmount: 10, MaxX: 9, MaxY: 10}, actions.ErrOutputSlippageExceeded},
		{&actions.RemoveLiquidity{AssetX: assetX, AssetY: assetY, LPAmount: 10, MinX: 11}, actions.ErrOutputSlippageExceeded},
		{&actions.CreatePool{FeeBps: 30, AssetX: assetX, AssetY: assetY}, storage.ErrPoolAlreadyExists},
		{&actions.Swap{Seed: 1, AssetX: assetX, AssetY: assetY, AmountIn: 1}, storage.ErrPoolNotFound},
	} {
		_, err := c.Execute(ctx, actor, tt.action)
		require.ErrorIs(err, tt.err)
	}

	_, after, err := c.Pool(ctx, 0, assetX, assetY)
	require.NoError(err)
	require.Equal(before, after)
	balAfter, err := c.Balance(ctx, assetX, actor)
	require.NoError(err)
	require.Equal(balBefore, balAfter)
	require.Equal(uint64(6), c.Rejected())
	require.InDelta(6, testutil.ToFloat64(c.metrics.rejected), 0)
}

func TestExecuteBytes(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	actor := codectest.NewRandomAddress()
	c := newController(t, memdb.New(), testGenesis(t, actor))

	b, err := chain.MarshalAction(&actions.CreatePool{Seed: 5, FeeBps: 1, AssetX: assetY, AssetY: assetX})
	require.NoError(err)
	result, err := c.ExecuteBytes(ctx, actor, b)
	require.NoError(err)
	require.Equal(storage.PoolAddress(5, assetY, assetX), result.(*actions.CreatePoolResult).Pool)

	_, err = c.ExecuteBytes(ctx, actor, b[:len(b)-1])
	require.ErrorIs(err, wrappers.ErrInsufficientLength)
}

// Concurrent traders on two pools must conserve every asset.
func TestConcurrentSwapsConserveSupply(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	traders := make([]codec.Address, 8)
	for i := range traders {
		traders[i] = codectest.NewRandomAddress()
	}
	c := newController(t, memdb.New(), testGenesis(t, traders...))
	seedPool(t, c, traders[0], 0, 10_000_000)
	seedPool(t, c, traders[1], 1, 10_000_000)

	var eg errgroup.Group
	for i, trader := range traders {
		trader := trader
		seed := uint64(i % 2)
		eg.Go(func() error {
			for j := 0; j < 50; j++ {
				swap := &actions.Swap{Seed: seed, AssetX: assetX, AssetY: assetY, AssetInIsX: j%2 == 0, AmountIn: 1_000}
				if _, err := c.Execute(ctx, trader, swap); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(eg.Wait())

	for _, asset := range []codec.Address{assetX, assetY} {
		total := uint64(0)
		for _, trader := range traders {
			bal, err := c.Balance(ctx, asset, trader)
			require.NoError(err)
			total += bal
		}
		for seed := uint64(0); seed < 2; seed++ {
			bal, err := c.Balance(ctx, asset, storage.PoolAddress(seed, assetX, assetY))
			require.NoError(err)
			total += bal
		}
		require.Equal(uint64(initialBalance*len(traders)), total)
	}
	require.Equal(uint64(4+len(traders)*50), c.Executed())
}
