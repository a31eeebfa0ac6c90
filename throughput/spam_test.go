// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package throughput

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ammvm/actions"
	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/codec/codectest"
	"github.com/ava-labs/ammvm/controller"
	"github.com/ava-labs/ammvm/genesis"
	"github.com/ava-labs/ammvm/storage"
	"github.com/ava-labs/ammvm/trace"
)

const initialBalance = 100_000_000

type inProcess struct {
	*controller.Controller
}

func (p inProcess) SubmitAction(ctx context.Context, actor codec.Address, action chain.Action) (codec.Typed, error) {
	return p.Execute(ctx, actor, action)
}

func newPool(t *testing.T, actor codec.Address) *controller.Controller {
	require := require.New(t)
	ctx := context.Background()

	g := genesis.Default()
	for _, symbol := range []string{"AVAX", "USDC"} {
		g.Assets = append(g.Assets, &genesis.Asset{
			Symbol:      symbol,
			Decimals:    6,
			Allocations: []*genesis.Allocation{{Address: actor, Balance: initialBalance}},
		})
	}
	genesisBytes, err := json.Marshal(g)
	require.NoError(err)
	tracer, err := trace.New(&trace.Config{})
	require.NoError(err)
	c, err := controller.New(ctx, logging.NoLog{}, tracer, memdb.New(), genesisBytes, 1, prometheus.NewRegistry())
	require.NoError(err)

	assetX, assetY := storage.AssetAddress("AVAX"), storage.AssetAddress("USDC")
	_, err = c.Execute(ctx, actor, &actions.CreatePool{FeeBps: 30, AssetX: assetX, AssetY: assetY})
	require.NoError(err)
	_, err = c.Execute(ctx, actor, &actions.AddLiquidity{
		AssetX:   assetX,
		AssetY:   assetY,
		LPAmount: 10_000_000,
		MaxX:     10_000_000,
		MaxY:     10_000_000,
	})
	require.NoError(err)
	return c
}

func TestRun(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	actor := codectest.NewRandomAddress()
	c := newPool(t, actor)

	cfg := NewDefaultConfig(actor, storage.AssetAddress("AVAX"), storage.AssetAddress("USDC"))
	cfg.SwapsPerSecond = 500
	cfg.Duration = 200 * time.Millisecond
	cfg.LogInterval = 0

	stats, err := Run(ctx, cfg, []Submitter{inProcess{c}})
	require.NoError(err)
	require.Positive(stats.Sent)
	require.Equal(stats.Sent, stats.Succeeded+stats.Failed)
	require.Zero(stats.Failed)
	require.Equal(stats.Succeeded, c.Executed()-2)

	// Swaps only move units between the actor and the pool.
	_, reserves, err := c.Pool(ctx, 0, cfg.AssetX, cfg.AssetY)
	require.NoError(err)
	bal, err := c.Balance(ctx, cfg.AssetX, actor)
	require.NoError(err)
	require.Equal(uint64(initialBalance), bal+reserves.X)
	bal, err = c.Balance(ctx, cfg.AssetY, actor)
	require.NoError(err)
	require.Equal(uint64(initialBalance), bal+reserves.Y)
}

func TestRunCountsRejections(t *testing.T) {
	require := require.New(t)
	actor := codectest.NewRandomAddress()
	c := newPool(t, actor)

	// The pool does not exist for this seed, so every swap is rejected.
	cfg := NewDefaultConfig(actor, storage.AssetAddress("AVAX"), storage.AssetAddress("USDC"))
	cfg.Seed = 1
	cfg.SwapsPerSecond = 500
	cfg.Duration = 100 * time.Millisecond
	cfg.LogInterval = 0

	stats, err := Run(context.Background(), cfg, []Submitter{inProcess{c}})
	require.NoError(err)
	require.Positive(stats.Sent)
	require.Equal(stats.Sent, stats.Failed)
	require.Zero(stats.AmountOut)
}

func TestConfigVerify(t *testing.T) {
	require := require.New(t)
	actor := codectest.NewRandomAddress()

	cfg := NewDefaultConfig(actor, storage.AssetAddress("AVAX"), storage.AssetAddress("USDC"))
	require.NoError(cfg.Verify())

	cfg.MinAmountIn = cfg.MaxAmountIn + 1
	require.ErrorIs(cfg.Verify(), ErrInvalidAmountRange)

	cfg = NewDefaultConfig(actor, storage.AssetAddress("AVAX"), storage.AssetAddress("USDC"))
	cfg.NumClients = 0
	require.ErrorIs(cfg.Verify(), ErrInvalidRate)
}
