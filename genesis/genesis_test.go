// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ammvm/chain/chaintest"
	"github.com/ava-labs/ammvm/codec/codectest"
	"github.com/ava-labs/ammvm/storage"
	"github.com/ava-labs/ammvm/trace"
)

func TestNewDefaults(t *testing.T) {
	require := require.New(t)

	g, err := New(nil)
	require.NoError(err)
	require.Equal(Default(), g)

	r := g.Rules(1, ids.Empty)
	require.Equal(uint8(storage.LPDecimals), r.GetLPDecimals())
	require.Equal(uint16(10_000), r.GetMaxFeeBps())
	require.Equal(uint32(1), r.GetNetworkID())
	require.Equal(ids.Empty, r.GetChainID())
	require.Equal(uint64(1), r.GetBaseComputeUnits())
	require.Equal(uint64(16), r.GetMaxActionComputeUnits())
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name string
		g    string
		err  error
	}{
		{name: "lp decimals", g: `{"lpDecimals":19}`, err: ErrInvalidLPDecimals},
		{name: "max fee", g: `{"maxFeeBps":10001}`, err: ErrInvalidMaxFee},
		{name: "duplicate", g: `{"assets":[{"symbol":"A"},{"symbol":"A"}]}`, err: ErrDuplicateAsset},
		{name: "zero base units", g: `{"baseComputeUnits":0}`, err: ErrInvalidComputeUnits},
		{name: "base units too large", g: `{"baseComputeUnits":4294967297,"maxActionComputeUnits":18446744073709551615}`, err: ErrInvalidComputeUnits},
		{name: "max below base", g: `{"baseComputeUnits":4,"maxActionComputeUnits":3}`, err: ErrInvalidComputeUnits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]byte(tt.g))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoad(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	alice := codectest.NewRandomAddress()
	bob := codectest.NewRandomAddress()

	g := Default()
	g.Assets = []*Asset{
		{
			Symbol:   "AVAX",
			Decimals: 9,
			Allocations: []*Allocation{
				{Address: alice, Balance: 1_000},
				{Address: bob, Balance: 500},
			},
		},
		{Symbol: "USDC", Decimals: 6},
	}
	b, err := json.Marshal(g)
	require.NoError(err)
	g, err = New(b)
	require.NoError(err)

	tracer, err := trace.New(&trace.Config{})
	require.NoError(err)
	store := chaintest.NewInMemoryStore()
	require.NoError(g.Load(ctx, tracer, store))

	avax, err := storage.GetAsset(ctx, store, storage.AssetAddress("AVAX"))
	require.NoError(err)
	require.Equal(uint64(1_500), avax.Supply)
	bal, err := storage.GetBalance(ctx, store, storage.AssetAddress("AVAX"), bob)
	require.NoError(err)
	require.Equal(uint64(500), bal)

	usdc, err := storage.GetAsset(ctx, store, storage.AssetAddress("USDC"))
	require.NoError(err)
	require.Zero(usdc.Supply)

	// Loading twice collides on the asset registry.
	require.ErrorIs(g.Load(ctx, tracer, store), storage.ErrAssetAlreadyExists)
}
