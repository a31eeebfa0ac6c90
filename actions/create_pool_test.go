// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/chain/chaintest"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/codec/codectest"
	"github.com/ava-labs/ammvm/genesis"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/storage"
)

func TestCreatePool(t *testing.T) {
	authority := codectest.NewRandomAddress()
	empty := codec.EmptyAddress
	missing := storage.AssetAddress("NOPE")
	lowFeeRules := (&genesis.Genesis{LPDecimals: 9, MaxFeeBps: 100}).Rules(1, ids.Empty)

	tests := []chaintest.ActionTest{
		{
			Name:        "fee above denominator",
			Action:      &CreatePool{FeeBps: 10_001, AssetX: assetX, AssetY: assetY},
			Rules:       rules,
			State:       newStore(t),
			ExpectedErr: ErrOutputInvalidFee,
		},
		{
			Name:        "fee above configured maximum",
			Action:      &CreatePool{FeeBps: 101, AssetX: assetX, AssetY: assetY},
			Rules:       lowFeeRules,
			State:       newStore(t),
			ExpectedErr: ErrOutputInvalidFee,
		},
		{
			Name:        "identical assets",
			Action:      &CreatePool{AssetX: assetX, AssetY: assetX},
			Rules:       rules,
			State:       newStore(t),
			ExpectedErr: ErrOutputIdenticalAssets,
		},
		{
			Name:        "asset x missing",
			Action:      &CreatePool{AssetX: missing, AssetY: assetY},
			Rules:       rules,
			State:       newStore(t),
			ExpectedErr: ErrOutputAssetXDoesNotExist,
		},
		{
			Name:        "asset y missing",
			Action:      &CreatePool{AssetX: assetX, AssetY: missing},
			Rules:       rules,
			State:       newStore(t),
			ExpectedErr: storage.ErrAssetNotFound,
		},
		{
			Name:        "pool already exists",
			Action:      &CreatePool{FeeBps: initialFee, AssetX: assetX, AssetY: assetY},
			Rules:       rules,
			State:       newBalancedPool(t),
			ExpectedErr: storage.ErrPoolAlreadyExists,
		},
		{
			Name:        "pool address already funded",
			Action:      &CreatePool{FeeBps: initialFee, AssetX: assetX, AssetY: assetY},
			Rules:       rules,
			State:       newFundedPoolAddress(t),
			ExpectedErr: storage.ErrPoolAddressFunded,
		},
		{
			Name:   "create pool",
			Action: &CreatePool{FeeBps: initialFee, Authority: &authority, AssetX: assetX, AssetY: assetY},
			Rules:  rules,
			State:  newStore(t),
			ExpectedOutputs: &CreatePoolResult{
				Pool:    poolAddress,
				LPAsset: lpAsset,
			},
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				pool, err := storage.GetPool(ctx, m, poolAddress)
				require.NoError(err)
				require.Equal(uint16(initialFee), pool.FeeBps)
				require.False(pool.Locked)
				require.Equal(authority, *pool.Authority)
				requireReserves(ctx, t, m, storage.Reserves{LPDecimals: storage.LPDecimals})
			},
		},
		{
			Name:   "empty authority is unset",
			Action: &CreatePool{FeeBps: initialFee, Authority: &empty, AssetX: assetX, AssetY: assetY},
			Rules:  rules,
			State:  newStore(t),
			ExpectedOutputs: &CreatePoolResult{
				Pool:    poolAddress,
				LPAsset: lpAsset,
			},
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				pool, err := storage.GetPool(ctx, m, poolAddress)
				require.NoError(t, err)
				require.Nil(t, pool.Authority)
			},
		},
		{
			Name:   "lp decimals follow rules",
			Action: &CreatePool{Seed: 9, FeeBps: 100, AssetX: assetY, AssetY: assetX},
			Rules:  lowFeeRules,
			State:  newStore(t),
			ExpectedOutputs: &CreatePoolResult{
				Pool:    storage.PoolAddress(9, assetY, assetX),
				LPAsset: storage.LPAssetAddress(storage.PoolAddress(9, assetY, assetX)),
			},
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				lp, err := storage.GetAsset(ctx, m, storage.LPAssetAddress(storage.PoolAddress(9, assetY, assetX)))
				require.NoError(t, err)
				require.Equal(t, uint8(9), lp.Decimals)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}

// newFundedPoolAddress credits pool 0's address before the pool exists.
func newFundedPoolAddress(t *testing.T) *chaintest.InMemoryStore {
	store := newStore(t)
	require.NoError(t, storage.Mint(context.Background(), store, assetY, poolAddress, 1))
	return store
}

func TestCreatePoolEmptyAuthorityMarshal(t *testing.T) {
	require := require.New(t)
	registry, err := NewRegistry()
	require.NoError(err)

	empty := codec.EmptyAddress
	action := &CreatePool{Seed: 2, FeeBps: initialFee, Authority: &empty, AssetX: assetX, AssetY: assetY}
	b, err := chain.MarshalAction(action)
	require.NoError(err)
	require.Len(b, 1+action.Size())

	decoded, err := chain.UnmarshalAction(registry, b)
	require.NoError(err)
	require.Equal(&CreatePool{Seed: 2, FeeBps: initialFee, AssetX: assetX, AssetY: assetY}, decoded)
}
