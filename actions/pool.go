// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// poolStateKeys is the scope shared by every operation on an existing pool.
func poolStateKeys(seed uint64, assetX, assetY, actor codec.Address) state.Keys {
	pool := storage.PoolAddress(seed, assetX, assetY)
	lpAsset := storage.LPAssetAddress(pool)
	return state.Keys{
		string(storage.PoolKey(pool)):              state.Read,
		string(storage.AssetKey(lpAsset)):          state.Write,
		string(storage.BalanceKey(assetX, actor)):  state.All,
		string(storage.BalanceKey(assetY, actor)):  state.All,
		string(storage.BalanceKey(lpAsset, actor)): state.All,
		string(storage.BalanceKey(assetX, pool)):   state.All,
		string(storage.BalanceKey(assetY, pool)):   state.All,
	}
}

// loadPool returns an unlocked pool and its current reserves.
func loadPool(
	ctx context.Context,
	im state.Immutable,
	seed uint64,
	assetX codec.Address,
	assetY codec.Address,
) (*storage.Pool, storage.Reserves, error) {
	pool, err := storage.GetPool(ctx, im, storage.PoolAddress(seed, assetX, assetY))
	if err != nil {
		return nil, storage.Reserves{}, err
	}
	if pool.Locked {
		return nil, storage.Reserves{}, ErrOutputPoolLocked
	}
	reserves, err := storage.GetReserves(ctx, im, pool)
	if err != nil {
		return nil, storage.Reserves{}, err
	}
	return pool, reserves, nil
}

// checkDebit returns [storage.ErrInvalidBalance] if [owner] holds less than
// [amount] of [asset].
func checkDebit(ctx context.Context, im state.Immutable, asset, owner codec.Address, amount uint64) error {
	bal, err := storage.GetBalance(ctx, im, asset, owner)
	if err != nil {
		return err
	}
	if bal < amount {
		return fmt.Errorf("%w: %s holds %d of %s, needs %d", storage.ErrInvalidBalance, owner, bal, asset, amount)
	}
	return nil
}

// checkCredit returns [storage.ErrInvalidBalance] if crediting [amount] of
// [asset] to [owner] would overflow.
func checkCredit(ctx context.Context, im state.Immutable, asset, owner codec.Address, amount uint64) error {
	bal, err := storage.GetBalance(ctx, im, asset, owner)
	if err != nil {
		return err
	}
	if _, err := smath.Add(bal, amount); err != nil {
		return fmt.Errorf("%w: crediting %d of %s to %s overflows", storage.ErrInvalidBalance, amount, asset, owner)
	}
	return nil
}
