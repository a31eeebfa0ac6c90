// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/pricing"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/storage"
)

var (
	_ codec.Typed  = (*AddLiquidityResult)(nil)
	_ chain.Action = (*AddLiquidity)(nil)
)

const liquiditySize = consts.Uint64Len + 2*codec.AddressLen + 3*consts.Uint64Len

// AddLiquidity mints exactly LPAmount claim tokens to the actor in exchange
// for at most MaxX and MaxY of the pool's assets. The first deposit into an
// empty pool sets the reserves to exactly (MaxX, MaxY).
type AddLiquidity struct {
	Seed   uint64        `json:"seed"`
	AssetX codec.Address `json:"assetX"`
	AssetY codec.Address `json:"assetY"`

	LPAmount uint64 `json:"lpAmount"`
	MaxX     uint64 `json:"maxX"`
	MaxY     uint64 `json:"maxY"`
}

func (*AddLiquidity) GetTypeID() uint8 {
	return consts.AddLiquidityID
}

func (a *AddLiquidity) StateKeys(actor codec.Address) state.Keys {
	return poolStateKeys(a.Seed, a.AssetX, a.AssetY, actor)
}

func (a *AddLiquidity) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	pool, reserves, err := loadPool(ctx, mu, a.Seed, a.AssetX, a.AssetY)
	if err != nil {
		return nil, err
	}
	if a.LPAmount == 0 {
		return nil, fmt.Errorf("%w: lp amount is zero", ErrOutputInvalidAmount)
	}

	var x, y uint64
	if reserves.Empty() {
		// The first depositor sets the price. Both sides must be funded or
		// the pool would hold supply against an empty reserve.
		if a.MaxX == 0 || a.MaxY == 0 {
			return nil, fmt.Errorf("%w: first deposit must fund both assets", ErrOutputInvalidAmount)
		}
		x, y = a.MaxX, a.MaxY
	} else {
		x, y, err = pricing.QuoteDeposit(reserves.X, reserves.Y, reserves.LPSupply, a.LPAmount, reserves.LPDecimals)
		if err != nil {
			return nil, err
		}
	}
	if x > a.MaxX || y > a.MaxY {
		return nil, fmt.Errorf("%w: deposit requires x=%d y=%d, max x=%d y=%d", ErrOutputSlippageExceeded, x, y, a.MaxX, a.MaxY)
	}

	// Every check that can fail runs before the first write.
	if err := checkDebit(ctx, mu, pool.AssetX, actor, x); err != nil {
		return nil, err
	}
	if err := checkDebit(ctx, mu, pool.AssetY, actor, y); err != nil {
		return nil, err
	}
	if err := checkCredit(ctx, mu, pool.AssetX, pool.Address, x); err != nil {
		return nil, err
	}
	if err := checkCredit(ctx, mu, pool.AssetY, pool.Address, y); err != nil {
		return nil, err
	}
	if err := checkCredit(ctx, mu, pool.LPAsset, actor, a.LPAmount); err != nil {
		return nil, err
	}

	if err := storage.Transfer(ctx, mu, pool.AssetX, actor, pool.Address, x); err != nil {
		return nil, err
	}
	if err := storage.Transfer(ctx, mu, pool.AssetY, actor, pool.Address, y); err != nil {
		return nil, err
	}
	if err := storage.MintLP(ctx, mu, pool.Vault(), pool.LPAsset, actor, a.LPAmount); err != nil {
		return nil, err
	}
	return &AddLiquidityResult{
		AmountX:  x,
		AmountY:  y,
		LPMinted: a.LPAmount,
	}, nil
}

func (*AddLiquidity) ComputeUnits(r chain.Rules) uint64 {
	return AddLiquidityComputeUnits * r.GetBaseComputeUnits()
}

func (*AddLiquidity) Size() int {
	return liquiditySize
}

func (a *AddLiquidity) Marshal(p *codec.Packer) {
	p.PackUint64(a.Seed)
	p.PackAddress(a.AssetX)
	p.PackAddress(a.AssetY)
	p.PackUint64(a.LPAmount)
	p.PackUint64(a.MaxX)
	p.PackUint64(a.MaxY)
}

func UnmarshalAddLiquidity(p *codec.Packer) (chain.Action, error) {
	var add AddLiquidity
	add.Seed = p.UnpackUint64(false)
	p.UnpackAddress(&add.AssetX)
	p.UnpackAddress(&add.AssetY)
	add.LPAmount = p.UnpackUint64(false)
	add.MaxX = p.UnpackUint64(false)
	add.MaxY = p.UnpackUint64(false)
	return &add, p.Err()
}

type AddLiquidityResult struct {
	AmountX  uint64 `json:"amountX"`
	AmountY  uint64 `json:"amountY"`
	LPMinted uint64 `json:"lpMinted"`
}

func (*AddLiquidityResult) GetTypeID() uint8 {
	return consts.AddLiquidityID
}
