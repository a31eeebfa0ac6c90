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
	_ codec.Typed  = (*RemoveLiquidityResult)(nil)
	_ chain.Action = (*RemoveLiquidity)(nil)
)

// RemoveLiquidity burns LPAmount claim tokens for a pro-rata share of both
// reserves, requiring at least MinX and MinY back.
type RemoveLiquidity struct {
	Seed   uint64        `json:"seed"`
	AssetX codec.Address `json:"assetX"`
	AssetY codec.Address `json:"assetY"`

	LPAmount uint64 `json:"lpAmount"`
	MinX     uint64 `json:"minX"`
	MinY     uint64 `json:"minY"`
}

func (*RemoveLiquidity) GetTypeID() uint8 {
	return consts.RemoveLiquidityID
}

func (r *RemoveLiquidity) StateKeys(actor codec.Address) state.Keys {
	return poolStateKeys(r.Seed, r.AssetX, r.AssetY, actor)
}

func (r *RemoveLiquidity) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	pool, reserves, err := loadPool(ctx, mu, r.Seed, r.AssetX, r.AssetY)
	if err != nil {
		return nil, err
	}
	if r.LPAmount == 0 {
		return nil, fmt.Errorf("%w: lp amount is zero", ErrOutputInvalidAmount)
	}
	if r.MinX == 0 && r.MinY == 0 {
		return nil, fmt.Errorf("%w: at least one minimum must be set", ErrOutputInvalidAmount)
	}

	x, y, err := pricing.QuoteWithdraw(reserves.X, reserves.Y, reserves.LPSupply, r.LPAmount, reserves.LPDecimals)
	if err != nil {
		return nil, err
	}
	if x < r.MinX || y < r.MinY {
		return nil, fmt.Errorf("%w: withdraw yields x=%d y=%d, min x=%d y=%d", ErrOutputSlippageExceeded, x, y, r.MinX, r.MinY)
	}

	if err := checkDebit(ctx, mu, pool.LPAsset, actor, r.LPAmount); err != nil {
		return nil, err
	}
	if err := checkCredit(ctx, mu, pool.AssetX, actor, x); err != nil {
		return nil, err
	}
	if err := checkCredit(ctx, mu, pool.AssetY, actor, y); err != nil {
		return nil, err
	}

	if err := storage.Burn(ctx, mu, pool.LPAsset, actor, r.LPAmount); err != nil {
		return nil, err
	}
	vault := pool.Vault()
	if err := storage.VaultTransfer(ctx, mu, vault, pool.AssetX, actor, x); err != nil {
		return nil, err
	}
	if err := storage.VaultTransfer(ctx, mu, vault, pool.AssetY, actor, y); err != nil {
		return nil, err
	}
	return &RemoveLiquidityResult{
		AmountX:  x,
		AmountY:  y,
		LPBurned: r.LPAmount,
	}, nil
}

func (*RemoveLiquidity) ComputeUnits(r chain.Rules) uint64 {
	return RemoveLiquidityComputeUnits * r.GetBaseComputeUnits()
}

func (*RemoveLiquidity) Size() int {
	return liquiditySize
}

func (r *RemoveLiquidity) Marshal(p *codec.Packer) {
	p.PackUint64(r.Seed)
	p.PackAddress(r.AssetX)
	p.PackAddress(r.AssetY)
	p.PackUint64(r.LPAmount)
	p.PackUint64(r.MinX)
	p.PackUint64(r.MinY)
}

func UnmarshalRemoveLiquidity(p *codec.Packer) (chain.Action, error) {
	var remove RemoveLiquidity
	remove.Seed = p.UnpackUint64(false)
	p.UnpackAddress(&remove.AssetX)
	p.UnpackAddress(&remove.AssetY)
	remove.LPAmount = p.UnpackUint64(false)
	remove.MinX = p.UnpackUint64(false)
	remove.MinY = p.UnpackUint64(false)
	return &remove, p.Err()
}

type RemoveLiquidityResult struct {
	AmountX  uint64 `json:"amountX"`
	AmountY  uint64 `json:"amountY"`
	LPBurned uint64 `json:"lpBurned"`
}

func (*RemoveLiquidityResult) GetTypeID() uint8 {
	return consts.RemoveLiquidityID
}
