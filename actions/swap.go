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
	_ codec.Typed  = (*SwapResult)(nil)
	_ chain.Action = (*Swap)(nil)
)

const swapSize = consts.Uint64Len + 2*codec.AddressLen + consts.BoolLen + 2*consts.Uint64Len

type Swap struct {
	// First three arguments identify the pool for `StateKeys()`
	Seed   uint64        `json:"seed"`
	AssetX codec.Address `json:"assetX"`
	AssetY codec.Address `json:"assetY"`

	// AssetInIsX sells X for Y when true and Y for X otherwise.
	AssetInIsX   bool   `json:"assetInIsX"`
	AmountIn     uint64 `json:"amountIn"`
	MinAmountOut uint64 `json:"minAmountOut"`
}

func (*Swap) GetTypeID() uint8 {
	return consts.SwapID
}

func (s *Swap) StateKeys(actor codec.Address) state.Keys {
	return poolStateKeys(s.Seed, s.AssetX, s.AssetY, actor)
}

func (s *Swap) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	pool, reserves, err := loadPool(ctx, mu, s.Seed, s.AssetX, s.AssetY)
	if err != nil {
		return nil, err
	}
	if s.AmountIn == 0 {
		return nil, fmt.Errorf("%w: amount in is zero", ErrOutputInvalidAmount)
	}

	assetIn, assetOut := pool.AssetX, pool.AssetY
	reserveIn, reserveOut := reserves.X, reserves.Y
	if !s.AssetInIsX {
		assetIn, assetOut = assetOut, assetIn
		reserveIn, reserveOut = reserveOut, reserveIn
	}

	amountInNet, amountOut, err := pricing.QuoteSwap(reserveIn, reserveOut, pool.FeeBps, s.AmountIn)
	if err != nil {
		return nil, err
	}
	if amountInNet == 0 || amountOut == 0 {
		return nil, fmt.Errorf("%w: swap of %d yields nothing", ErrOutputInvalidAmount, s.AmountIn)
	}
	if amountOut < s.MinAmountOut {
		return nil, fmt.Errorf("%w: swap yields %d, min %d", ErrOutputSlippageExceeded, amountOut, s.MinAmountOut)
	}

	if err := checkDebit(ctx, mu, assetIn, actor, s.AmountIn); err != nil {
		return nil, err
	}
	if err := checkCredit(ctx, mu, assetIn, pool.Address, s.AmountIn); err != nil {
		return nil, err
	}
	if err := checkCredit(ctx, mu, assetOut, actor, amountOut); err != nil {
		return nil, err
	}
	// The whole input, fee included, stays in the pool.
	if err := pricing.CheckInvariant(reserveIn, reserveOut, reserveIn+s.AmountIn, reserveOut-amountOut); err != nil {
		return nil, err
	}

	if err := storage.Transfer(ctx, mu, assetIn, actor, pool.Address, s.AmountIn); err != nil {
		return nil, err
	}
	if err := storage.VaultTransfer(ctx, mu, pool.Vault(), assetOut, actor, amountOut); err != nil {
		return nil, err
	}
	return &SwapResult{
		AssetIn:     assetIn,
		AssetOut:    assetOut,
		AmountIn:    s.AmountIn,
		AmountInNet: amountInNet,
		AmountOut:   amountOut,
	}, nil
}

func (*Swap) ComputeUnits(r chain.Rules) uint64 {
	return SwapComputeUnits * r.GetBaseComputeUnits()
}

func (*Swap) Size() int {
	return swapSize
}

func (s *Swap) Marshal(p *codec.Packer) {
	p.PackUint64(s.Seed)
	p.PackAddress(s.AssetX)
	p.PackAddress(s.AssetY)
	p.PackBool(s.AssetInIsX)
	p.PackUint64(s.AmountIn)
	p.PackUint64(s.MinAmountOut)
}

func UnmarshalSwap(p *codec.Packer) (chain.Action, error) {
	var swap Swap
	swap.Seed = p.UnpackUint64(false)
	p.UnpackAddress(&swap.AssetX)
	p.UnpackAddress(&swap.AssetY)
	swap.AssetInIsX = p.UnpackBool()
	swap.AmountIn = p.UnpackUint64(false)
	swap.MinAmountOut = p.UnpackUint64(false)
	return &swap, p.Err()
}

type SwapResult struct {
	AssetIn     codec.Address `json:"assetIn"`
	AssetOut    codec.Address `json:"assetOut"`
	AmountIn    uint64        `json:"amountIn"`
	AmountInNet uint64        `json:"amountInNet"`
	AmountOut   uint64        `json:"amountOut"`
}

func (*SwapResult) GetTypeID() uint8 {
	return consts.SwapID
}
