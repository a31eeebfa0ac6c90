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
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/storage"
)

var (
	_ codec.Typed  = (*CreatePoolResult)(nil)
	_ chain.Action = (*CreatePool)(nil)
)

type CreatePool struct {
	// Seed distinguishes pools over the same asset pair.
	Seed   uint64 `json:"seed"`
	FeeBps uint16 `json:"feeBps"`

	// Authority may toggle the pool's lock. It is optional.
	Authority *codec.Address `json:"authority,omitempty"`

	AssetX codec.Address `json:"assetX"`
	AssetY codec.Address `json:"assetY"`
}

func (*CreatePool) GetTypeID() uint8 {
	return consts.CreatePoolID
}

func (c *CreatePool) StateKeys(_ codec.Address) state.Keys {
	pool := storage.PoolAddress(c.Seed, c.AssetX, c.AssetY)
	keys := state.Keys{
		string(storage.PoolKey(pool)):                          state.All,
		string(storage.AssetKey(storage.LPAssetAddress(pool))): state.All,
	}
	keys.Add(string(storage.AssetKey(c.AssetX)), state.Read)
	keys.Add(string(storage.AssetKey(c.AssetY)), state.Read)
	keys.Add(string(storage.BalanceKey(c.AssetX, pool)), state.Read)
	keys.Add(string(storage.BalanceKey(c.AssetY, pool)), state.Read)
	return keys
}

func (c *CreatePool) Execute(
	ctx context.Context,
	rules chain.Rules,
	mu state.Mutable,
	_ int64,
	_ codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	if c.FeeBps > consts.FeeDenominator || c.FeeBps > rules.GetMaxFeeBps() {
		return nil, fmt.Errorf("%w: %d > %d", ErrOutputInvalidFee, c.FeeBps, min(rules.GetMaxFeeBps(), consts.FeeDenominator))
	}
	if c.AssetX == c.AssetY {
		return nil, ErrOutputIdenticalAssets
	}
	exists, err := storage.AssetExists(ctx, mu, c.AssetX)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOutputAssetXDoesNotExist
	}
	exists, err = storage.AssetExists(ctx, mu, c.AssetY)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOutputAssetYDoesNotExist
	}

	pool, err := storage.CreatePool(ctx, mu, c.Seed, c.AssetX, c.AssetY, c.FeeBps, c.authority(), rules.GetLPDecimals())
	if err != nil {
		return nil, err
	}
	return &CreatePoolResult{
		Pool:    pool.Address,
		LPAsset: pool.LPAsset,
	}, nil
}

func (*CreatePool) ComputeUnits(r chain.Rules) uint64 {
	return CreatePoolComputeUnits * r.GetBaseComputeUnits()
}

// authority returns [Authority], treating [codec.EmptyAddress] as unset
// since it is packed as an absent optional.
func (c *CreatePool) authority() *codec.Address {
	if c.Authority == nil || *c.Authority == codec.EmptyAddress {
		return nil
	}
	return c.Authority
}

func (c *CreatePool) Size() int {
	size := consts.Uint64Len + consts.Uint16Len + consts.ByteLen + 2*codec.AddressLen
	if c.authority() != nil {
		size += codec.AddressLen
	}
	return size
}

func (c *CreatePool) Marshal(p *codec.Packer) {
	p.PackUint64(c.Seed)
	p.PackUint16(c.FeeBps)
	op := codec.NewOptionalWriter(codec.AddressLen, codec.AddressLen)
	if authority := c.authority(); authority != nil {
		op.PackAddress(*authority)
	} else {
		op.PackAddress(codec.EmptyAddress)
	}
	p.PackOptional(op)
	p.PackAddress(c.AssetX)
	p.PackAddress(c.AssetY)
}

func UnmarshalCreatePool(p *codec.Packer) (chain.Action, error) {
	var create CreatePool
	create.Seed = p.UnpackUint64(false)
	create.FeeBps = p.UnpackUint16(false)
	op := p.NewOptionalReader()
	var authority codec.Address
	if op.UnpackAddress(&authority) {
		create.Authority = &authority
	}
	op.Done()
	p.UnpackAddress(&create.AssetX)
	p.UnpackAddress(&create.AssetY)
	return &create, p.Err()
}

type CreatePoolResult struct {
	Pool    codec.Address `json:"pool"`
	LPAsset codec.Address `json:"lpAsset"`
}

func (*CreatePoolResult) GetTypeID() uint8 {
	return consts.CreatePoolID
}
