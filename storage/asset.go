// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/utils"
)

const assetSize = consts.Uint16Len + MaxSymbolSize + consts.ByteLen + consts.Uint64Len + codec.AddressLen

// Asset is the registry entry of a fungible asset.
type Asset struct {
	Symbol   string        `json:"symbol"`
	Decimals uint8         `json:"decimals"`
	Supply   uint64        `json:"supply"`
	Issuer   codec.Address `json:"issuer"`
}

// AssetAddress derives the address of a base asset from its symbol.
func AssetAddress(symbol string) codec.Address {
	return codec.CreateAddress(consts.AssetAddressID, utils.ToID([]byte(symbol)))
}

// [assetPrefix] + [asset]
func AssetKey(asset codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+consts.Uint16Len)
	k[0] = assetPrefix
	copy(k[1:], asset[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], AssetChunks)
	return k
}

func (a *Asset) Marshal() ([]byte, error) {
	p := codec.NewWriter(assetSize, assetSize)
	p.PackString(a.Symbol)
	p.PackByte(a.Decimals)
	p.PackUint64(a.Supply)
	p.PackAddress(a.Issuer)
	return p.Bytes(), p.Err()
}

func UnmarshalAsset(b []byte) (*Asset, error) {
	p := codec.NewReader(b, assetSize)
	var a Asset
	a.Symbol = p.UnpackString(true)
	a.Decimals = p.UnpackByte()
	a.Supply = p.UnpackUint64(false)
	p.UnpackAddress(&a.Issuer)
	if err := p.Done(); err != nil {
		return nil, err
	}
	return &a, nil
}

func validateAsset(a *Asset) error {
	switch {
	case len(a.Symbol) == 0 || len(a.Symbol) > MaxSymbolSize:
		return fmt.Errorf("%w: symbol %q must be 1-%d bytes", ErrInvalidAsset, a.Symbol, MaxSymbolSize)
	case a.Decimals > MaxDecimals:
		return fmt.Errorf("%w: %d decimals exceeds %d", ErrInvalidAsset, a.Decimals, MaxDecimals)
	default:
		return nil
	}
}

// CreateAsset registers [asset] with zero supply.
func CreateAsset(
	ctx context.Context,
	mu state.Mutable,
	asset codec.Address,
	symbol string,
	decimals uint8,
	issuer codec.Address,
) error {
	exists, err := AssetExists(ctx, mu, asset)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrAssetAlreadyExists, asset)
	}
	a := &Asset{Symbol: symbol, Decimals: decimals, Issuer: issuer}
	if err := validateAsset(a); err != nil {
		return err
	}
	return SetAsset(ctx, mu, asset, a)
}

func SetAsset(ctx context.Context, mu state.Mutable, asset codec.Address, a *Asset) error {
	v, err := a.Marshal()
	if err != nil {
		return err
	}
	return mu.Insert(ctx, AssetKey(asset), v)
}

// GetAsset returns [ErrAssetNotFound] if [asset] was never created.
func GetAsset(ctx context.Context, im state.Immutable, asset codec.Address) (*Asset, error) {
	v, err := im.GetValue(ctx, AssetKey(asset))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, asset)
	}
	if err != nil {
		return nil, err
	}
	return UnmarshalAsset(v)
}

func AssetExists(ctx context.Context, im state.Immutable, asset codec.Address) (bool, error) {
	_, err := im.GetValue(ctx, AssetKey(asset))
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func GetAssetSupply(ctx context.Context, im state.Immutable, asset codec.Address) (uint64, error) {
	a, err := GetAsset(ctx, im, asset)
	if err != nil {
		return 0, err
	}
	return a.Supply, nil
}
