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

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// [balancePrefix] + [asset] + [owner]
func BalanceKey(asset codec.Address, owner codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen*2+consts.Uint16Len)
	k[0] = balancePrefix
	copy(k[1:], asset[:])
	copy(k[1+codec.AddressLen:], owner[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen*2:], BalanceChunks)
	return k
}

// GetBalance returns the units of [asset] held by [owner]. A missing
// balance is zero.
func GetBalance(
	ctx context.Context,
	im state.Immutable,
	asset codec.Address,
	owner codec.Address,
) (uint64, error) {
	bal, _, err := getBalance(ctx, im, asset, owner)
	return bal, err
}

func getBalance(
	ctx context.Context,
	im state.Immutable,
	asset codec.Address,
	owner codec.Address,
) (uint64, bool, error) {
	v, err := im.GetValue(ctx, BalanceKey(asset, owner))
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(v) != consts.Uint64Len {
		return 0, false, fmt.Errorf("%w: balance record has %d bytes", ErrInvalidBalance, len(v))
	}
	return binary.BigEndian.Uint64(v), true, nil
}

// SetBalance writes [balance]. A zero balance removes the record.
func SetBalance(
	ctx context.Context,
	mu state.Mutable,
	asset codec.Address,
	owner codec.Address,
	balance uint64,
) error {
	k := BalanceKey(asset, owner)
	if balance == 0 {
		return mu.Remove(ctx, k)
	}
	return mu.Insert(ctx, k, binary.BigEndian.AppendUint64(nil, balance))
}

func AddBalance(
	ctx context.Context,
	mu state.Mutable,
	asset codec.Address,
	owner codec.Address,
	amount uint64,
) error {
	bal, _, err := getBalance(ctx, mu, asset, owner)
	if err != nil {
		return err
	}
	nbal, err := smath.Add(bal, amount)
	if err != nil {
		return fmt.Errorf(
			"%w: could not add balance (asset=%s, bal=%d, addr=%s, amount=%d)",
			ErrInvalidBalance,
			asset,
			bal,
			owner,
			amount,
		)
	}
	return SetBalance(ctx, mu, asset, owner, nbal)
}

func SubBalance(
	ctx context.Context,
	mu state.Mutable,
	asset codec.Address,
	owner codec.Address,
	amount uint64,
) error {
	bal, _, err := getBalance(ctx, mu, asset, owner)
	if err != nil {
		return err
	}
	nbal, err := smath.Sub(bal, amount)
	if err != nil {
		return fmt.Errorf(
			"%w: could not subtract balance (asset=%s, bal=%d, addr=%s, amount=%d)",
			ErrInvalidBalance,
			asset,
			bal,
			owner,
			amount,
		)
	}
	return SetBalance(ctx, mu, asset, owner, nbal)
}
