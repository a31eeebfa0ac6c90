// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// Vault authorizes movements out of a pool's holdings and minting of its
// LP asset. Its fields are unexported so the only valid Vault is the one
// returned by [Pool.Vault] on a stored pool.
type Vault struct {
	pool   codec.Address
	signer ids.ID
}

// Address returns the account that holds the pool's balances.
func (v Vault) Address() codec.Address {
	return v.pool
}

func (v Vault) verify() error {
	if v.pool == codec.EmptyAddress || v.signer != vaultSigner(v.pool) {
		return ErrUnauthorizedVault
	}
	return nil
}

// Transfer moves [amount] of [asset] from [from] to [to]. [from] is the
// caller and is assumed to have signed.
func Transfer(
	ctx context.Context,
	mu state.Mutable,
	asset codec.Address,
	from codec.Address,
	to codec.Address,
	amount uint64,
) error {
	if err := SubBalance(ctx, mu, asset, from, amount); err != nil {
		return err
	}
	return AddBalance(ctx, mu, asset, to, amount)
}

// VaultTransfer moves [amount] of [asset] out of the pool held by [vault].
func VaultTransfer(
	ctx context.Context,
	mu state.Mutable,
	vault Vault,
	asset codec.Address,
	to codec.Address,
	amount uint64,
) error {
	if err := vault.verify(); err != nil {
		return err
	}
	return Transfer(ctx, mu, asset, vault.pool, to, amount)
}

// Mint creates [amount] units of [asset] for [to]. It is used by genesis;
// pool operations mint through [MintLP].
func Mint(
	ctx context.Context,
	mu state.Mutable,
	asset codec.Address,
	to codec.Address,
	amount uint64,
) error {
	a, err := GetAsset(ctx, mu, asset)
	if err != nil {
		return err
	}
	supply, err := smath.Add(a.Supply, amount)
	if err != nil {
		return fmt.Errorf("%w: supply of %s overflows", ErrInvalidBalance, asset)
	}
	a.Supply = supply
	if err := SetAsset(ctx, mu, asset, a); err != nil {
		return err
	}
	return AddBalance(ctx, mu, asset, to, amount)
}

// MintLP mints [amount] of the LP asset issued by [vault] to [to].
func MintLP(
	ctx context.Context,
	mu state.Mutable,
	vault Vault,
	lpAsset codec.Address,
	to codec.Address,
	amount uint64,
) error {
	if err := vault.verify(); err != nil {
		return err
	}
	a, err := GetAsset(ctx, mu, lpAsset)
	if err != nil {
		return err
	}
	if a.Issuer != vault.pool {
		return fmt.Errorf("%w: %s", ErrNotIssuer, lpAsset)
	}
	return Mint(ctx, mu, lpAsset, to, amount)
}

// Burn destroys [amount] of [asset] held by [from], who is assumed to have
// signed.
func Burn(
	ctx context.Context,
	mu state.Mutable,
	asset codec.Address,
	from codec.Address,
	amount uint64,
) error {
	a, err := GetAsset(ctx, mu, asset)
	if err != nil {
		return err
	}
	if err := SubBalance(ctx, mu, asset, from, amount); err != nil {
		return err
	}
	supply, err := smath.Sub(a.Supply, amount)
	if err != nil {
		return fmt.Errorf("%w: supply of %s underflows", ErrInvalidBalance, asset)
	}
	a.Supply = supply
	return SetAsset(ctx, mu, asset, a)
}
