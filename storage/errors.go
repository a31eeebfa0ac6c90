// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrInvalidBalance     = errors.New("invalid balance")
	ErrAssetNotFound      = errors.New("asset not found")
	ErrAssetAlreadyExists = errors.New("asset already exists")
	ErrInvalidAsset       = errors.New("invalid asset")
	ErrPoolNotFound       = errors.New("pool not found")
	ErrPoolAlreadyExists  = errors.New("pool already exists")
	ErrPoolAddressFunded  = errors.New("pool address already holds funds")
	ErrUnauthorizedVault  = errors.New("unauthorized vault")
	ErrNotIssuer          = errors.New("vault does not issue asset")
	ErrGenesisMismatch    = errors.New("genesis does not match stored genesis")
)
