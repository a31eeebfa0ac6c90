// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"errors"
	"fmt"

	"github.com/ava-labs/ammvm/storage"
)

var (
	ErrOutputPoolLocked       = errors.New("pool is locked")
	ErrOutputInvalidAmount    = errors.New("invalid amount")
	ErrOutputSlippageExceeded = errors.New("slippage exceeded")

	ErrOutputInvalidFee         = errors.New("fee exceeds maximum")
	ErrOutputIdenticalAssets    = errors.New("asset x and asset y are identical")
	ErrOutputAssetXDoesNotExist = fmt.Errorf("%w: asset x", storage.ErrAssetNotFound)
	ErrOutputAssetYDoesNotExist = fmt.Errorf("%w: asset y", storage.ErrAssetNotFound)
)
