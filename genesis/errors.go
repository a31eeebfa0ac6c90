// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import "errors"

var (
	ErrInvalidLPDecimals = errors.New("invalid lp decimals")
	ErrInvalidMaxFee     = errors.New("max fee exceeds 10000 basis points")
	ErrDuplicateAsset    = errors.New("duplicate asset")

	ErrInvalidComputeUnits = errors.New("invalid compute units")
)
