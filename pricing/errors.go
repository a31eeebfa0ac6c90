// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"errors"
	"fmt"
)

// ErrCurve is wrapped by every error the curve functions return.
var ErrCurve = errors.New("curve error")

var (
	ErrZeroSupply          = fmt.Errorf("%w: lp supply is zero", ErrCurve)
	ErrReservesZero        = fmt.Errorf("%w: reserves are zero", ErrCurve)
	ErrZeroInput           = fmt.Errorf("%w: zero input", ErrCurve)
	ErrBurnExceedsSupply   = fmt.Errorf("%w: burn amount exceeds lp supply", ErrCurve)
	ErrInvalidFee          = fmt.Errorf("%w: fee exceeds 10000 basis points", ErrCurve)
	ErrInvalidPrecision    = fmt.Errorf("%w: invalid lp precision", ErrCurve)
	ErrOverflow            = fmt.Errorf("%w: result overflows uint64", ErrCurve)
	ErrInsufficientReserve = fmt.Errorf("%w: output would drain reserve", ErrCurve)
	ErrInvariantViolated   = fmt.Errorf("%w: invariant decreased", ErrCurve)
)
