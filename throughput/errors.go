// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package throughput

import "errors"

var (
	ErrInvalidAmountRange = errors.New("invalid swap amount range")
	ErrInvalidRate        = errors.New("swaps per second and clients must be positive")
)
