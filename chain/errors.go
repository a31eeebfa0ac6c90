// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var ErrComputeUnitsExceeded = errors.New("action exceeds max compute units")
