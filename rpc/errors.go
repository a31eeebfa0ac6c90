// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import "errors"

var (
	ErrUnknownResult = errors.New("unknown result type")
	ErrMissingAction = errors.New("action bytes missing")
)
