// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

// Typed is implemented by every value that carries a one byte type
// identifier on the wire, including action results.
type Typed interface {
	GetTypeID() uint8
}
