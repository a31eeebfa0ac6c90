// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codectest

import (
	"crypto/rand"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
)

// NewRandomAddress returns a random account address
// for use during testing
func NewRandomAddress() codec.Address {
	b := make([]byte, codec.AddressLen)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	b[0] = consts.AccountAddressID
	addr, _ := codec.ToAddress(b)
	return addr
}
