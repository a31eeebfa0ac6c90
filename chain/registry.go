// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
)

type ActionRegistry = *codec.TypeParser[Action]

func NewActionRegistry() ActionRegistry {
	return codec.NewTypeParser[Action]()
}

// MarshalAction encodes [a] prefixed by its type ID.
func MarshalAction(a Action) ([]byte, error) {
	size := consts.ByteLen + a.Size()
	p := codec.NewWriter(size, size)
	p.PackByte(a.GetTypeID())
	a.Marshal(p)
	return p.Bytes(), p.Err()
}

// UnmarshalAction decodes bytes produced by [MarshalAction].
func UnmarshalAction(r ActionRegistry, b []byte) (Action, error) {
	return r.Unmarshal(codec.NewReader(b, len(b)))
}
