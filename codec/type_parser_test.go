// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ammvm/consts"
)

type blah struct {
	id uint8
	v  uint64
}

func (b *blah) GetTypeID() uint8 { return b.id }

func unmarshalBlah(id uint8) func(*Packer) (*blah, error) {
	return func(p *Packer) (*blah, error) {
		return &blah{id: id, v: p.UnpackUint64(true)}, p.Err()
	}
}

func TestTypeParser(t *testing.T) {
	require := require.New(t)
	tp := NewTypeParser[*blah]()

	require.NoError(tp.Register(&blah{id: 0}, unmarshalBlah(0)))
	require.NoError(tp.Register(&blah{id: 1}, unmarshalBlah(1)))
	require.ErrorIs(tp.Register(&blah{id: 1}, unmarshalBlah(1)), ErrDuplicateItem)

	_, ok := tp.LookupIndex(2)
	require.False(ok)

	w := NewWriter(0, consts.MaxInt)
	w.PackByte(1)
	w.PackUint64(5)
	v, err := tp.Unmarshal(NewReader(w.Bytes(), consts.MaxInt))
	require.NoError(err)
	require.Equal(&blah{id: 1, v: 5}, v)

	w = NewWriter(0, consts.MaxInt)
	w.PackByte(9)
	_, err = tp.Unmarshal(NewReader(w.Bytes(), consts.MaxInt))
	require.ErrorIs(err, ErrUnknownType)
}
