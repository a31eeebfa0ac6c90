// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "github.com/ava-labs/avalanchego/utils/set"

const maxOptionalOffset = 7

// OptionalPacker packs fields that may be omitted. A one byte bitset is
// written ahead of the fields and records which ones are present.
type OptionalPacker struct {
	b      set.Bits64
	offset uint8
	ip     *Packer
}

// NewOptionalWriter returns an OptionalPacker backed by a fresh writer
// bounded by [limit].
func NewOptionalWriter(initial, limit int) *OptionalPacker {
	return &OptionalPacker{
		ip: NewWriter(initial, limit),
	}
}

// NewOptionalReader reads the bitset from [p] and returns an
// OptionalPacker that unpacks the fields that follow it.
func (p *Packer) NewOptionalReader() *OptionalPacker {
	o := &OptionalPacker{
		ip: p,
	}
	o.b = set.Bits64(o.ip.UnpackByte())
	return o
}

func (o *OptionalPacker) setBit() {
	if o.offset > maxOptionalOffset {
		o.ip.addErr(ErrTooManyItems)
		return
	}
	o.b.Add(uint(o.offset))
	o.offset++
}

func (o *OptionalPacker) skipBit() {
	if o.offset > maxOptionalOffset {
		o.ip.addErr(ErrTooManyItems)
		return
	}
	o.offset++
}

func (o *OptionalPacker) checkBit() bool {
	result := o.b.Contains(uint(o.offset))
	o.offset++
	return result
}

// PackAddress packs [addr] if it is not empty.
func (o *OptionalPacker) PackAddress(addr Address) {
	if addr == EmptyAddress {
		o.skipBit()
		return
	}
	o.ip.PackAddress(addr)
	o.setBit()
}

// UnpackAddress unpacks an Address into [dest] if its bit is set and
// reports whether it was present.
func (o *OptionalPacker) UnpackAddress(dest *Address) bool {
	if o.checkBit() {
		o.ip.UnpackAddress(dest)
		return true
	}
	*dest = EmptyAddress
	return false
}

// PackUint64 packs [l] if it is not 0.
func (o *OptionalPacker) PackUint64(l uint64) {
	if l == 0 {
		o.skipBit()
		return
	}
	o.ip.PackUint64(l)
	o.setBit()
}

func (o *OptionalPacker) UnpackUint64() uint64 {
	if o.checkBit() {
		return o.ip.UnpackUint64(true)
	}
	return 0
}

// PackOptional writes the bitset of [o] followed by its fields.
func (p *Packer) PackOptional(o *OptionalPacker) {
	p.PackByte(byte(o.b))
	p.PackFixedBytes(o.ip.Bytes())
}

// Done asserts that no bits are set above the largest read offset.
func (o *OptionalPacker) Done() {
	if o.offset > maxOptionalOffset {
		return
	}
	var maxSet set.Bits64
	maxSet.Add(uint(o.offset))
	if o.b < maxSet {
		return
	}
	o.ip.addErr(ErrInvalidBitset)
}

// Err returns any error associated with the inner Packer.
func (o *OptionalPacker) Err() error {
	return o.ip.Err()
}
