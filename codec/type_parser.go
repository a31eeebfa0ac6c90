// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "fmt"

// TypeParser maps the type ID of a [Typed] value to its decoder.
type TypeParser[T Typed] struct {
	indexToDecoder map[uint8]func(*Packer) (T, error)
}

func NewTypeParser[T Typed]() *TypeParser[T] {
	return &TypeParser[T]{
		indexToDecoder: map[uint8]func(*Packer) (T, error){},
	}
}

// Register adds the decoder [f] under the type ID of [o].
func (p *TypeParser[T]) Register(o T, f func(*Packer) (T, error)) error {
	index := o.GetTypeID()
	if _, ok := p.indexToDecoder[index]; ok {
		return fmt.Errorf("%w: %T (%d)", ErrDuplicateItem, o, index)
	}
	p.indexToDecoder[index] = f
	return nil
}

func (p *TypeParser[T]) LookupIndex(index uint8) (func(*Packer) (T, error), bool) {
	f, ok := p.indexToDecoder[index]
	return f, ok
}

// Unmarshal reads a type byte followed by the value it identifies. The
// whole of [p] must be consumed.
func (p *TypeParser[T]) Unmarshal(r *Packer) (T, error) {
	var empty T
	index := r.UnpackByte()
	if err := r.Err(); err != nil {
		return empty, err
	}
	f, ok := p.LookupIndex(index)
	if !ok {
		return empty, fmt.Errorf("%w: %d", ErrUnknownType, index)
	}
	v, err := f(r)
	if err != nil {
		return empty, err
	}
	if err := r.Done(); err != nil {
		return empty, err
	}
	return v, nil
}
