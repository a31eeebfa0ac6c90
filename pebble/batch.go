// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
)

var (
	_ database.Batch = (*batch)(nil)

	errInvalidOperation = errors.New("invalid batch operation")
)

type batch struct {
	b  *pebble.Batch
	db *Database
}

func (b *batch) Put(key []byte, value []byte) error {
	return b.b.Set(key, value, nil)
}

func (b *batch) Delete(key []byte) error {
	return b.b.Delete(key, nil)
}

func (b *batch) Size() int {
	return len(b.b.Repr())
}

func (b *batch) Write() error {
	return b.b.Commit(b.db.writeOpts)
}

func (b *batch) Reset() {
	b.b.Reset()
}

// Replay applies every operation in the batch to [w] in insertion order.
func (b *batch) Replay(w database.KeyValueWriterDeleter) error {
	reader := b.b.Reader()
	for {
		kind, k, v, ok := reader.Next()
		if !ok {
			return nil
		}
		switch kind {
		case pebble.InternalKeyKindSet:
			if err := w.Put(k, v); err != nil {
				return err
			}
		case pebble.InternalKeyKindDelete:
			if err := w.Delete(k); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %v", errInvalidOperation, kind)
		}
	}
}

func (b *batch) Inner() database.Batch {
	return b
}
