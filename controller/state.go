// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"context"
	"slices"
	"sort"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"golang.org/x/exp/maps"

	"github.com/ava-labs/ammvm/state"
)

var (
	_ state.Immutable = (*dbReader)(nil)
	_ state.Mutable   = (*overlay)(nil)
)

// Database is the persistence the controller needs. Both
// avalanchego's memdb and [pebble.Database] satisfy it.
type Database interface {
	database.KeyValueReader
	database.KeyValueWriterDeleter
	database.Batcher
}

type dbReader struct {
	db database.KeyValueReader
}

func (r *dbReader) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return r.db.Get(key)
}

// overlay buffers unrestricted writes over [Database] until [overlay.Write].
// It is used for genesis, whose keys are not known up front.
type overlay struct {
	db      Database
	changes map[string]maybe.Maybe[[]byte]
}

func newOverlay(db Database) *overlay {
	return &overlay{
		db:      db,
		changes: make(map[string]maybe.Maybe[[]byte]),
	}
}

func (o *overlay) GetValue(_ context.Context, key []byte) ([]byte, error) {
	if v, ok := o.changes[string(key)]; ok {
		if v.IsNothing() {
			return nil, database.ErrNotFound
		}
		return v.Value(), nil
	}
	return o.db.Get(key)
}

func (o *overlay) Insert(_ context.Context, key []byte, value []byte) error {
	o.changes[string(key)] = maybe.Some(slices.Clone(value))
	return nil
}

func (o *overlay) Remove(_ context.Context, key []byte) error {
	o.changes[string(key)] = maybe.Nothing[[]byte]()
	return nil
}

// Write applies every buffered change in a single batch.
func (o *overlay) Write() error {
	batch := o.db.NewBatch()
	keys := maps.Keys(o.changes)
	sort.Strings(keys)
	for _, k := range keys {
		v := o.changes[k]
		if v.IsNothing() {
			if err := batch.Delete([]byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := batch.Put([]byte(k), v.Value()); err != nil {
			return err
		}
	}
	return batch.Write()
}
