// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"errors"
	"slices"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

type Config struct {
	CacheSize                   int  `json:"cacheSize" yaml:"cacheSize"`
	BytesPerSync                int  `json:"bytesPerSync" yaml:"bytesPerSync"`
	WALBytesPerSync             int  `json:"walBytesPerSync" yaml:"walBytesPerSync"` // 0 means no background syncing
	MemTableStopWritesThreshold int  `json:"memTableStopWritesThreshold" yaml:"memTableStopWritesThreshold"`
	MemTableSize                int  `json:"memTableSize" yaml:"memTableSize"`
	MaxOpenFiles                int  `json:"maxOpenFiles" yaml:"maxOpenFiles"`
	ConcurrentCompactions       int  `json:"concurrentCompactions" yaml:"concurrentCompactions"`
	Sync                        bool `json:"sync" yaml:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   256 * units.MiB,
		BytesPerSync:                512 * units.KiB,
		WALBytesPerSync:             0,
		MemTableStopWritesThreshold: 8,
		MemTableSize:                64 * units.MiB,
		MaxOpenFiles:                4_096,
		ConcurrentCompactions:       1,
		Sync:                        true,
	}
}

// Database stores ledger records on disk. It implements the subset of
// avalanchego's database interface the controller needs.
type Database struct {
	db        *pebble.DB
	writeOpts *pebble.WriteOptions
	metrics   *metrics
	closing   chan struct{}
	closed    chan struct{}
}

// New opens (or creates) a database at [file]. The returned registry holds
// the database's metrics.
func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	// These default settings are based on https://github.com/ethereum/go-ethereum/blob/master/ethdb/pebble/pebble.go
	d := &Database{
		writeOpts: &pebble.WriteOptions{Sync: cfg.Sync},
		closing:   make(chan struct{}),
		closed:    make(chan struct{}),
	}
	cache := pebble.NewCache(int64(cfg.CacheSize))
	defer cache.Unref()
	opts := &pebble.Options{
		Cache:                       cache,
		BytesPerSync:                cfg.BytesPerSync,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MemTableSize:                uint64(cfg.MemTableSize),
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
	}
	opts.Experimental.ReadSamplingMultiplier = -1 // explicitly disable seek compaction
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d.metrics = metrics
	opts.EventListener = &pebble.EventListener{
		CompactionBegin: d.onCompactionBegin,
		CompactionEnd:   d.onCompactionEnd,
		WriteStallBegin: d.onWriteStallBegin,
		WriteStallEnd:   d.onWriteStallEnd,
	}
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db
	go func() {
		defer close(d.closed)
		d.collectMetrics()
	}()
	return d, registry, nil
}

func (db *Database) Has(key []byte) (bool, error) {
	_, closer, err := db.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, closer.Close()
}

// Get returns a copy of the value stored at [key] or
// [database.ErrNotFound].
func (db *Database) Get(key []byte) ([]byte, error) {
	start := time.Now()
	data, closer, err := db.db.Get(key)
	db.metrics.getLatency.Observe(float64(time.Since(start)))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	ret := slices.Clone(data)
	return ret, closer.Close()
}

func (db *Database) Put(key []byte, value []byte) error {
	return db.db.Set(key, value, db.writeOpts)
}

func (db *Database) Delete(key []byte) error {
	return db.db.Delete(key, db.writeOpts)
}

func (db *Database) NewBatch() database.Batch {
	return &batch{b: db.db.NewBatch(), db: db}
}

func (db *Database) Close() error {
	close(db.closing)
	<-db.closed
	return db.db.Close()
}
