// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package throughput

import (
	"time"

	"github.com/ava-labs/ammvm/codec"
)

type Config struct {
	Actor  codec.Address
	Seed   uint64
	AssetX codec.Address
	AssetY codec.Address

	// Swap sizes are drawn uniformly from [MinAmountIn, MaxAmountIn].
	MinAmountIn uint64
	MaxAmountIn uint64

	SwapsPerSecond int
	NumClients     int
	Duration       time.Duration

	// 0 disables periodic stats.
	LogInterval time.Duration
}

func NewDefaultConfig(actor codec.Address, assetX, assetY codec.Address) *Config {
	return &Config{
		Actor:          actor,
		AssetX:         assetX,
		AssetY:         assetY,
		MinAmountIn:    1_000,
		MaxAmountIn:    10_000,
		SwapsPerSecond: 100,
		NumClients:     4,
		Duration:       10 * time.Second,
		LogInterval:    time.Second,
	}
}

func (c *Config) Verify() error {
	switch {
	case c.MinAmountIn == 0 || c.MinAmountIn > c.MaxAmountIn:
		return ErrInvalidAmountRange
	case c.SwapsPerSecond <= 0 || c.NumClients <= 0:
		return ErrInvalidRate
	default:
		return nil
	}
}
