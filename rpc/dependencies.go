// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/genesis"
	"github.com/ava-labs/ammvm/storage"
)

type Controller interface {
	Genesis() *genesis.Genesis
	Rules() chain.Rules
	Logger() logging.Logger
	Tracer() trace.Tracer
	Executed() uint64
	Rejected() uint64

	Pool(ctx context.Context, seed uint64, assetX, assetY codec.Address) (*storage.Pool, storage.Reserves, error)
	Balance(ctx context.Context, asset, owner codec.Address) (uint64, error)
	Asset(ctx context.Context, asset codec.Address) (*storage.Asset, error)

	QuoteDeposit(ctx context.Context, seed uint64, assetX, assetY codec.Address, lpAmount uint64) (uint64, uint64, error)
	QuoteWithdraw(ctx context.Context, seed uint64, assetX, assetY codec.Address, lpAmount uint64) (uint64, uint64, error)
	QuoteSwap(ctx context.Context, seed uint64, assetX, assetY codec.Address, assetInIsX bool, amountIn uint64) (uint64, uint64, error)

	ExecuteBytes(ctx context.Context, actor codec.Address, b []byte) (codec.Typed, error)
}
