// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/state"
)

type Rules interface {
	GetNetworkID() uint32
	GetChainID() ids.ID

	// GetLPDecimals is the precision given to every new LP asset.
	GetLPDecimals() uint8
	// GetMaxFeeBps caps the fee a new pool may charge.
	GetMaxFeeBps() uint16

	// GetBaseComputeUnits scales the per-action unit cost.
	GetBaseComputeUnits() uint64
	// GetMaxActionComputeUnits is the most units a single action may use.
	GetMaxActionComputeUnits() uint64
}

type Action interface {
	codec.Typed

	// ComputeUnits is the amount of compute required to call [Execute]. An
	// action above [Rules.GetMaxActionComputeUnits] is rejected before it
	// runs.
	ComputeUnits(Rules) uint64

	// StateKeys is a full enumeration of all database keys that could be touched during execution
	// of an [Action]. This is used to prefetch state and to serialize actions with overlapping keys.
	//
	// All keys specified must be suffixed with the number of chunks that could ever be read from that
	// key (formatted as a big-endian uint16). Writes larger than this are rejected.
	StateKeys(actor codec.Address) state.Keys

	// Execute actually runs the [Action]. Any state changes that the [Action] performs should
	// be done here.
	//
	// Touching a key not specified in [StateKeys] returns an error. If [Execute] returns an error,
	// any state changes it made are discarded.
	Execute(
		ctx context.Context,
		r Rules,
		mu state.Mutable,
		timestamp int64,
		actor codec.Address,
		actionID ids.ID,
	) (codec.Typed, error)

	// Size is the number of bytes [Marshal] produces, excluding the type
	// byte.
	Size() int
	Marshal(p *codec.Packer)
}
