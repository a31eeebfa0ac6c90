// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/ammvm/chain"
)

var _ chain.Rules = (*Rules)(nil)

type Rules struct {
	g *Genesis

	networkID uint32
	chainID   ids.ID
}

func (g *Genesis) Rules(networkID uint32, chainID ids.ID) *Rules {
	return &Rules{g, networkID, chainID}
}

func (r *Rules) GetNetworkID() uint32 {
	return r.networkID
}

func (r *Rules) GetChainID() ids.ID {
	return r.chainID
}

func (r *Rules) GetLPDecimals() uint8 {
	return r.g.LPDecimals
}

func (r *Rules) GetMaxFeeBps() uint16 {
	return r.g.MaxFeeBps
}

func (r *Rules) GetBaseComputeUnits() uint64 {
	return r.g.BaseComputeUnits
}

func (r *Rules) GetMaxActionComputeUnits() uint64 {
	return r.g.MaxActionComputeUnits
}
