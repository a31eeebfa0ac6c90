// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/version"
)

// TypeIDs for actions
const (
	CreatePoolID uint8 = iota
	AddLiquidityID
	RemoveLiquidityID
	SwapID
)

// TypeIDs for derived addresses
const (
	AccountAddressID uint8 = iota
	AssetAddressID
	PoolAddressID
	LPAssetAddressID
)

const (
	Name = "AMMVM"

	// FeeDenominator is the number of basis points in one whole.
	FeeDenominator = 10_000
)

var ID ids.ID

func init() {
	b := make([]byte, ids.IDLen)
	copy(b, []byte(Name))
	vmID, err := ids.ToID(b)
	if err != nil {
		panic(err)
	}
	ID = vmID
}

var Version = &version.Semantic{
	Major: 0,
	Minor: 1,
	Patch: 0,
}
