// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

// Compute units per action, in multiples of the base unit.
const (
	CreatePoolComputeUnits      = 5
	AddLiquidityComputeUnits    = 3
	RemoveLiquidityComputeUnits = 3
	SwapComputeUnits            = 2
)
