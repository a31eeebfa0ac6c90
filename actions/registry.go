// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/ammvm/chain"
)

// NewRegistry returns a registry that decodes every pool operation.
func NewRegistry() (chain.ActionRegistry, error) {
	r := chain.NewActionRegistry()
	errs := &wrappers.Errs{}
	errs.Add(
		r.Register(&CreatePool{}, UnmarshalCreatePool),
		r.Register(&AddLiquidity{}, UnmarshalAddLiquidity),
		r.Register(&RemoveLiquidity{}, UnmarshalRemoveLiquidity),
		r.Register(&Swap{}, UnmarshalSwap),
	)
	return r, errs.Err
}
