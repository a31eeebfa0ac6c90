// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/storage"
)

// MaxBaseComputeUnits bounds [Genesis.BaseComputeUnits] so per-action
// multiples cannot overflow.
const MaxBaseComputeUnits = 1 << 32

type Allocation struct {
	Address codec.Address `json:"address"`
	Balance uint64        `json:"balance"`
}

type Asset struct {
	Symbol      string        `json:"symbol"`
	Decimals    uint8         `json:"decimals"`
	Allocations []*Allocation `json:"allocations"`
}

type Genesis struct {
	// Pool Parameters
	LPDecimals uint8  `json:"lpDecimals"`
	MaxFeeBps  uint16 `json:"maxFeeBps"`

	// Action Parameters
	BaseComputeUnits      uint64 `json:"baseComputeUnits"`
	MaxActionComputeUnits uint64 `json:"maxActionComputeUnits"`

	// Base assets and their initial holders
	Assets []*Asset `json:"assets"`
}

func Default() *Genesis {
	return &Genesis{
		LPDecimals:            storage.LPDecimals,
		MaxFeeBps:             consts.FeeDenominator,
		BaseComputeUnits:      1,
		MaxActionComputeUnits: 16,
	}
}

func New(b []byte) (*Genesis, error) {
	g := Default()
	if len(b) > 0 {
		if err := json.Unmarshal(b, g); err != nil {
			return nil, fmt.Errorf("failed to unmarshal genesis %s: %w", string(b), err)
		}
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Genesis) Verify() error {
	if g.LPDecimals > storage.MaxDecimals {
		return fmt.Errorf("%w: %d", ErrInvalidLPDecimals, g.LPDecimals)
	}
	if g.MaxFeeBps > consts.FeeDenominator {
		return fmt.Errorf("%w: %d", ErrInvalidMaxFee, g.MaxFeeBps)
	}
	if g.BaseComputeUnits == 0 || g.BaseComputeUnits > MaxBaseComputeUnits {
		return fmt.Errorf("%w: base %d", ErrInvalidComputeUnits, g.BaseComputeUnits)
	}
	if g.MaxActionComputeUnits < g.BaseComputeUnits {
		return fmt.Errorf("%w: max %d below base %d", ErrInvalidComputeUnits, g.MaxActionComputeUnits, g.BaseComputeUnits)
	}
	symbols := set.NewSet[string](len(g.Assets))
	for _, a := range g.Assets {
		if symbols.Contains(a.Symbol) {
			return fmt.Errorf("%w: %s", ErrDuplicateAsset, a.Symbol)
		}
		symbols.Add(a.Symbol)
	}
	return nil
}

// Load creates every base asset and mints its allocations.
func (g *Genesis) Load(ctx context.Context, tracer trace.Tracer, mu state.Mutable) error {
	ctx, span := tracer.Start(ctx, "Genesis.Load")
	defer span.End()

	for _, a := range g.Assets {
		asset := storage.AssetAddress(a.Symbol)
		if err := storage.CreateAsset(ctx, mu, asset, a.Symbol, a.Decimals, codec.EmptyAddress); err != nil {
			return err
		}
		for _, alloc := range a.Allocations {
			if err := storage.Mint(ctx, mu, asset, alloc.Address, alloc.Balance); err != nil {
				return fmt.Errorf("%w: asset=%s, addr=%s, bal=%d", err, a.Symbol, alloc.Address, alloc.Balance)
			}
		}
	}
	return nil
}
