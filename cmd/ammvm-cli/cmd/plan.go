// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v2"

	"github.com/ava-labs/ammvm/actions"
	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/genesis"
	"github.com/ava-labs/ammvm/storage"
	"github.com/ava-labs/ammvm/utils"
)

const (
	CreatePoolAction      = "create_pool"
	AddLiquidityAction    = "add_liquidity"
	RemoveLiquidityAction = "remove_liquidity"
	SwapAction            = "swap"
)

type Plan struct {
	// The name of the plan.
	Name string `yaml:"name"`
	// A description of the plan.
	Description string `yaml:"description"`
	// Base assets and the named accounts holding them.
	Assets []PlanAsset `yaml:"assets"`
	// Steps performed in order during simulation.
	Steps []Step `yaml:"steps"`
}

type PlanAsset struct {
	Symbol   string            `yaml:"symbol"`
	Decimals uint8             `yaml:"decimals"`
	Balances map[string]uint64 `yaml:"balances"`
}

type Step struct {
	Description string `yaml:"description"`
	// Named account the action executes as. (required)
	Actor string `yaml:"actor"`
	// One of create_pool, add_liquidity, remove_liquidity or swap. (required)
	Action string `yaml:"action"`

	Seed   uint64 `yaml:"seed"`
	AssetX string `yaml:"assetX"`
	AssetY string `yaml:"assetY"`

	FeeBps    uint16 `yaml:"feeBps"`
	Authority string `yaml:"authority"`

	LPAmount uint64 `yaml:"lpAmount"`
	MaxX     uint64 `yaml:"maxX"`
	MaxY     uint64 `yaml:"maxY"`
	MinX     uint64 `yaml:"minX"`
	MinY     uint64 `yaml:"minY"`

	AssetIn      string `yaml:"assetIn"`
	AmountIn     uint64 `yaml:"amountIn"`
	MinAmountOut uint64 `yaml:"minAmountOut"`

	// Define required assertions against this step.
	Require Require `yaml:"require"`
}

type Require struct {
	// Substring of the error the step must fail with. Empty requires
	// success.
	Error string `yaml:"error"`
}

type Response struct {
	// The index of the step that generated this response.
	ID          int             `json:"id"`
	Description string          `json:"description,omitempty"`
	Action      string          `json:"action"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
}

func unmarshalPlan(b []byte) (*Plan, error) {
	p := &Plan{}
	if err := yaml.UnmarshalStrict(b, p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	return p, nil
}

// AccountAddress derives the address used for the named account [name].
func AccountAddress(name string) codec.Address {
	return codec.CreateAddress(consts.AccountAddressID, utils.ToID([]byte(name)))
}

func (p *Plan) Verify() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: no steps found", ErrInvalidPlan)
	}
	symbols := make(map[string]struct{}, len(p.Assets))
	for _, a := range p.Assets {
		symbols[a.Symbol] = struct{}{}
	}
	for i, step := range p.Steps {
		if len(step.Actor) == 0 {
			return fmt.Errorf("%w %d: missing actor", ErrInvalidStep, i)
		}
		switch step.Action {
		case CreatePoolAction, AddLiquidityAction, RemoveLiquidityAction:
		case SwapAction:
			if step.AssetIn != step.AssetX && step.AssetIn != step.AssetY {
				return fmt.Errorf("%w %d: assetIn %q is not in the pair", ErrInvalidStep, i, step.AssetIn)
			}
		default:
			return fmt.Errorf("%w %d: %w %q", ErrInvalidStep, i, ErrUnknownAction, step.Action)
		}
		// Unknown symbols are left to execution so plans can assert on
		// missing assets.
		if len(step.AssetX) == 0 || len(step.AssetY) == 0 {
			return fmt.Errorf("%w %d: missing asset", ErrInvalidStep, i)
		}
	}
	return nil
}

// Genesis returns the genesis funding every account named in [p.Assets].
func (p *Plan) Genesis() *genesis.Genesis {
	g := genesis.Default()
	for _, a := range p.Assets {
		asset := &genesis.Asset{Symbol: a.Symbol, Decimals: a.Decimals}
		names := make([]string, 0, len(a.Balances))
		for name := range a.Balances {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			asset.Allocations = append(asset.Allocations, &genesis.Allocation{
				Address: AccountAddress(name),
				Balance: a.Balances[name],
			})
		}
		g.Assets = append(g.Assets, asset)
	}
	return g
}

// ToAction builds the action [s] describes.
func (s *Step) ToAction() (chain.Action, error) {
	assetX := storage.AssetAddress(s.AssetX)
	assetY := storage.AssetAddress(s.AssetY)
	switch s.Action {
	case CreatePoolAction:
		action := &actions.CreatePool{
			Seed:   s.Seed,
			FeeBps: s.FeeBps,
			AssetX: assetX,
			AssetY: assetY,
		}
		if len(s.Authority) > 0 {
			authority := AccountAddress(s.Authority)
			action.Authority = &authority
		}
		return action, nil
	case AddLiquidityAction:
		return &actions.AddLiquidity{
			Seed:     s.Seed,
			AssetX:   assetX,
			AssetY:   assetY,
			LPAmount: s.LPAmount,
			MaxX:     s.MaxX,
			MaxY:     s.MaxY,
		}, nil
	case RemoveLiquidityAction:
		return &actions.RemoveLiquidity{
			Seed:     s.Seed,
			AssetX:   assetX,
			AssetY:   assetY,
			LPAmount: s.LPAmount,
			MinX:     s.MinX,
			MinY:     s.MinY,
		}, nil
	case SwapAction:
		return &actions.Swap{
			Seed:         s.Seed,
			AssetX:       assetX,
			AssetY:       assetY,
			AssetInIsX:   s.AssetIn == s.AssetX,
			AmountIn:     s.AmountIn,
			MinAmountOut: s.MinAmountOut,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, s.Action)
	}
}
