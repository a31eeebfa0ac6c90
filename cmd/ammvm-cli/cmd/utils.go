// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"math"

	"github.com/holiman/uint256"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/storage"
	"github.com/ava-labs/ammvm/utils"
)

// maxWithSlippage widens [v] by [bps] basis points, rounding up and
// saturating at [math.MaxUint64].
func maxWithSlippage(v uint64, bps uint64) uint64 {
	n := new(uint256.Int).Mul(uint256.NewInt(v), uint256.NewInt(consts.FeeDenominator+bps))
	d := uint256.NewInt(consts.FeeDenominator)
	q := new(uint256.Int).Div(n, d)
	if !new(uint256.Int).Mod(n, d).IsZero() {
		q.AddUint64(q, 1)
	}
	if !q.IsUint64() {
		return math.MaxUint64
	}
	return q.Uint64()
}

// minWithSlippage narrows [v] by [bps] basis points, rounding down.
func minWithSlippage(v uint64, bps uint64) uint64 {
	if bps >= consts.FeeDenominator {
		return 0
	}
	n := new(uint256.Int).Mul(uint256.NewInt(v), uint256.NewInt(consts.FeeDenominator-bps))
	return n.Div(n, uint256.NewInt(consts.FeeDenominator)).Uint64()
}

func printPool(pool *storage.Pool, reserves storage.Reserves) {
	utils.Outf("{{yellow}}pool:{{/}} %s\n", pool.Address)
	utils.Outf("{{yellow}}seed:{{/}} %d {{yellow}}fee:{{/}} %d bps {{yellow}}locked:{{/}} %t\n", pool.Seed, pool.FeeBps, pool.Locked)
	utils.Outf("{{yellow}}assetX:{{/}} %s {{yellow}}reserve:{{/}} %d\n", pool.AssetX, reserves.X)
	utils.Outf("{{yellow}}assetY:{{/}} %s {{yellow}}reserve:{{/}} %d\n", pool.AssetY, reserves.Y)
	utils.Outf(
		"{{yellow}}lpAsset:{{/}} %s {{yellow}}supply:{{/}} %s\n",
		pool.LPAsset,
		utils.FormatAmount(reserves.LPSupply, reserves.LPDecimals),
	)
}

func printResult(result codec.Typed) error {
	b, err := json.Marshal(result)
	if err != nil {
		return err
	}
	utils.Outf("{{green}}success:{{/}} %s\n", b)
	return nil
}
