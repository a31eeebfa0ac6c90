// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"github.com/holiman/uint256"

	"github.com/ava-labs/ammvm/consts"
)

// MaxPrecision is the largest number of decimals an LP asset may carry.
const MaxPrecision = 18

// QuoteDeposit returns the amounts of X and Y that must be deposited to
// mint [lpAmount] new LP units into a non-empty pool. Both amounts round up.
//
// [decimals] is the precision of the LP asset. The share math is exact
// integer math and does not depend on it.
func QuoteDeposit(reserveX, reserveY, lpSupply, lpAmount uint64, decimals uint8) (uint64, uint64, error) {
	if err := checkPool(reserveX, reserveY, lpSupply, lpAmount, decimals); err != nil {
		return 0, 0, err
	}
	x, err := mulDivCeil(lpAmount, reserveX, lpSupply)
	if err != nil {
		return 0, 0, err
	}
	y, err := mulDivCeil(lpAmount, reserveY, lpSupply)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// QuoteWithdraw returns the amounts of X and Y released by burning
// [lpAmount] LP units. Both amounts round down.
func QuoteWithdraw(reserveX, reserveY, lpSupply, lpAmount uint64, decimals uint8) (uint64, uint64, error) {
	if err := checkPool(reserveX, reserveY, lpSupply, lpAmount, decimals); err != nil {
		return 0, 0, err
	}
	if lpAmount > lpSupply {
		return 0, 0, ErrBurnExceedsSupply
	}
	// lpAmount <= lpSupply so neither result can exceed its reserve.
	x, err := mulDivFloor(lpAmount, reserveX, lpSupply)
	if err != nil {
		return 0, 0, err
	}
	y, err := mulDivFloor(lpAmount, reserveY, lpSupply)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// QuoteSwap returns the fee-adjusted input and the output for selling
// [amountIn] into a pool holding [reserveIn] and [reserveOut]. The fee
// stays in the input reserve and the output rounds down, so
// reserveIn*reserveOut <= (reserveIn+amountInNet)*(reserveOut-amountOut).
func QuoteSwap(reserveIn, reserveOut uint64, feeBps uint16, amountIn uint64) (uint64, uint64, error) {
	switch {
	case amountIn == 0:
		return 0, 0, ErrZeroInput
	case reserveIn == 0 || reserveOut == 0:
		return 0, 0, ErrReservesZero
	case feeBps > consts.FeeDenominator:
		return 0, 0, ErrInvalidFee
	}

	amountInNet, err := mulDivFloor(amountIn, uint64(consts.FeeDenominator-feeBps), consts.FeeDenominator)
	if err != nil {
		return 0, 0, err
	}
	if amountInNet == 0 {
		return 0, 0, nil
	}

	num := new(uint256.Int).Mul(uint256.NewInt(amountInNet), uint256.NewInt(reserveOut))
	den := new(uint256.Int).Add(uint256.NewInt(reserveIn), uint256.NewInt(amountInNet))
	out := num.Div(num, den)
	if !out.IsUint64() || out.Uint64() >= reserveOut {
		return 0, 0, ErrInsufficientReserve
	}
	return amountInNet, out.Uint64(), nil
}

func checkPool(reserveX, reserveY, lpSupply, lpAmount uint64, decimals uint8) error {
	switch {
	case decimals > MaxPrecision:
		return ErrInvalidPrecision
	case lpAmount == 0:
		return ErrZeroInput
	case lpSupply == 0:
		return ErrZeroSupply
	case reserveX == 0 || reserveY == 0:
		return ErrReservesZero
	default:
		return nil
	}
}
