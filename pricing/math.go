// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "github.com/holiman/uint256"

// mulDivFloor returns floor(a*b/d) with a 256-bit intermediate.
func mulDivFloor(a, b, d uint64) (uint64, error) {
	q := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	q.Div(q, uint256.NewInt(d))
	if !q.IsUint64() {
		return 0, ErrOverflow
	}
	return q.Uint64(), nil
}

// mulDivCeil returns ceil(a*b/d) with a 256-bit intermediate.
func mulDivCeil(a, b, d uint64) (uint64, error) {
	p := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	den := uint256.NewInt(d)
	q := new(uint256.Int).Div(p, den)
	if !new(uint256.Int).Mod(p, den).IsZero() {
		q.AddUint64(q, 1)
	}
	if !q.IsUint64() {
		return 0, ErrOverflow
	}
	return q.Uint64(), nil
}

// Invariant returns x*y.
func Invariant(x, y uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(x), uint256.NewInt(y))
}

// CheckInvariant returns [ErrInvariantViolated] if the product of the
// new reserves is smaller than the product of the old ones.
func CheckInvariant(oldX, oldY, newX, newY uint64) error {
	if Invariant(newX, newY).Lt(Invariant(oldX, oldY)) {
		return ErrInvariantViolated
	}
	return nil
}
