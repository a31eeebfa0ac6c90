// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuoteSwap(t *testing.T) {
	tests := []struct {
		name       string
		reserveIn  uint64
		reserveOut uint64
		fee        uint16
		amountIn   uint64
		net        uint64
		out        uint64
		err        error
	}{
		{
			name:       "balanced pool with 30 bps fee",
			reserveIn:  1_000_000,
			reserveOut: 1_000_000,
			fee:        30,
			amountIn:   10_000,
			net:        9_970,
			out:        9_871,
		},
		{
			name:       "no fee",
			reserveIn:  1_000,
			reserveOut: 1_000,
			amountIn:   1_000,
			net:        1_000,
			out:        500,
		},
		{
			name:       "full fee leaves nothing",
			reserveIn:  1_000,
			reserveOut: 1_000,
			fee:        10_000,
			amountIn:   1_000,
		},
		{
			name:       "fee rounds input to zero",
			reserveIn:  1_000,
			reserveOut: 1_000,
			fee:        30,
			amountIn:   1,
		},
		{
			name:       "large reserves do not overflow",
			reserveIn:  math.MaxUint64 / 2,
			reserveOut: math.MaxUint64 / 2,
			amountIn:   math.MaxUint64 / 2,
			net:        math.MaxUint64 / 2,
			out:        math.MaxUint64 / 4,
		},
		{
			name:       "zero input",
			reserveIn:  1,
			reserveOut: 1,
			err:        ErrZeroInput,
		},
		{
			name:      "empty reserve",
			reserveIn: 1,
			amountIn:  1,
			err:       ErrReservesZero,
		},
		{
			name:       "fee above one whole",
			reserveIn:  1,
			reserveOut: 1,
			fee:        10_001,
			amountIn:   1,
			err:        ErrInvalidFee,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			net, out, err := QuoteSwap(tt.reserveIn, tt.reserveOut, tt.fee, tt.amountIn)
			require.ErrorIs(err, tt.err)
			if err != nil {
				require.ErrorIs(err, ErrCurve)
				return
			}
			require.Equal(tt.net, net)
			require.Equal(tt.out, out)
		})
	}
}

func TestQuoteDeposit(t *testing.T) {
	tests := []struct {
		name     string
		reserveX uint64
		reserveY uint64
		supply   uint64
		lp       uint64
		decimals uint8
		x        uint64
		y        uint64
		err      error
	}{
		{
			name:     "exact share",
			reserveX: 1_000,
			reserveY: 2_000,
			supply:   100,
			lp:       10,
			x:        100,
			y:        200,
		},
		{
			name:     "rounds up",
			reserveX: 10,
			reserveY: 7,
			supply:   3,
			lp:       1,
			x:        4,
			y:        3,
		},
		{
			name:     "overflow",
			reserveX: math.MaxUint64,
			reserveY: 1,
			supply:   1,
			lp:       2,
			err:      ErrOverflow,
		},
		{
			name:     "zero supply",
			reserveX: 1,
			reserveY: 1,
			lp:       1,
			err:      ErrZeroSupply,
		},
		{
			name:     "zero lp",
			reserveX: 1,
			reserveY: 1,
			supply:   1,
			err:      ErrZeroInput,
		},
		{
			name:     "reserve drained",
			reserveX: 1,
			supply:   1,
			lp:       1,
			err:      ErrReservesZero,
		},
		{
			name:     "precision too large",
			reserveX: 1,
			reserveY: 1,
			supply:   1,
			lp:       1,
			decimals: MaxPrecision + 1,
			err:      ErrInvalidPrecision,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			x, y, err := QuoteDeposit(tt.reserveX, tt.reserveY, tt.supply, tt.lp, tt.decimals)
			require.ErrorIs(err, tt.err)
			require.Equal(tt.x, x)
			require.Equal(tt.y, y)
		})
	}
}

func TestQuoteWithdraw(t *testing.T) {
	require := require.New(t)

	x, y, err := QuoteWithdraw(10, 7, 3, 1, 6)
	require.NoError(err)
	require.Equal(uint64(3), x)
	require.Equal(uint64(2), y)

	x, y, err = QuoteWithdraw(10, 7, 3, 3, 6)
	require.NoError(err)
	require.Equal(uint64(10), x)
	require.Equal(uint64(7), y)

	_, _, err = QuoteWithdraw(10, 7, 3, 4, 6)
	require.ErrorIs(err, ErrBurnExceedsSupply)
	require.ErrorIs(err, ErrCurve)

	_, _, err = QuoteWithdraw(10, 7, 0, 1, 6)
	require.ErrorIs(err, ErrZeroSupply)
}

func exactShare(lp, reserve, supply uint64) *big.Rat {
	num := new(big.Int).Mul(new(big.Int).SetUint64(lp), new(big.Int).SetUint64(reserve))
	return new(big.Rat).SetFrac(num, new(big.Int).SetUint64(supply))
}

func TestRoundingFavorsPool(t *testing.T) {
	require := require.New(t)
	r := rand.New(rand.NewSource(1)) //nolint:gosec

	for i := 0; i < 1_000; i++ {
		reserveX := r.Uint64()>>8 + 1
		reserveY := r.Uint64()>>8 + 1
		supply := r.Uint64()>>16 + 1
		lp := r.Uint64()%supply + 1

		dx, dy, err := QuoteDeposit(reserveX, reserveY, supply, lp, 6)
		if err != nil {
			require.ErrorIs(err, ErrOverflow)
			continue
		}
		require.GreaterOrEqual(new(big.Rat).SetInt(new(big.Int).SetUint64(dx)).Cmp(exactShare(lp, reserveX, supply)), 0)
		require.GreaterOrEqual(new(big.Rat).SetInt(new(big.Int).SetUint64(dy)).Cmp(exactShare(lp, reserveY, supply)), 0)

		wx, wy, err := QuoteWithdraw(reserveX, reserveY, supply, lp, 6)
		require.NoError(err)
		require.LessOrEqual(new(big.Rat).SetInt(new(big.Int).SetUint64(wx)).Cmp(exactShare(lp, reserveX, supply)), 0)
		require.LessOrEqual(new(big.Rat).SetInt(new(big.Int).SetUint64(wy)).Cmp(exactShare(lp, reserveY, supply)), 0)
	}
}

func TestDepositThenWithdrawNeverProfits(t *testing.T) {
	require := require.New(t)
	r := rand.New(rand.NewSource(2)) //nolint:gosec

	for i := 0; i < 1_000; i++ {
		reserveX := r.Uint64()>>24 + 1
		reserveY := r.Uint64()>>24 + 1
		supply := r.Uint64()>>32 + 1
		lp := r.Uint64()>>44 + 1

		dx, dy, err := QuoteDeposit(reserveX, reserveY, supply, lp, 6)
		require.NoError(err)

		wx, wy, err := QuoteWithdraw(reserveX+dx, reserveY+dy, supply+lp, lp, 6)
		require.NoError(err)
		require.LessOrEqual(wx, dx)
		require.LessOrEqual(wy, dy)
	}
}

func TestSwapNeverDecreasesInvariant(t *testing.T) {
	require := require.New(t)
	r := rand.New(rand.NewSource(3)) //nolint:gosec

	for i := 0; i < 5_000; i++ {
		reserveIn := r.Uint64()>>1 + 1
		reserveOut := r.Uint64()>>1 + 1
		fee := uint16(r.Intn(10_001))
		amountIn := r.Uint64()>>uint(r.Intn(64)) + 1
		if amountIn > math.MaxUint64-reserveIn {
			amountIn = math.MaxUint64 - reserveIn
		}

		net, out, err := QuoteSwap(reserveIn, reserveOut, fee, amountIn)
		if err != nil {
			require.ErrorIs(err, ErrInsufficientReserve)
			continue
		}
		require.LessOrEqual(net, amountIn)
		require.Less(out, reserveOut)
		require.NoError(CheckInvariant(reserveIn, reserveOut, reserveIn+amountIn, reserveOut-out))
		require.NoError(CheckInvariant(reserveIn, reserveOut, reserveIn+net, reserveOut-out))
	}
}

func TestCheckInvariant(t *testing.T) {
	require := require.New(t)
	require.NoError(CheckInvariant(10, 10, 20, 5))
	require.ErrorIs(CheckInvariant(10, 10, 20, 4), ErrInvariantViolated)
	require.Equal(uint64(100), Invariant(10, 10).Uint64())
}
