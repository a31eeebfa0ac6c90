// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlippage(t *testing.T) {
	require := require.New(t)

	require.Equal(uint64(10_050), maxWithSlippage(10_000, 50))
	require.Equal(uint64(2), maxWithSlippage(1, 50))
	require.Equal(uint64(math.MaxUint64), maxWithSlippage(math.MaxUint64, 1))
	require.Equal(uint64(7), maxWithSlippage(7, 0))

	require.Equal(uint64(9_821), minWithSlippage(9_871, 50))
	require.Equal(uint64(0), minWithSlippage(1, 50))
	require.Equal(uint64(0), minWithSlippage(9_871, 10_000))
	require.Equal(uint64(9_871), minWithSlippage(9_871, 0))
}
