// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumChunks(t *testing.T) {
	tests := []struct {
		size   int
		chunks uint16
	}{
		{size: 0, chunks: 0},
		{size: 1, chunks: 1},
		{size: chunkSize, chunks: 1},
		{size: chunkSize + 1, chunks: 2},
		{size: 3 * chunkSize, chunks: 3},
	}
	for _, tt := range tests {
		chunks, ok := NumChunks(make([]byte, tt.size))
		require.True(t, ok)
		require.Equal(t, tt.chunks, chunks, "size %d", tt.size)
	}
}

func TestVerifyValue(t *testing.T) {
	require := require.New(t)

	key := EncodeChunks([]byte{0x01, 0x02}, 1)
	chunks, ok := MaxChunks(key)
	require.True(ok)
	require.Equal(uint16(1), chunks)

	require.True(VerifyValue(key, make([]byte, chunkSize)))
	require.False(VerifyValue(key, make([]byte, chunkSize+1)))
	require.False(VerifyValue([]byte{0x01}, nil))
}
