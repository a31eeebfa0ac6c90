// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadHex(t *testing.T) {
	require := require.New(t)

	b, err := LoadHex("0x0102", 2)
	require.NoError(err)
	require.Equal([]byte{1, 2}, b)

	b, err = LoadHex("0102ff", -1)
	require.NoError(err)
	require.Equal([]byte{1, 2, 0xff}, b)

	_, err = LoadHex("0102", 3)
	require.ErrorIs(err, ErrInvalidSize)

	_, err = LoadHex("zz", -1)
	require.Error(err)
}

func TestBytesJSON(t *testing.T) {
	require := require.New(t)

	j, err := json.Marshal(Bytes{0xde, 0xad})
	require.NoError(err)
	require.Equal(`"dead"`, string(j))

	var b Bytes
	require.NoError(json.Unmarshal([]byte(`"0xbeef"`), &b))
	require.Equal(Bytes{0xbe, 0xef}, b)
}
