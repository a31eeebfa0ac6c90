// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPermissionsHas(t *testing.T) {
	tests := []struct {
		name    string
		perm    Permissions
		require Permissions
		has     bool
	}{
		{name: "read has read", perm: Read, require: Read, has: true},
		{name: "read lacks write", perm: Read, require: Write},
		{name: "write has read", perm: Write, require: Read, has: true},
		{name: "write lacks allocate", perm: Write, require: Allocate},
		{name: "all has allocate", perm: All, require: Allocate, has: true},
		{name: "none lacks read", perm: None, require: Read},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.has, tt.perm.Has(tt.require))
		})
	}
}

func TestKeysAdd(t *testing.T) {
	require := require.New(t)
	k := Keys{}
	k.Add("b", Read)
	k.Add("a", Write)
	k.Add("b", Allocate)
	require.Equal(Allocate, k["b"])
	require.Equal([]string{"a", "b"}, k.Sorted())
}
