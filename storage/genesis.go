// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/state"
)

// [genesisPrefix]
func GenesisKey() []byte {
	k := make([]byte, 1+consts.Uint16Len)
	k[0] = genesisPrefix
	binary.BigEndian.PutUint16(k[1:], GenesisChunks)
	return k
}

// GetGenesisHash returns the hash of the genesis the state was loaded from
// and false if no genesis has been loaded.
func GetGenesisHash(ctx context.Context, im state.Immutable) (ids.ID, bool, error) {
	v, err := im.GetValue(ctx, GenesisKey())
	if errors.Is(err, database.ErrNotFound) {
		return ids.Empty, false, nil
	}
	if err != nil {
		return ids.Empty, false, err
	}
	id, err := ids.ToID(v)
	if err != nil {
		return ids.Empty, false, fmt.Errorf("%w: genesis record", err)
	}
	return id, true, nil
}

func SetGenesisHash(ctx context.Context, mu state.Mutable, id ids.ID) error {
	return mu.Insert(ctx, GenesisKey(), id[:])
}
