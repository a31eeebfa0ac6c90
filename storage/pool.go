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

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/utils"
)

const poolSize = consts.Uint64Len + 3*codec.AddressLen + consts.Uint16Len + consts.BoolLen + consts.IDLen +
	consts.ByteLen + codec.AddressLen

var vaultDomain = []byte("vault")

// Pool is the persisted configuration of a two-asset pool. Reserves are
// not stored here: they are the pool address's balances of AssetX and
// AssetY, and the LP supply is the supply of LPAsset.
type Pool struct {
	Address   codec.Address  `json:"address"`
	Seed      uint64         `json:"seed"`
	AssetX    codec.Address  `json:"assetX"`
	AssetY    codec.Address  `json:"assetY"`
	FeeBps    uint16         `json:"feeBps"`
	Locked    bool           `json:"locked"`
	Authority *codec.Address `json:"authority,omitempty"`
	LPAsset   codec.Address  `json:"lpAsset"`

	signer ids.ID
}

// PoolAddress derives the address of the pool identified by [seed] and its
// asset pair. The pair is ordered: (x, y) and (y, x) are distinct pools.
func PoolAddress(seed uint64, assetX codec.Address, assetY codec.Address) codec.Address {
	v := make([]byte, consts.Uint64Len+2*codec.AddressLen)
	binary.BigEndian.PutUint64(v, seed)
	copy(v[consts.Uint64Len:], assetX[:])
	copy(v[consts.Uint64Len+codec.AddressLen:], assetY[:])
	return codec.CreateAddress(consts.PoolAddressID, utils.ToID(v))
}

// LPAssetAddress derives the claim token of [pool].
func LPAssetAddress(pool codec.Address) codec.Address {
	return codec.CreateAddress(consts.LPAssetAddressID, utils.ToID(pool[:]))
}

func vaultSigner(pool codec.Address) ids.ID {
	v := make([]byte, len(vaultDomain)+codec.AddressLen)
	copy(v, vaultDomain)
	copy(v[len(vaultDomain):], pool[:])
	return utils.ToID(v)
}

// [poolPrefix] + [pool]
func PoolKey(pool codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+consts.Uint16Len)
	k[0] = poolPrefix
	copy(k[1:], pool[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], PoolChunks)
	return k
}

// Vault returns the signing capability over the pool's holdings.
func (p *Pool) Vault() Vault {
	return Vault{pool: p.Address, signer: p.signer}
}

func (p *Pool) Marshal() ([]byte, error) {
	w := codec.NewWriter(poolSize, poolSize)
	w.PackUint64(p.Seed)
	w.PackAddress(p.AssetX)
	w.PackAddress(p.AssetY)
	w.PackUint16(p.FeeBps)
	w.PackBool(p.Locked)
	w.PackAddress(p.LPAsset)
	w.PackID(p.signer)
	op := codec.NewOptionalWriter(codec.AddressLen, codec.AddressLen)
	if p.Authority != nil {
		op.PackAddress(*p.Authority)
	} else {
		op.PackAddress(codec.EmptyAddress)
	}
	w.PackOptional(op)
	return w.Bytes(), w.Err()
}

func UnmarshalPool(address codec.Address, b []byte) (*Pool, error) {
	r := codec.NewReader(b, poolSize)
	p := Pool{Address: address}
	p.Seed = r.UnpackUint64(false)
	r.UnpackAddress(&p.AssetX)
	r.UnpackAddress(&p.AssetY)
	p.FeeBps = r.UnpackUint16(false)
	p.Locked = r.UnpackBool()
	r.UnpackAddress(&p.LPAsset)
	r.UnpackID(true, &p.signer)
	op := r.NewOptionalReader()
	var authority codec.Address
	if op.UnpackAddress(&authority) {
		p.Authority = &authority
	}
	op.Done()
	if err := r.Done(); err != nil {
		return nil, err
	}
	return &p, nil
}

func SetPool(ctx context.Context, mu state.Mutable, p *Pool) error {
	v, err := p.Marshal()
	if err != nil {
		return err
	}
	return mu.Insert(ctx, PoolKey(p.Address), v)
}

// GetPool returns [ErrPoolNotFound] if no pool lives at [pool].
func GetPool(ctx context.Context, im state.Immutable, pool codec.Address) (*Pool, error) {
	v, err := im.GetValue(ctx, PoolKey(pool))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPoolNotFound, pool)
	}
	if err != nil {
		return nil, err
	}
	return UnmarshalPool(pool, v)
}

func PoolExists(ctx context.Context, im state.Immutable, pool codec.Address) (bool, error) {
	_, err := im.GetValue(ctx, PoolKey(pool))
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Reserves is a snapshot of a pool's holdings read through the ledger.
type Reserves struct {
	X          uint64 `json:"x"`
	Y          uint64 `json:"y"`
	LPSupply   uint64 `json:"lpSupply"`
	LPDecimals uint8  `json:"lpDecimals"`
}

// Empty reports whether the pool has never been funded (or was fully
// drained).
func (r Reserves) Empty() bool {
	return r.LPSupply == 0 && r.X == 0 && r.Y == 0
}

func GetReserves(ctx context.Context, im state.Immutable, p *Pool) (Reserves, error) {
	x, err := GetBalance(ctx, im, p.AssetX, p.Address)
	if err != nil {
		return Reserves{}, err
	}
	y, err := GetBalance(ctx, im, p.AssetY, p.Address)
	if err != nil {
		return Reserves{}, err
	}
	lp, err := GetAsset(ctx, im, p.LPAsset)
	if err != nil {
		return Reserves{}, err
	}
	return Reserves{X: x, Y: y, LPSupply: lp.Supply, LPDecimals: lp.Decimals}, nil
}

// CreatePool writes a new unlocked pool record and its zero-supply LP
// asset. The pool's vault holdings start at zero.
func CreatePool(
	ctx context.Context,
	mu state.Mutable,
	seed uint64,
	assetX codec.Address,
	assetY codec.Address,
	feeBps uint16,
	authority *codec.Address,
	lpDecimals uint8,
) (*Pool, error) {
	address := PoolAddress(seed, assetX, assetY)
	exists, err := PoolExists(ctx, mu, address)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrPoolAlreadyExists, address)
	}
	// A credited vault would start with reserves but no supply and could
	// never be seeded.
	for _, asset := range []codec.Address{assetX, assetY} {
		bal, err := GetBalance(ctx, mu, asset, address)
		if err != nil {
			return nil, err
		}
		if bal > 0 {
			return nil, fmt.Errorf("%w: %s holds %d of %s", ErrPoolAddressFunded, address, bal, asset)
		}
	}
	p := &Pool{
		Address:   address,
		Seed:      seed,
		AssetX:    assetX,
		AssetY:    assetY,
		FeeBps:    feeBps,
		Authority: authority,
		LPAsset:   LPAssetAddress(address),
		signer:    vaultSigner(address),
	}
	if err := CreateAsset(ctx, mu, p.LPAsset, LPSymbol, lpDecimals, address); err != nil {
		return nil, err
	}
	if err := SetPool(ctx, mu, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetPoolLocked toggles the lock flag of [pool]. No registered action calls
// it; administrative callers must authorize against [Pool.Authority]
// themselves.
func SetPoolLocked(ctx context.Context, mu state.Mutable, pool codec.Address, locked bool) error {
	p, err := GetPool(ctx, mu, pool)
	if err != nil {
		return err
	}
	p.Locked = locked
	return SetPool(ctx, mu, p)
}
