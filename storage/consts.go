// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

// State
// 0x0/ (balance)
//   -> [asset|owner] => balance
// 0x1/ (asset)
//   -> [asset] => symbol|decimals|supply|issuer
// 0x2/ (pool)
//   -> [pool] => seed|assetX|assetY|fee|locked|lpAsset|signer|authority?
// 0x3/ (genesis)
//   -> genesis hash
const (
	balancePrefix byte = iota
	assetPrefix
	poolPrefix
	genesisPrefix
)

const (
	BalanceChunks uint16 = 1
	AssetChunks   uint16 = 1
	PoolChunks    uint16 = 3
	GenesisChunks uint16 = 1
)

const (
	MaxSymbolSize = 8
	MaxDecimals   = 18

	// LPDecimals is the default precision of pool claim tokens.
	LPDecimals = 6
	LPSymbol   = "AMMLP"
)
