// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/ammvm/actions"
	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/genesis"
	"github.com/ava-labs/ammvm/storage"

	avarpc "github.com/ava-labs/avalanchego/utils/rpc"
)

type JSONRPCClient struct {
	requester avarpc.EndpointRequester

	g *genesis.Genesis
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	return &JSONRPCClient{requester: avarpc.NewEndpointRequester(uri)}
}

func (cli *JSONRPCClient) send(ctx context.Context, method string, args, reply interface{}) error {
	return cli.requester.SendRequest(ctx, Name+"."+method, args, reply)
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, uint64, uint64, error) {
	resp := new(PingReply)
	err := cli.send(ctx, "ping", nil, resp)
	return resp.Success, resp.Executed, resp.Rejected, err
}

func (cli *JSONRPCClient) Genesis(ctx context.Context) (*genesis.Genesis, error) {
	if cli.g != nil {
		return cli.g, nil
	}
	resp := new(GenesisReply)
	if err := cli.send(ctx, "genesis", nil, resp); err != nil {
		return nil, err
	}
	cli.g = resp.Genesis
	return resp.Genesis, nil
}

func (cli *JSONRPCClient) Network(ctx context.Context) (uint32, ids.ID, error) {
	resp := new(NetworkReply)
	err := cli.send(ctx, "network", nil, resp)
	return resp.NetworkID, resp.ChainID, err
}

func (cli *JSONRPCClient) Pool(ctx context.Context, seed uint64, assetX, assetY codec.Address) (*storage.Pool, storage.Reserves, error) {
	resp := new(PoolReply)
	err := cli.send(ctx, "pool", &PoolArgs{Seed: seed, AssetX: assetX, AssetY: assetY}, resp)
	return resp.Pool, resp.Reserves, err
}

func (cli *JSONRPCClient) Balance(ctx context.Context, asset, owner codec.Address) (*BalanceReply, error) {
	resp := new(BalanceReply)
	err := cli.send(ctx, "balance", &BalanceArgs{Asset: asset, Owner: owner}, resp)
	return resp, err
}

func (cli *JSONRPCClient) QuoteDeposit(ctx context.Context, seed uint64, assetX, assetY codec.Address, lpAmount uint64) (uint64, uint64, error) {
	resp := new(QuoteLiquidityReply)
	err := cli.send(ctx, "quoteDeposit", &QuoteLiquidityArgs{
		PoolArgs: PoolArgs{Seed: seed, AssetX: assetX, AssetY: assetY},
		LPAmount: lpAmount,
	}, resp)
	return resp.AmountX, resp.AmountY, err
}

func (cli *JSONRPCClient) QuoteWithdraw(ctx context.Context, seed uint64, assetX, assetY codec.Address, lpAmount uint64) (uint64, uint64, error) {
	resp := new(QuoteLiquidityReply)
	err := cli.send(ctx, "quoteWithdraw", &QuoteLiquidityArgs{
		PoolArgs: PoolArgs{Seed: seed, AssetX: assetX, AssetY: assetY},
		LPAmount: lpAmount,
	}, resp)
	return resp.AmountX, resp.AmountY, err
}

func (cli *JSONRPCClient) QuoteSwap(ctx context.Context, seed uint64, assetX, assetY codec.Address, assetInIsX bool, amountIn uint64) (uint64, uint64, error) {
	resp := new(QuoteSwapReply)
	err := cli.send(ctx, "quoteSwap", &QuoteSwapArgs{
		PoolArgs:   PoolArgs{Seed: seed, AssetX: assetX, AssetY: assetY},
		AssetInIsX: assetInIsX,
		AmountIn:   amountIn,
	}, resp)
	return resp.AmountInNet, resp.AmountOut, err
}

// SubmitAction executes [action] as [actor] and decodes the typed result.
func (cli *JSONRPCClient) SubmitAction(ctx context.Context, actor codec.Address, action chain.Action) (codec.Typed, error) {
	b, err := chain.MarshalAction(action)
	if err != nil {
		return nil, err
	}
	resp := new(SubmitActionReply)
	if err := cli.send(ctx, "submitAction", &SubmitActionArgs{Actor: actor, Action: b}, resp); err != nil {
		return nil, err
	}
	var result codec.Typed
	switch resp.TypeID {
	case consts.CreatePoolID:
		result = &actions.CreatePoolResult{}
	case consts.AddLiquidityID:
		result = &actions.AddLiquidityResult{}
	case consts.RemoveLiquidityID:
		result = &actions.RemoveLiquidityResult{}
	case consts.SwapID:
		result = &actions.SwapResult{}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownResult, resp.TypeID)
	}
	if err := json.Unmarshal(resp.Result, result); err != nil {
		return nil, err
	}
	return result, nil
}
