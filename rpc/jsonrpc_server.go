// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"encoding/json"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"go.uber.org/zap"

	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/genesis"
	"github.com/ava-labs/ammvm/storage"
)

type JSONRPCServer struct {
	c Controller
}

func NewJSONRPCServer(c Controller) *JSONRPCServer {
	return &JSONRPCServer{c}
}

type PingReply struct {
	Success  bool   `json:"success"`
	Executed uint64 `json:"executed"`
	Rejected uint64 `json:"rejected"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.c.Logger().Info("ping")
	reply.Success = true
	reply.Executed = j.c.Executed()
	reply.Rejected = j.c.Rejected()
	return nil
}

type GenesisReply struct {
	Genesis *genesis.Genesis `json:"genesis"`
}

func (j *JSONRPCServer) Genesis(_ *http.Request, _ *struct{}, reply *GenesisReply) (err error) {
	reply.Genesis = j.c.Genesis()
	return nil
}

type NetworkReply struct {
	NetworkID uint32 `json:"networkId"`
	ChainID   ids.ID `json:"chainId"`
}

func (j *JSONRPCServer) Network(_ *http.Request, _ *struct{}, reply *NetworkReply) (err error) {
	rules := j.c.Rules()
	reply.NetworkID = rules.GetNetworkID()
	reply.ChainID = rules.GetChainID()
	return nil
}

type PoolArgs struct {
	Seed   uint64        `json:"seed"`
	AssetX codec.Address `json:"assetX"`
	AssetY codec.Address `json:"assetY"`
}

type PoolReply struct {
	Pool     *storage.Pool    `json:"pool"`
	Reserves storage.Reserves `json:"reserves"`
}

func (j *JSONRPCServer) Pool(req *http.Request, args *PoolArgs, reply *PoolReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "JSONRPCServer.Pool")
	defer span.End()

	pool, reserves, err := j.c.Pool(ctx, args.Seed, args.AssetX, args.AssetY)
	if err != nil {
		return err
	}
	reply.Pool = pool
	reply.Reserves = reserves
	return nil
}

type BalanceArgs struct {
	Asset codec.Address `json:"asset"`
	Owner codec.Address `json:"owner"`
}

type BalanceReply struct {
	Amount   uint64 `json:"amount"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

func (j *JSONRPCServer) Balance(req *http.Request, args *BalanceArgs, reply *BalanceReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "JSONRPCServer.Balance")
	defer span.End()

	asset, err := j.c.Asset(ctx, args.Asset)
	if err != nil {
		return err
	}
	amount, err := j.c.Balance(ctx, args.Asset, args.Owner)
	if err != nil {
		return err
	}
	reply.Amount = amount
	reply.Symbol = asset.Symbol
	reply.Decimals = asset.Decimals
	return nil
}

type QuoteLiquidityArgs struct {
	PoolArgs
	LPAmount uint64 `json:"lpAmount"`
}

type QuoteLiquidityReply struct {
	AmountX uint64 `json:"amountX"`
	AmountY uint64 `json:"amountY"`
}

func (j *JSONRPCServer) QuoteDeposit(req *http.Request, args *QuoteLiquidityArgs, reply *QuoteLiquidityReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "JSONRPCServer.QuoteDeposit")
	defer span.End()

	x, y, err := j.c.QuoteDeposit(ctx, args.Seed, args.AssetX, args.AssetY, args.LPAmount)
	if err != nil {
		return err
	}
	reply.AmountX, reply.AmountY = x, y
	return nil
}

func (j *JSONRPCServer) QuoteWithdraw(req *http.Request, args *QuoteLiquidityArgs, reply *QuoteLiquidityReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "JSONRPCServer.QuoteWithdraw")
	defer span.End()

	x, y, err := j.c.QuoteWithdraw(ctx, args.Seed, args.AssetX, args.AssetY, args.LPAmount)
	if err != nil {
		return err
	}
	reply.AmountX, reply.AmountY = x, y
	return nil
}

type QuoteSwapArgs struct {
	PoolArgs
	AssetInIsX bool   `json:"assetInIsX"`
	AmountIn   uint64 `json:"amountIn"`
}

type QuoteSwapReply struct {
	AmountInNet uint64 `json:"amountInNet"`
	AmountOut   uint64 `json:"amountOut"`
}

func (j *JSONRPCServer) QuoteSwap(req *http.Request, args *QuoteSwapArgs, reply *QuoteSwapReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "JSONRPCServer.QuoteSwap")
	defer span.End()

	inNet, out, err := j.c.QuoteSwap(ctx, args.Seed, args.AssetX, args.AssetY, args.AssetInIsX, args.AmountIn)
	if err != nil {
		return err
	}
	reply.AmountInNet, reply.AmountOut = inNet, out
	return nil
}

type SubmitActionArgs struct {
	Actor  codec.Address `json:"actor"`
	Action codec.Bytes   `json:"action"`
}

type SubmitActionReply struct {
	TypeID uint8           `json:"typeID"`
	Result json.RawMessage `json:"result"`
}

// SubmitAction executes an action encoded with [chain.MarshalAction] on
// behalf of [SubmitActionArgs.Actor].
func (j *JSONRPCServer) SubmitAction(req *http.Request, args *SubmitActionArgs, reply *SubmitActionReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "JSONRPCServer.SubmitAction")
	defer span.End()

	if len(args.Action) == 0 {
		return ErrMissingAction
	}
	result, err := j.c.ExecuteBytes(ctx, args.Actor, args.Action)
	if err != nil {
		j.c.Logger().Debug("submitted action failed",
			zap.Stringer("actor", args.Actor),
			zap.Stringer("action", args.Action),
			zap.Error(err),
		)
		return err
	}
	b, err := json.Marshal(result)
	if err != nil {
		return err
	}
	reply.TypeID = result.GetTypeID()
	reply.Result = b
	return nil
}
