// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/ava-labs/ammvm/actions"
	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
	"github.com/ava-labs/ammvm/genesis"
	"github.com/ava-labs/ammvm/lockmap"
	"github.com/ava-labs/ammvm/pricing"
	"github.com/ava-labs/ammvm/state"
	"github.com/ava-labs/ammvm/storage"
	"github.com/ava-labs/ammvm/tstate"
	"github.com/ava-labs/ammvm/utils"

	oteltrace "go.opentelemetry.io/otel/trace"
)

const initialLocks = 1_024

// Controller applies actions to [Database] one at a time per key set. An
// action either commits all of its writes in one batch or none of them.
type Controller struct {
	log    logging.Logger
	tracer trace.Tracer
	db     Database

	genesis  *genesis.Genesis
	rules    *genesis.Rules
	registry chain.ActionRegistry

	locks   *lockmap.Lockmap
	metrics *metrics

	executed atomic.Uint64
	rejected atomic.Uint64
}

// New returns a controller over [db], loading [genesisBytes] if [db] is
// empty. A [db] loaded from a different genesis is rejected.
func New(
	ctx context.Context,
	log logging.Logger,
	tracer trace.Tracer,
	db Database,
	genesisBytes []byte,
	networkID uint32,
	registerer prometheus.Registerer,
) (*Controller, error) {
	g, err := genesis.New(genesisBytes)
	if err != nil {
		return nil, err
	}
	registry, err := actions.NewRegistry()
	if err != nil {
		return nil, err
	}
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	chainID := utils.ToID(genesisBytes)
	c := &Controller{
		log:      log,
		tracer:   tracer,
		db:       db,
		genesis:  g,
		rules:    g.Rules(networkID, chainID),
		registry: registry,
		locks:    lockmap.New(initialLocks),
		metrics:  m,
	}
	if err := c.initialize(ctx, chainID); err != nil {
		return nil, err
	}
	log.Info("controller initialized",
		zap.Stringer("chainID", c.rules.GetChainID()),
		zap.Uint32("networkID", c.rules.GetNetworkID()),
		zap.Int("assets", len(g.Assets)),
	)
	return c, nil
}

func (c *Controller) initialize(ctx context.Context, chainID ids.ID) error {
	stored, ok, err := storage.GetGenesisHash(ctx, &dbReader{c.db})
	if err != nil {
		return err
	}
	if ok {
		if stored != chainID {
			return fmt.Errorf("%w: stored %s", storage.ErrGenesisMismatch, stored)
		}
		return nil
	}
	o := newOverlay(c.db)
	if err := c.genesis.Load(ctx, c.tracer, o); err != nil {
		return err
	}
	if err := storage.SetGenesisHash(ctx, o, chainID); err != nil {
		return err
	}
	return o.Write()
}

func (c *Controller) Genesis() *genesis.Genesis      { return c.genesis }
func (c *Controller) Rules() chain.Rules             { return c.rules }
func (c *Controller) Registry() chain.ActionRegistry { return c.registry }
func (c *Controller) Executed() uint64               { return c.executed.Load() }
func (c *Controller) Rejected() uint64               { return c.rejected.Load() }
func (c *Controller) Logger() logging.Logger         { return c.log }
func (c *Controller) Tracer() trace.Tracer           { return c.tracer }
func (c *Controller) ReadState() state.Immutable     { return &dbReader{c.db} }

// ExecuteBytes decodes an action produced by [chain.MarshalAction] and
// executes it.
func (c *Controller) ExecuteBytes(ctx context.Context, actor codec.Address, b []byte) (codec.Typed, error) {
	action, err := chain.UnmarshalAction(c.registry, b)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, actor, action)
}

// Execute runs [action] on behalf of [actor]. Actions with overlapping
// state keys are serialized. Errors are returned unchanged and leave the
// database untouched.
func (c *Controller) Execute(ctx context.Context, actor codec.Address, action chain.Action) (codec.Typed, error) {
	ctx, span := c.tracer.Start(ctx, "Controller.Execute", oteltrace.WithAttributes(
		attribute.Int("type", int(action.GetTypeID())),
		attribute.Stringer("actor", actor),
	))
	defer span.End()

	units := action.ComputeUnits(c.rules)
	if limit := c.rules.GetMaxActionComputeUnits(); units > limit {
		err := fmt.Errorf("%w: %d > %d", chain.ErrComputeUnitsExceeded, units, limit)
		c.reject(action, actor, err)
		return nil, err
	}

	b, err := chain.MarshalAction(action)
	if err != nil {
		return nil, err
	}
	actionID := utils.ToID(append(b, actor[:]...))

	scope := action.StateKeys(actor)
	release := c.locks.LockAll(scope.Sorted())
	defer release()

	values, err := c.read(scope)
	if err != nil {
		return nil, err
	}
	ts := tstate.New(len(scope))
	view := ts.NewView(scope, values)
	start := time.Now()
	result, err := action.Execute(ctx, c.rules, view, start.UnixMilli(), actor, actionID)
	if err != nil {
		c.reject(action, actor, err)
		return nil, err
	}
	view.Commit()
	batch := c.db.NewBatch()
	if err := ts.WriteChanges(ctx, batch); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, err
	}
	c.executed.Inc()
	c.metrics.executed(action.GetTypeID(), units, time.Since(start))
	c.log.Debug("action executed",
		zap.Uint8("type", action.GetTypeID()),
		zap.Stringer("actionID", actionID),
		zap.Stringer("actor", actor),
		zap.Uint64("units", units),
		zap.Int("ops", ts.OpIndex()),
		zap.Int("changes", ts.PendingChanges()),
	)
	return result, nil
}

func (c *Controller) reject(action chain.Action, actor codec.Address, err error) {
	c.rejected.Inc()
	c.metrics.rejected.Inc()
	c.log.Debug("action rejected",
		zap.Uint8("type", action.GetTypeID()),
		zap.Stringer("actor", actor),
		zap.Error(err),
	)
}

func (c *Controller) read(scope state.Keys) (map[string][]byte, error) {
	values := make(map[string][]byte, len(scope))
	for k := range scope {
		v, err := c.db.Get([]byte(k))
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		values[k] = v
	}
	return values, nil
}

// Pool returns the pool identified by ([seed], [assetX], [assetY]) and its
// reserves, read consistently with concurrent executions.
func (c *Controller) Pool(ctx context.Context, seed uint64, assetX, assetY codec.Address) (*storage.Pool, storage.Reserves, error) {
	ctx, span := c.tracer.Start(ctx, "Controller.Pool")
	defer span.End()

	address := storage.PoolAddress(seed, assetX, assetY)
	release := c.locks.RLockAll([]string{
		string(storage.PoolKey(address)),
		string(storage.AssetKey(storage.LPAssetAddress(address))),
		string(storage.BalanceKey(assetX, address)),
		string(storage.BalanceKey(assetY, address)),
	})
	defer release()

	im := c.ReadState()
	pool, err := storage.GetPool(ctx, im, address)
	if err != nil {
		return nil, storage.Reserves{}, err
	}
	reserves, err := storage.GetReserves(ctx, im, pool)
	if err != nil {
		return nil, storage.Reserves{}, err
	}
	return pool, reserves, nil
}

func (c *Controller) Balance(ctx context.Context, asset, owner codec.Address) (uint64, error) {
	key := string(storage.BalanceKey(asset, owner))
	c.locks.RLock(key)
	defer c.locks.RUnlock(key)

	return storage.GetBalance(ctx, c.ReadState(), asset, owner)
}

func (c *Controller) Asset(ctx context.Context, asset codec.Address) (*storage.Asset, error) {
	key := string(storage.AssetKey(asset))
	c.locks.RLock(key)
	defer c.locks.RUnlock(key)

	return storage.GetAsset(ctx, c.ReadState(), asset)
}

// QuoteDeposit returns the amounts [actions.AddLiquidity] would take to mint
// [lpAmount] from the pool's current reserves.
func (c *Controller) QuoteDeposit(ctx context.Context, seed uint64, assetX, assetY codec.Address, lpAmount uint64) (uint64, uint64, error) {
	_, reserves, err := c.Pool(ctx, seed, assetX, assetY)
	if err != nil {
		return 0, 0, err
	}
	return pricing.QuoteDeposit(reserves.X, reserves.Y, reserves.LPSupply, lpAmount, reserves.LPDecimals)
}

// QuoteWithdraw returns the amounts [actions.RemoveLiquidity] would release
// for burning [lpAmount].
func (c *Controller) QuoteWithdraw(ctx context.Context, seed uint64, assetX, assetY codec.Address, lpAmount uint64) (uint64, uint64, error) {
	_, reserves, err := c.Pool(ctx, seed, assetX, assetY)
	if err != nil {
		return 0, 0, err
	}
	return pricing.QuoteWithdraw(reserves.X, reserves.Y, reserves.LPSupply, lpAmount, reserves.LPDecimals)
}

// QuoteSwap returns the fee-adjusted input and output of selling [amountIn]
// into the pool.
func (c *Controller) QuoteSwap(ctx context.Context, seed uint64, assetX, assetY codec.Address, assetInIsX bool, amountIn uint64) (uint64, uint64, error) {
	pool, reserves, err := c.Pool(ctx, seed, assetX, assetY)
	if err != nil {
		return 0, 0, err
	}
	reserveIn, reserveOut := reserves.X, reserves.Y
	if !assetInIsX {
		reserveIn, reserveOut = reserveOut, reserveIn
	}
	return pricing.QuoteSwap(reserveIn, reserveOut, pool.FeeBps, amountIn)
}
