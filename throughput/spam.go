// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package throughput

import (
	"context"
	"errors"
	"time"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ava-labs/ammvm/actions"
	"github.com/ava-labs/ammvm/chain"
	"github.com/ava-labs/ammvm/codec"
)

// Submitter executes an action on behalf of an actor, over RPC or in
// process.
type Submitter interface {
	SubmitAction(ctx context.Context, actor codec.Address, action chain.Action) (codec.Typed, error)
}

// Run issues swaps against one pool at [cfg.SwapsPerSecond] across
// [cfg.NumClients] workers until [cfg.Duration] elapses or [ctx] is done.
// Directions alternate so the pool price stays near its starting point.
// Rejected swaps are counted, not returned.
func Run(ctx context.Context, cfg *Config, clients []Submitter) (Stats, error) {
	if err := cfg.Verify(); err != nil {
		return Stats{}, err
	}
	if len(clients) == 0 {
		return Stats{}, ErrInvalidRate
	}
	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	t := &tracker{}
	if cfg.LogInterval > 0 {
		t.startPeriodicLog(ctx, cfg.LogInterval)
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.SwapsPerSecond), cfg.NumClients)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.NumClients; i++ {
		cli := clients[i%len(clients)]
		r := rand.New(rand.NewSource(uint64(time.Now().UnixNano()) + uint64(i)))
		g.Go(func() error {
			for {
				if err := limiter.Wait(gctx); err != nil {
					// The deadline ends the run.
					return nil
				}
				n := t.sent.Inc()
				action := &actions.Swap{
					Seed:       cfg.Seed,
					AssetX:     cfg.AssetX,
					AssetY:     cfg.AssetY,
					AssetInIsX: n%2 == 0,
					AmountIn:   cfg.MinAmountIn + r.Uint64n(cfg.MaxAmountIn-cfg.MinAmountIn+1),
				}
				result, err := cli.SubmitAction(gctx, cfg.Actor, action)
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					t.sent.Dec()
					return nil
				}
				var out uint64
				if swap, ok := result.(*actions.SwapResult); ok {
					out = swap.AmountOut
				}
				t.logResult(out, err)
			}
		})
	}
	err := g.Wait()
	return t.stats(), err
}
