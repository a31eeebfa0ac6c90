// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package throughput

import (
	"context"
	"time"

	"go.uber.org/atomic"

	"github.com/ava-labs/ammvm/utils"
)

type tracker struct {
	sent      atomic.Uint64
	succeeded atomic.Uint64
	failed    atomic.Uint64
	bought    atomic.Uint64
}

type Stats struct {
	Sent      uint64 `json:"sent"`
	Succeeded uint64 `json:"succeeded"`
	Failed    uint64 `json:"failed"`
	// Sum of output units across successful swaps.
	AmountOut uint64 `json:"amountOut"`
}

func (t *tracker) stats() Stats {
	return Stats{
		Sent:      t.sent.Load(),
		Succeeded: t.succeeded.Load(),
		Failed:    t.failed.Load(),
		AmountOut: t.bought.Load(),
	}
}

func (t *tracker) logResult(amountOut uint64, err error) {
	if err != nil {
		t.failed.Inc()
		return
	}
	t.succeeded.Inc()
	t.bought.Add(amountOut)
}

func (t *tracker) startPeriodicLog(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()

		var (
			prevSent uint64
			prevTime = time.Now()
		)
		for {
			select {
			case <-ticker.C:
				s := t.stats()
				currTime := time.Now()
				diff := currTime.Sub(prevTime).Seconds()
				if diff == 0 || s.Sent == 0 {
					continue
				}
				utils.Outf(
					"{{yellow}}swaps sent:{{/}} %d {{yellow}}success rate:{{/}} %.2f%% {{yellow}}sent/s:{{/}} %d\n",
					s.Sent,
					float64(s.Succeeded)/float64(s.Sent)*100,
					uint64(float64(s.Sent-prevSent)/diff),
				)
				prevTime = currTime
				prevSent = s.Sent
			case <-ctx.Done():
				return
			}
		}
	}()
}
