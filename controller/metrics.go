// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/ammvm/consts"
)

type metrics struct {
	createPool      prometheus.Counter
	addLiquidity    prometheus.Counter
	removeLiquidity prometheus.Counter
	swap            prometheus.Counter

	rejected     prometheus.Counter
	computeUnits prometheus.Counter

	executeLatency metric.Averager
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	executeLatency, err := metric.NewAverager(
		"actions_execute_latency",
		"time spent executing and committing an action",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &metrics{
		createPool: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "actions",
			Name:      "create_pool",
			Help:      "number of create pool actions",
		}),
		addLiquidity: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "actions",
			Name:      "add_liquidity",
			Help:      "number of add liquidity actions",
		}),
		removeLiquidity: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "actions",
			Name:      "remove_liquidity",
			Help:      "number of remove liquidity actions",
		}),
		swap: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "actions",
			Name:      "swap",
			Help:      "number of swap actions",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "actions",
			Name:      "rejected",
			Help:      "number of actions that returned an error",
		}),
		computeUnits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "actions",
			Name:      "compute_units",
			Help:      "compute units consumed by executed actions",
		}),
		executeLatency: executeLatency,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.createPool),
		r.Register(m.addLiquidity),
		r.Register(m.removeLiquidity),
		r.Register(m.swap),
		r.Register(m.rejected),
		r.Register(m.computeUnits),
	)
	return m, errs.Err
}

func (m *metrics) executed(typeID uint8, units uint64, elapsed time.Duration) {
	m.executeLatency.Observe(float64(elapsed))
	m.computeUnits.Add(float64(units))
	switch typeID {
	case consts.CreatePoolID:
		m.createPool.Inc()
	case consts.AddLiquidityID:
		m.addLiquidity.Inc()
	case consts.RemoveLiquidityID:
		m.removeLiquidity.Inc()
	case consts.SwapID:
		m.swap.Inc()
	}
}
