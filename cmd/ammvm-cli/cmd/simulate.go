// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/ammvm/controller"
	"github.com/ava-labs/ammvm/trace"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [path]",
	Short: "Run a YAML plan of actions against an in-memory pool state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			b   []byte
			err error
		)
		if args[0] == "-" {
			b, err = io.ReadAll(cmd.InOrStdin())
		} else {
			b, err = os.ReadFile(args[0])
		}
		if err != nil {
			return err
		}
		level, err := logging.ToLevel(logLevel)
		if err != nil {
			return err
		}
		log := logging.NewLogger("", logging.NewWrappedCore(level, os.Stderr, logging.Colors.ConsoleEncoder()))
		defer log.Stop()

		plan, err := unmarshalPlan(b)
		if err != nil {
			return err
		}
		s, err := newSimulator(cmd.Context(), log, plan)
		if err != nil {
			return err
		}
		return s.Run(cmd.Context(), cmd.OutOrStdout())
	},
}

type simulator struct {
	plan *Plan
	log  logging.Logger
	c    *controller.Controller
}

func newSimulator(ctx context.Context, log logging.Logger, plan *Plan) (*simulator, error) {
	if err := plan.Verify(); err != nil {
		return nil, err
	}
	genesisBytes, err := json.Marshal(plan.Genesis())
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(&trace.Config{})
	if err != nil {
		return nil, err
	}
	c, err := controller.New(ctx, log, tracer, memdb.New(), genesisBytes, 1, prometheus.NewRegistry())
	if err != nil {
		return nil, err
	}
	return &simulator{plan: plan, log: log, c: c}, nil
}

// Run executes every step in order and writes one JSON response per step
// to [w]. It stops at the first step whose outcome does not match its
// [Require] block.
func (s *simulator) Run(ctx context.Context, w io.Writer) error {
	s.log.Info("simulation",
		zap.String("name", s.plan.Name),
		zap.String("plan", s.plan.Description),
		zap.Int("steps", len(s.plan.Steps)),
	)
	enc := json.NewEncoder(w)
	for i := range s.plan.Steps {
		step := &s.plan.Steps[i]
		s.log.Info("simulation",
			zap.Int("step", i),
			zap.String("description", step.Description),
			zap.String("action", step.Action),
			zap.String("actor", step.Actor),
		)
		resp, stepErr := s.runStep(ctx, i, step)
		if err := enc.Encode(resp); err != nil {
			return err
		}
		if err := checkRequire(i, step.Require, stepErr); err != nil {
			return err
		}
	}
	return nil
}

func (s *simulator) runStep(ctx context.Context, i int, step *Step) (*Response, error) {
	resp := &Response{
		ID:          i,
		Description: step.Description,
		Action:      step.Action,
	}
	action, err := step.ToAction()
	if err != nil {
		resp.Error = err.Error()
		return resp, err
	}
	result, err := s.c.Execute(ctx, AccountAddress(step.Actor), action)
	if err != nil {
		resp.Error = err.Error()
		return resp, err
	}
	b, err := json.Marshal(result)
	if err != nil {
		resp.Error = err.Error()
		return resp, err
	}
	resp.Result = b
	return resp, nil
}

func checkRequire(i int, req Require, err error) error {
	switch {
	case len(req.Error) == 0 && err != nil:
		return fmt.Errorf("%w: step %d failed: %w", ErrUnexpectedResult, i, err)
	case len(req.Error) > 0 && err == nil:
		return fmt.Errorf("%w: step %d succeeded, wanted %q", ErrUnexpectedResult, i, req.Error)
	case len(req.Error) > 0 && !strings.Contains(err.Error(), req.Error):
		return fmt.Errorf("%w: step %d failed with %q, wanted %q", ErrUnexpectedResult, i, err, req.Error)
	default:
		return nil
	}
}
