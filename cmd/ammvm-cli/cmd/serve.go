// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/ammvm/config"
	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/controller"
	"github.com/ava-labs/ammvm/pebble"
	"github.com/ava-labs/ammvm/rpc"
	"github.com/ava-labs/ammvm/server"
	"github.com/ava-labs/ammvm/trace"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an ammvm node over a local pebble database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func loadConfig() (*config.Config, error) {
	if len(configFile) == 0 {
		return config.New(nil)
	}
	return config.Load(configFile)
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := cfg.Logger(strings.ToLower(consts.Name))
	defer log.Stop()

	var genesisBytes []byte
	if len(cfg.GenesisFile) > 0 {
		genesisBytes, err = os.ReadFile(cfg.GenesisFile)
		if err != nil {
			return err
		}
	}

	tracer, err := trace.New(cfg.GetTraceConfig())
	if err != nil {
		return err
	}
	defer func() {
		if err := tracer.Close(); err != nil {
			log.Warn("failed to close tracer", zap.Error(err))
		}
	}()

	db, dbRegistry, err := pebble.New(cfg.GetDatabaseDir(), cfg.GetDatabaseConfig())
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}()

	registry := prometheus.NewRegistry()
	c, err := controller.New(ctx, log, tracer, db, genesisBytes, cfg.GetNetworkID(), registry)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", cfg.GetHTTPAddress())
	if err != nil {
		return err
	}
	srv, err := server.New(
		"",
		log,
		listener,
		cfg.GetHTTPConfig(),
		cfg.AllowedOrigins,
		cfg.AllowedHosts,
		cfg.GetShutdownTimeout(),
	)
	if err != nil {
		return err
	}
	handler, err := server.NewHandler(rpc.NewJSONRPCServer(c), rpc.Name)
	if err != nil {
		return err
	}
	if err := srv.AddRoute(handler, strings.TrimPrefix(rpc.JSONRPCEndpoint, "/"), ""); err != nil {
		return err
	}
	if cfg.GetMetricsEnabled() {
		gatherer := prometheus.Gatherers{registry, dbRegistry}
		if err := srv.AddRoute(server.NewMetricsHandler(gatherer), strings.TrimPrefix(rpc.MetricsEndpoint, "/"), ""); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Dispatch)
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down",
			zap.Uint64("executed", c.Executed()),
			zap.Uint64("rejected", c.Rejected()),
		)
		return srv.Shutdown()
	})
	return g.Wait()
}
