package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/urfave/cli/v2"

	"github.com/hinwise/smarttanken/internal/config"
	"github.com/hinwise/smarttanken/internal/observability"
	"github.com/hinwise/smarttanken/internal/server"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the fuel price intelligence HTTP API",
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	table, err := loadTable(cfg)
	if err != nil {
		return fmt.Errorf("error loading postal table: %w", err)
	}

	logger := server.NewLogger(cfg)
	metrics := observability.NewMetrics()
	source := newSource(cfg, metrics, logger.Logger)
	srv := server.New(cfg, table, source, clockwork.NewRealClock(), metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
