package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/argo-quant/internal/analytics"
	"github.com/rxtech-lab/argo-quant/internal/api"
	engine "github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-quant/internal/config"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/service"
	"github.com/rxtech-lab/argo-quant/internal/version"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata/provider"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if addr := cmd.String("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	log, err := logger.NewLoggerWithLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	server, err := newServer(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting argo-quant",
		zap.String("version", version.GetVersion()),
		zap.String("addr", cfg.Server.Addr),
		zap.String("provider", cfg.MarketData.Provider),
	)

	return server.ListenAndServe(ctx)
}

// newServer wires the configured provider, engine and analyzer into an API server.
func newServer(cfg *config.Config, log *logger.Logger) (*api.Server, error) {
	defaultInterval, err := marketdata.ParseInterval(cfg.MarketData.DefaultInterval)
	if err != nil {
		return nil, err
	}

	source, err := provider.NewSource(cfg.SourceConfig(), log)
	if err != nil {
		return nil, err
	}

	svc := service.NewBacktestService(
		source,
		engine.NewBacktestEngineV1(cfg.Engine, log),
		analytics.NewAnalyzer(cfg.Backtest.Analytics),
		service.Options{
			InitialBalance: cfg.Backtest.InitialBalance,
			DefaultLimit:   cfg.MarketData.DefaultLimit,
		},
		log,
	)

	return api.NewServer(svc, api.Config{
		Addr:            cfg.Server.Addr,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		RequestTimeout:  cfg.RequestTimeout(),
		DefaultInterval: defaultInterval,
	}, log), nil
}

func main() {
	cmd := &cli.Command{
		Name:    "quant-server",
		Usage:   "Serve market data and strategy backtests over HTTP",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the YAML configuration file",
					},
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address, overrides the configuration",
					},
				},
				Action: serveAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
