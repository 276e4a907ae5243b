package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rxtech-lab/argo-quant/internal/config"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata/file"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata/provider"
	"github.com/urfave/cli/v3"
)

// downloadAction fetches candles from a provider and writes them to a CSV or Parquet file.
func downloadAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if p := cmd.String("provider"); p != "" {
		cfg.MarketData.Provider = strings.ToLower(p)
	}

	interval, err := marketdata.ParseInterval(cmd.String("interval"))
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if _, err := file.FormatFromPath(output); err != nil {
		return err
	}

	log, err := logger.NewLoggerWithLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	source, err := provider.NewSource(cfg.SourceConfig(), log)
	if err != nil {
		return err
	}

	symbol := cmd.String("symbol")

	candles, err := source.Fetch(ctx, symbol, interval, int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if err := file.Write(output, candles); err != nil {
		return err
	}

	fmt.Printf("Downloaded %d %s bars of %s from %s to %s\n", len(candles), interval, symbol, source.Name(), output)

	return nil
}
