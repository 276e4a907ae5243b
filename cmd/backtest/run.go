package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-quant/internal/analytics"
	"github.com/rxtech-lab/argo-quant/internal/backtest/engine"
	enginev1 "github.com/rxtech-lab/argo-quant/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-quant/internal/config"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/service"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata/file"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-quant/pkg/strategy"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// runOptions collects the flags of the run command.
type runOptions struct {
	ConfigPath string
	Strategies []string
	DataPath   string
	Symbol     string
	Interval   string
	Provider   string
	Limit      int
	Balance    float64
	OutputPath string
	Quiet      bool
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	opts := runOptions{
		ConfigPath: cmd.String("config"),
		Strategies: cmd.StringSlice("strategy"),
		DataPath:   cmd.String("data"),
		Symbol:     cmd.String("symbol"),
		Interval:   cmd.String("interval"),
		Provider:   cmd.String("provider"),
		Limit:      int(cmd.Int("limit")),
		Balance:    cmd.Float64("balance"),
		OutputPath: cmd.String("output"),
		Quiet:      cmd.Bool("quiet"),
	}

	names, reports, err := runBacktests(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Print(RenderSummary(names, reports))

	if opts.OutputPath != "" {
		if err := types.WriteBacktestReports(opts.OutputPath, reports); err != nil {
			return err
		}

		fmt.Println(HelpStyle.Render("reports written to " + opts.OutputPath))
	}

	return nil
}

// runBacktests loads the series once and runs every strategy over it concurrently.
// Reports are returned in the order of opts.Strategies.
func runBacktests(ctx context.Context, opts runOptions) ([]string, []types.BacktestReport, error) {
	if len(opts.Strategies) == 0 {
		return nil, nil, errors.New(errors.ErrCodeMissingParameter, "at least one --strategy is required")
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	if opts.Provider != "" {
		cfg.MarketData.Provider = strings.ToLower(opts.Provider)
	}

	if opts.Balance > 0 {
		cfg.Backtest.InitialBalance = opts.Balance
	}

	log, err := logger.NewLoggerWithLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	strategies := make([]types.Strategy, len(opts.Strategies))
	names := make([]string, len(opts.Strategies))

	for i, path := range opts.Strategies {
		strat, err := strategy.Load(path)
		if err != nil {
			return nil, nil, errors.Wrapf(errors.GetCode(err), err, "strategy %s", path)
		}

		strategies[i] = strat
		names[i] = filepath.Base(path)
	}

	intervalText := opts.Interval
	if intervalText == "" {
		intervalText = cfg.MarketData.DefaultInterval
	}

	interval, err := marketdata.ParseInterval(intervalText)
	if err != nil {
		return nil, nil, err
	}

	source, symbol, err := candleSource(cfg, opts, log)
	if err != nil {
		return nil, nil, err
	}

	candles, err := source.Fetch(ctx, symbol, interval, opts.Limit)
	if err != nil {
		return nil, nil, err
	}

	svc := service.NewBacktestService(
		source,
		enginev1.NewBacktestEngineV1(cfg.Engine, log),
		analytics.NewAnalyzer(cfg.Backtest.Analytics),
		service.Options{InitialBalance: cfg.Backtest.InitialBalance, DefaultLimit: cfg.MarketData.DefaultLimit},
		log,
	)

	bar := newProgressBar(len(candles)*len(strategies), opts.Quiet)

	onProcessData := engine.OnProcessDataCallback(func(_ int, _ int) error {
		return bar.Add(1)
	})
	callbacks := engine.LifecycleCallbacks{OnProcessData: &onProcessData}

	reports := make([]types.BacktestReport, len(strategies))
	g, gctx := errgroup.WithContext(ctx)

	for i, strat := range strategies {
		g.Go(func() error {
			report, err := svc.Evaluate(gctx, symbol, string(interval), candles, strat, callbacks)
			if err != nil {
				return fmt.Errorf("%s: %w", names[i], err)
			}

			reports[i] = report

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	_ = bar.Finish()

	return names, reports, nil
}

// candleSource returns the file source when a data path is given and the
// configured provider otherwise, along with the symbol to request.
func candleSource(cfg *config.Config, opts runOptions, log *logger.Logger) (marketdata.Source, string, error) {
	if opts.DataPath != "" {
		symbol := opts.Symbol
		if symbol == "" {
			symbol = strings.TrimSuffix(filepath.Base(opts.DataPath), filepath.Ext(opts.DataPath))
		}

		// 0 reads the whole file
		source := marketdata.NewClient("file", file.NewSource(opts.DataPath), log).WithDefaultLimit(0)

		return source, symbol, nil
	}

	if opts.Symbol == "" {
		return nil, "", errors.New(errors.ErrCodeMissingParameter, "either --data or --symbol is required")
	}

	source, err := provider.NewSource(cfg.SourceConfig(), log)
	if err != nil {
		return nil, "", err
	}

	return source, opts.Symbol, nil
}

func newProgressBar(total int, quiet bool) *progressbar.ProgressBar {
	if quiet {
		return progressbar.DefaultSilent(int64(total))
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Backtesting"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
