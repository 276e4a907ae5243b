package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rxtech-lab/argo-quant/internal/version"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
	"github.com/urfave/cli/v3"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the YAML configuration file",
	}
}

func intervalUsage() string {
	names := make([]string, len(marketdata.SupportedIntervals))
	for i, interval := range marketdata.SupportedIntervals {
		names[i] = string(interval)
	}

	return "Bar interval (" + strings.Join(names, ", ") + ")"
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "backtest",
		Usage:   "Backtest declarative trading strategies",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run one or more strategies over a series",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringSliceFlag{
						Name:     "strategy",
						Aliases:  []string{"s"},
						Usage:    "Path to a strategy document (JSON or YAML), repeatable",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "Path to a CSV or Parquet candle file, replaces the provider",
					},
					&cli.StringFlag{
						Name:    "symbol",
						Aliases: []string{"t"},
						Usage:   "Instrument symbol, e.g. BTC-USDT",
					},
					&cli.StringFlag{
						Name:    "interval",
						Aliases: []string{"i"},
						Usage:   intervalUsage(),
					},
					&cli.StringFlag{
						Name:    "provider",
						Aliases: []string{"p"},
						Usage:   fmt.Sprintf("Market data provider (%s)", strings.Join(marketdata.GetSupportedProviders(), ", ")),
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"l"},
						Usage:   "Number of bars, 0 for the provider default or the whole file",
					},
					&cli.Float64Flag{
						Name:    "balance",
						Aliases: []string{"b"},
						Usage:   "Initial balance, overrides the configuration",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the reports as YAML to this path",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Hide the progress bar",
					},
				},
				Action: runAction,
			},
			{
				Name:  "download",
				Usage: "Download candles from a provider into a CSV or Parquet file",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "symbol",
						Aliases:  []string{"t"},
						Usage:    "Instrument symbol, e.g. BTC-USDT",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "interval",
						Aliases: []string{"i"},
						Usage:   intervalUsage(),
						Value:   string(marketdata.IntervalOneHour),
					},
					&cli.StringFlag{
						Name:    "provider",
						Aliases: []string{"p"},
						Usage:   fmt.Sprintf("Market data provider (%s)", strings.Join(marketdata.GetSupportedProviders(), ", ")),
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"l"},
						Usage:   "Number of bars, 0 for the provider default",
					},
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Output path ending in .csv or .parquet",
						Required: true,
					},
				},
				Action: downloadAction,
			},
			{
				Name:  "schema",
				Usage: "Write JSON schemas and sample documents",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   "config",
					},
				},
				Action: schemaAction,
			},
			{
				Name:   "providers",
				Usage:  "List the supported market data providers",
				Action: providersAction,
			},
			{
				Name:  "version",
				Usage: "Print the build and strategy format versions",
				Action: func(_ context.Context, _ *cli.Command) error {
					fmt.Printf("backtest %s (strategy format %s)\n", version.GetVersion(), version.StrategySchemaVersion)

					return nil
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
