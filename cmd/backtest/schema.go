package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-quant/internal/config"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/internal/version"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
	"github.com/rxtech-lab/argo-quant/pkg/strategy"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	configSchemaName   = "argo-quant-config.json"
	configSampleName   = "argo-quant-config.yaml"
	strategySchemaName = "strategy-schema.json"
	strategySampleName = "example-strategy.yaml"
	sourceSchemaName   = "market-data-source-schema.json"
)

// schemaAction writes the JSON schemas and sample documents into the output directory.
func schemaAction(_ context.Context, cmd *cli.Command) error {
	return generateSchemas(cmd.String("output"))
}

func generateSchemas(dir string) error {
	cfg := config.Default()

	configSchema, err := cfg.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate config schema: %w", err)
	}

	strategySchema, err := strategy.Schema()
	if err != nil {
		return fmt.Errorf("failed to generate strategy schema: %w", err)
	}

	sourceSchema, err := marketdata.GetSourceConfigSchema()
	if err != nil {
		return fmt.Errorf("failed to generate market data source schema: %w", err)
	}

	schemas := []struct {
		name   string
		schema string
		sample string
		value  any
	}{
		{name: configSchemaName, schema: configSchema, sample: configSampleName, value: cfg},
		{name: strategySchemaName, schema: strategySchema, sample: strategySampleName, value: sampleStrategy()},
		{name: sourceSchemaName, schema: sourceSchema},
	}

	for _, s := range schemas {
		if err := validateSchemaName(s.name); err != nil {
			return err
		}

		if err := generateSchemaFile(s.schema, filepath.Join(dir, s.name)); err != nil {
			return err
		}

		if s.sample == "" {
			continue
		}

		if err := generateSampleFile(s.value, filepath.Join(dir, s.sample), s.name); err != nil {
			return err
		}
	}

	fmt.Printf("Schemas successfully generated in %s\n", dir)

	return nil
}

// sampleStrategy is an EMA crossover filtered by RSI.
func sampleStrategy() types.Strategy {
	return types.Strategy{
		Version: version.StrategySchemaVersion,
		Signals: []types.Signal{
			types.NewPeriodSignal(types.IndicatorTypeEMA, 20),
			types.NewPeriodSignal(types.IndicatorTypeRSI, 14),
		},
		EntryConditions: []types.Condition{
			{LHS: types.Field(types.ColumnClose), Operator: types.OperatorGreaterThan, RHS: types.Field("EMA_20")},
			{LHS: types.Field("RSI_14"), Operator: types.OperatorLessThan, RHS: types.Literal(70)},
		},
		ExitConditions: []types.Condition{
			{LHS: types.Field(types.ColumnClose), Operator: types.OperatorLessThan, RHS: types.Field("EMA_20")},
		},
	}
}

func generateSchemaFile(schemaJSON string, schemaPath string) error {
	if err := os.MkdirAll(filepath.Dir(schemaPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0o644); err != nil {
		return fmt.Errorf("failed to write schema to file: %w", err)
	}

	return nil
}

// generateSampleFile writes value as YAML with a schema reference. An existing file is kept.
func generateSampleFile(value any, samplePath string, schemaName string) error {
	if _, err := os.Stat(samplePath); err == nil {
		return nil
	}

	yamlBytes, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal sample to yaml: %w", err)
	}

	yamlBytes = append([]byte(getSchemaReference(schemaName)), yamlBytes...)

	if err := os.WriteFile(samplePath, yamlBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write sample to file: %w", err)
	}

	return nil
}

func validateSchemaName(schemaName string) error {
	if schemaName == "" {
		return errors.New("schema name cannot be empty")
	}

	if !strings.HasSuffix(schemaName, ".json") {
		return errors.New("schema name must have .json extension")
	}

	return nil
}

func getSchemaReference(schemaName string) string {
	return "# yaml-language-server: $schema=" + schemaName + "\n"
}
