package engine

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// BacktestEngineV1Config tunes how strictly a strategy is applied to a series.
type BacktestEngineV1Config struct {
	// StrictWarmup reports conditions that read an indicator still warming up as missing fields.
	StrictWarmup bool `yaml:"strict_warmup" json:"strict_warmup" jsonschema:"title=Strict Warmup,description=Fail the run when a condition reads an indicator before it is defined instead of treating the comparison as false,default=false"`
	// SkipUnknownSignals ignores signals of unsupported type instead of failing the run.
	SkipUnknownSignals bool `yaml:"skip_unknown_signals" json:"skip_unknown_signals" jsonschema:"title=Skip Unknown Signals,description=Silently ignore signals whose type is not EMA RSI or MACD,default=false"`
}

// GenerateSchema generates a JSON schema for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
	}

	schema := reflector.Reflect(c)

	// Set schema metadata
	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for BacktestEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// EmptyConfig returns a BacktestEngineV1Config with default values
func EmptyConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		StrictWarmup:       false,
		SkipUnknownSignals: false,
	}
}
