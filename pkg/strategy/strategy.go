// Package strategy loads, validates and describes strategy documents.
package strategy

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/internal/version"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a strategy document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the document format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Newf(errors.ErrCodeStrategyLoadFailed, "unsupported strategy file extension %q", filepath.Ext(path))
	}
}

// Load reads and validates the strategy document at path.
func Load(path string) (types.Strategy, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return types.Strategy{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.Strategy{}, errors.Wrapf(errors.ErrCodeStrategyLoadFailed, err, "failed to read strategy %s", path)
	}

	return Parse(data, format)
}

// Parse decodes and validates a strategy document.
func Parse(data []byte, format Format) (types.Strategy, error) {
	var strategy types.Strategy

	var err error

	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &strategy)
	case FormatYAML:
		err = yaml.Unmarshal(data, &strategy)
	default:
		return types.Strategy{}, errors.Newf(errors.ErrCodeStrategyLoadFailed, "unsupported strategy format %q", format)
	}

	if err != nil {
		return types.Strategy{}, errors.Wrap(errors.ErrCodeStrategyLoadFailed, "failed to decode strategy", err)
	}

	if err := Validate(strategy); err != nil {
		return types.Strategy{}, err
	}

	return strategy, nil
}

// Validate checks the document structure and version. Signal periods and
// operators are checked when the strategy runs.
func Validate(strategy types.Strategy) error {
	if err := version.CheckStrategyVersion(version.StrategySchemaVersion, strategy.Version); err != nil {
		return err
	}

	validate := validator.New()
	if err := validate.Struct(strategy); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidStrategy, "invalid strategy", err)
	}

	return nil
}

// Schema returns the JSON schema of a strategy document.
func Schema() (string, error) {
	return ToJSONSchema(types.Strategy{})
}
