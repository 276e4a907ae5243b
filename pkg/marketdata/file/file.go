// Package file reads and writes candle series as CSV or Parquet files.
package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
)

// Format is a candle file encoding.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// FormatFromPath picks the file format from the extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", errors.Newf(errors.ErrCodeUnsupportedDataFile, "unsupported data file extension %q", filepath.Ext(path))
	}
}

// Read loads the candles stored at path, oldest first.
func Read(path string) ([]types.Candle, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	var candles []types.Candle

	switch format {
	case FormatCSV:
		candles, err = readCSV(path)
	case FormatParquet:
		candles, err = readParquet(path)
	}

	if err != nil {
		return nil, err
	}

	return marketdata.Normalize(candles), nil
}

// Write stores candles at path, creating parent directories as needed.
func Write(path string, candles []types.Candle) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(errors.ErrCodeDataFileReadFailed, err, "failed to create directory %s", dir)
		}
	}

	switch format {
	case FormatCSV:
		return writeCSV(path, candles)
	default:
		return writeParquet(path, candles)
	}
}

// Source serves a candle file as a marketdata.Source. The symbol and interval
// of a request are not checked against the file content.
type Source struct {
	path string
}

// NewSource creates a Source for the file at path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Fetch implements marketdata.Source. It returns the newest limit bars, or all
// bars when limit is not positive.
func (s *Source) Fetch(ctx context.Context, _ string, _ marketdata.Interval, limit int) ([]types.Candle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candles, err := Read(s.path)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}

	return candles, nil
}
