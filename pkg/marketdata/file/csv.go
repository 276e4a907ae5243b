package file

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// csvHeader is the column order of candle CSV files.
var csvHeader = []string{
	types.ColumnTimestamp,
	types.ColumnOpen,
	types.ColumnHigh,
	types.ColumnLow,
	types.ColumnClose,
	types.ColumnVolume,
	types.ColumnTurnover,
	types.ColumnQuoteVolume,
	types.ColumnComplete,
}

func readCSV(path string) ([]types.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataFileReadFailed, err, "failed to open %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataFileReadFailed, err, "failed to read header of %s", path)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	for _, name := range csvHeader {
		if _, ok := columns[name]; !ok {
			return nil, errors.Newf(errors.ErrCodeDataFileReadFailed, "%s is missing column %q", path, name)
		}
	}

	var candles []types.Candle

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeDataFileReadFailed, err, "failed to read %s", path)
		}

		candle, err := parseCSVRow(row, columns)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "%s line %d", path, line)
		}

		candles = append(candles, candle)
	}

	return candles, nil
}

func parseCSVRow(row []string, columns map[string]int) (types.Candle, error) {
	var candle types.Candle

	for _, name := range csvHeader {
		if columns[name] >= len(row) {
			return candle, fmt.Errorf("missing value for column %q", name)
		}
	}

	timestamp, err := strconv.ParseInt(row[columns[types.ColumnTimestamp]], 10, 64)
	if err != nil {
		return candle, err
	}

	complete, err := strconv.ParseBool(row[columns[types.ColumnComplete]])
	if err != nil {
		return candle, err
	}

	candle.Timestamp = timestamp
	candle.Complete = complete

	targets := map[string]*float64{
		types.ColumnOpen:        &candle.Open,
		types.ColumnHigh:        &candle.High,
		types.ColumnLow:         &candle.Low,
		types.ColumnClose:       &candle.Close,
		types.ColumnVolume:      &candle.Volume,
		types.ColumnTurnover:    &candle.Turnover,
		types.ColumnQuoteVolume: &candle.QuoteVolume,
	}

	for name, target := range targets {
		value, err := strconv.ParseFloat(row[columns[name]], 64)
		if err != nil {
			return candle, err
		}

		*target = value
	}

	return candle, nil
}

func writeCSV(path string, candles []types.Candle) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeDataFileReadFailed, err, "failed to create %s", path)
	}

	if err := encodeCSV(f, candles, path); err != nil {
		_ = f.Close()

		return err
	}

	if err := f.Close(); err != nil {
		return errors.Wrapf(errors.ErrCodeDataFileReadFailed, err, "failed to close %s", path)
	}

	return nil
}

func encodeCSV(w io.Writer, candles []types.Candle, path string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return errors.Wrapf(errors.ErrCodeDataFileReadFailed, err, "failed to write %s", path)
	}

	for _, c := range candles {
		row := []string{
			strconv.FormatInt(c.Timestamp, 10),
			formatFloat(c.Open),
			formatFloat(c.High),
			formatFloat(c.Low),
			formatFloat(c.Close),
			formatFloat(c.Volume),
			formatFloat(c.Turnover),
			formatFloat(c.QuoteVolume),
			strconv.FormatBool(c.Complete),
		}

		if err := writer.Write(row); err != nil {
			return errors.Wrapf(errors.ErrCodeDataFileReadFailed, err, "failed to write %s", path)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return errors.Wrapf(errors.ErrCodeDataFileReadFailed, err, "failed to flush %s", path)
	}

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
