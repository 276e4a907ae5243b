package file

import (
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

func readParquet(path string) ([]types.Candle, error) {
	candles, err := parquet.ReadFile[types.Candle](path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataFileReadFailed, err, "failed to read %s", path)
	}

	return candles, nil
}

func writeParquet(path string, candles []types.Candle) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeDataFileReadFailed, err, "failed to create %s", path)
	}

	if err := parquet.Write(f, candles); err != nil {
		_ = f.Close()

		return errors.Wrapf(errors.ErrCodeDataFileReadFailed, err, "failed to write %s", path)
	}

	if err := f.Close(); err != nil {
		return errors.Wrapf(errors.ErrCodeDataFileReadFailed, err, "failed to close %s", path)
	}

	return nil
}
