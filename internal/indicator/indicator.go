package indicator

import (
	"github.com/rxtech-lab/argo-quant/internal/types"
)

// Column is one named indicator output aligned bar-for-bar with the series.
// NaN marks bars where the indicator is not yet defined.
type Column struct {
	Name   string
	Values []float64
}

// Indicator interface defines methods that any technical indicator must implement.
// An Indicator instance is configured once and used for a single series.
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config validates the signal parameters and applies them
	Config(signal types.Signal) error
	// Compute returns the indicator columns for the given closes
	Compute(closes []float64) ([]Column, error)
}

// Factory creates a fresh, unconfigured Indicator.
type Factory func() Indicator
