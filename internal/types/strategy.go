package types

// Condition list names, used in error reports.
const (
	EntryConditionsList = "entry_conditions"
	ExitConditionsList  = "exit_conditions"
)

// Strategy is a declarative long-only strategy document.
type Strategy struct {
	// Version is the strategy document format version, e.g. "1.0.0". Empty means current.
	Version string `json:"version,omitempty" yaml:"version,omitempty" jsonschema:"title=Version,description=Strategy document format version"`
	// Signals are computed before the run, in order; later columns overwrite earlier ones.
	Signals []Signal `json:"signals" yaml:"signals" jsonschema:"title=Signals,description=Indicators to compute" validate:"dive"`
	// EntryConditions must all hold to open a position.
	EntryConditions []Condition `json:"entry_conditions" yaml:"entry_conditions" jsonschema:"title=Entry Conditions"`
	// ExitConditions must all hold to close a position.
	ExitConditions []Condition `json:"exit_conditions" yaml:"exit_conditions" jsonschema:"title=Exit Conditions"`
}
