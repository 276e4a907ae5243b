package types

import (
	"encoding/json"

	"github.com/moznion/go-optional"
	"gopkg.in/yaml.v3"
)

// Signal asks the indicator computer for one indicator column (two for MACD).
// EMA and RSI use Period; MACD uses Fast, Slow and Signal.
type Signal struct {
	// Type is the indicator kind
	Type IndicatorType `json:"type" yaml:"type" jsonschema:"title=Type,description=Indicator kind,enum=EMA,enum=RSI,enum=MACD" validate:"required"`
	// Period is the lookback of EMA and RSI
	Period optional.Option[int] `json:"period,omitempty" yaml:"period,omitempty" jsonschema:"title=Period,description=Lookback period for EMA and RSI,minimum=1"`
	// Fast is the fast EMA period of MACD
	Fast optional.Option[int] `json:"fast,omitempty" yaml:"fast,omitempty" jsonschema:"title=Fast,description=Fast EMA period for MACD (default 12),minimum=1"`
	// Slow is the slow EMA period of MACD
	Slow optional.Option[int] `json:"slow,omitempty" yaml:"slow,omitempty" jsonschema:"title=Slow,description=Slow EMA period for MACD (default 26),minimum=1"`
	// Signal is the signal line EMA period of MACD
	Signal optional.Option[int] `json:"signal,omitempty" yaml:"signal,omitempty" jsonschema:"title=Signal,description=Signal line EMA period for MACD (default 9),minimum=1"`
}

// signalDocument is the wire shape of a Signal.
type signalDocument struct {
	Type   IndicatorType `json:"type" yaml:"type"`
	Period *int          `json:"period,omitempty" yaml:"period,omitempty"`
	Fast   *int          `json:"fast,omitempty" yaml:"fast,omitempty"`
	Slow   *int          `json:"slow,omitempty" yaml:"slow,omitempty"`
	Signal *int          `json:"signal,omitempty" yaml:"signal,omitempty"`
}

// NewPeriodSignal builds an EMA or RSI signal.
func NewPeriodSignal(kind IndicatorType, period int) Signal {
	return Signal{
		Type:   kind,
		Period: optional.Some(period),
		Fast:   optional.None[int](),
		Slow:   optional.None[int](),
		Signal: optional.None[int](),
	}
}

// NewMACDSignal builds a MACD signal.
func NewMACDSignal(fast, slow, signal int) Signal {
	return Signal{
		Type:   IndicatorTypeMACD,
		Period: optional.None[int](),
		Fast:   optional.Some(fast),
		Slow:   optional.Some(slow),
		Signal: optional.Some(signal),
	}
}

// MACDParams returns the MACD periods, falling back to 12/26/9 for omitted values.
func (s Signal) MACDParams() (fast, slow, signal int) {
	return s.Fast.TakeOr(DefaultMACDFast), s.Slow.TakeOr(DefaultMACDSlow), s.Signal.TakeOr(DefaultMACDSignal)
}

func (s Signal) toDocument() signalDocument {
	return signalDocument{
		Type:   s.Type,
		Period: optionToPointer(s.Period),
		Fast:   optionToPointer(s.Fast),
		Slow:   optionToPointer(s.Slow),
		Signal: optionToPointer(s.Signal),
	}
}

func (s *Signal) fromDocument(doc signalDocument) {
	s.Type = doc.Type
	s.Period = pointerToOption(doc.Period)
	s.Fast = pointerToOption(doc.Fast)
	s.Slow = pointerToOption(doc.Slow)
	s.Signal = pointerToOption(doc.Signal)
}

// MarshalJSON implements json.Marshaler.
func (s Signal) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.toDocument())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Signal) UnmarshalJSON(data []byte) error {
	var doc signalDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	s.fromDocument(doc)

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Signal) MarshalYAML() (any, error) {
	return s.toDocument(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Signal) UnmarshalYAML(node *yaml.Node) error {
	var doc signalDocument
	if err := node.Decode(&doc); err != nil {
		return err
	}

	s.fromDocument(doc)

	return nil
}

func optionToPointer(o optional.Option[int]) *int {
	if o.IsNone() {
		return nil
	}

	v := o.Unwrap()

	return &v
}

func pointerToOption(p *int) optional.Option[int] {
	if p == nil {
		return optional.None[int]()
	}

	return optional.Some(*p)
}
