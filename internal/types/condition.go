package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// Operator is a comparison operator of a Condition.
type Operator string

const (
	OperatorGreaterThan      Operator = ">"
	OperatorLessThan         Operator = "<"
	OperatorGreaterThanEqual Operator = ">="
	OperatorLessThanEqual    Operator = "<="
	OperatorEqual            Operator = "="
)

// AllOperators lists the supported comparison operators.
var AllOperators = []Operator{
	OperatorGreaterThan,
	OperatorLessThan,
	OperatorGreaterThanEqual,
	OperatorLessThanEqual,
	OperatorEqual,
}

// JSONSchema describes the operator as an enum.
func (Operator) JSONSchema() *jsonschema.Schema {
	enum := make([]any, 0, len(AllOperators))
	for _, op := range AllOperators {
		enum = append(enum, string(op))
	}

	return &jsonschema.Schema{
		Type:        "string",
		Title:       "Operator",
		Description: "Comparison operator",
		Enum:        enum,
	}
}

// OperandKind tells which variant an Operand holds.
type OperandKind int

const (
	// OperandField references a column of the bar record by name.
	OperandField OperandKind = iota
	// OperandLiteral is a numeric constant.
	OperandLiteral
)

// Operand is either a field reference or a numeric literal.
// On the wire it is a JSON/YAML string (field) or number (literal).
type Operand struct {
	kind    OperandKind
	field   string
	literal float64
}

// Field returns an operand referencing the named column.
func Field(name string) Operand {
	return Operand{kind: OperandField, field: name, literal: 0}
}

// Literal returns a numeric operand.
func Literal(value float64) Operand {
	return Operand{kind: OperandLiteral, field: "", literal: value}
}

// Kind returns the operand variant.
func (o Operand) Kind() OperandKind {
	return o.kind
}

// IsField reports whether the operand is a field reference.
func (o Operand) IsField() bool {
	return o.kind == OperandField
}

// FieldName returns the referenced column name; empty for literals.
func (o Operand) FieldName() string {
	return o.field
}

// LiteralValue returns the numeric value; zero for field references.
func (o Operand) LiteralValue() float64 {
	return o.literal
}

// String renders the operand the way it was written.
func (o Operand) String() string {
	if o.kind == OperandLiteral {
		return strconv.FormatFloat(o.literal, 'f', -1, 64)
	}

	return o.field
}

// MarshalJSON implements json.Marshaler.
func (o Operand) MarshalJSON() ([]byte, error) {
	if o.kind == OperandLiteral {
		return json.Marshal(o.literal)
	}

	return json.Marshal(o.field)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Operand) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return err
		}

		*o = Field(name)

		return nil
	}

	var value float64
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return fmt.Errorf("operand must be a string or a number, got %s", string(trimmed))
	}

	*o = Literal(value)

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (o Operand) MarshalYAML() (any, error) {
	if o.kind == OperandLiteral {
		return o.literal, nil
	}

	return o.field, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Quoted scalars are field
// references even when they look numeric, like in JSON.
func (o *Operand) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("operand must be a scalar at line %d", node.Line)
	}

	switch node.ShortTag() {
	case "!!int", "!!float":
		var value float64
		if err := node.Decode(&value); err != nil {
			return err
		}

		*o = Literal(value)
	default:
		*o = Field(node.Value)
	}

	return nil
}

// JSONSchema describes the operand as a string or a number.
func (Operand) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string", Description: "Name of a bar column, e.g. close or EMA_20"},
			{Type: "number", Description: "Numeric literal"},
		},
	}
}

// Condition compares two operands of a bar record.
type Condition struct {
	LHS      Operand  `json:"lhs" yaml:"lhs" jsonschema:"title=Left operand"`
	Operator Operator `json:"operator" yaml:"operator"`
	RHS      Operand  `json:"rhs" yaml:"rhs" jsonschema:"title=Right operand"`
}

// String renders the condition as "lhs op rhs".
func (c Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.LHS, c.Operator, c.RHS)
}
