// Package condition evaluates strategy conditions against annotated bar records.
package condition

import (
	"math"
	"strconv"

	"github.com/rxtech-lab/argo-quant/internal/types"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// Options tunes condition evaluation.
type Options struct {
	// StrictWarmup reports an operand that is still warming up (NaN) as a missing field.
	// Otherwise it is compared like any value and every comparison with it is false.
	StrictWarmup bool
}

// Evaluator evaluates conditions against records. It is stateless and safe for concurrent use.
type Evaluator struct {
	options Options
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(options Options) *Evaluator {
	return &Evaluator{options: options}
}

// Evaluate reports whether the condition holds on the record.
//
// The left operand must be a column of the record or a numeric literal. The right
// operand is a column of the record when one exists under that name, otherwise it
// is parsed as a number. Errors are *errors.ConditionError values.
func (e *Evaluator) Evaluate(record types.Record, condition types.Condition) (bool, error) {
	lhs, err := e.resolveLHS(record, condition.LHS)
	if err != nil {
		return false, err
	}

	rhs, err := e.resolveRHS(record, condition.RHS)
	if err != nil {
		return false, err
	}

	return compare(lhs, condition.Operator, rhs)
}

// EvaluateAll reports whether every condition holds on the record. An empty list holds.
// Evaluation stops at the first false condition; errors are annotated with the
// list name, condition index and bar timestamp.
func (e *Evaluator) EvaluateAll(record types.Record, conditions []types.Condition, list string) (bool, error) {
	for i, condition := range conditions {
		ok, err := e.Evaluate(record, condition)
		if err != nil {
			var condErr *errors.ConditionError
			if errors.As(err, &condErr) {
				return false, condErr.WithLocation(list, i, record.Timestamp())
			}

			return false, err
		}

		if !ok {
			return false, nil
		}
	}

	return true, nil
}

func (e *Evaluator) resolveLHS(record types.Record, operand types.Operand) (float64, error) {
	if !operand.IsField() {
		return operand.LiteralValue(), nil
	}

	value, ok := record.Lookup(operand.FieldName())
	if !ok {
		return 0, errors.NewMissingFieldError(operand.FieldName())
	}

	return e.checkWarmup(operand.FieldName(), value)
}

func (e *Evaluator) resolveRHS(record types.Record, operand types.Operand) (float64, error) {
	if !operand.IsField() {
		return operand.LiteralValue(), nil
	}

	if value, ok := record.Lookup(operand.FieldName()); ok {
		return e.checkWarmup(operand.FieldName(), value)
	}

	// a quoted number such as "70"
	value, err := strconv.ParseFloat(operand.FieldName(), 64)
	if err != nil {
		return 0, errors.NewMissingFieldError(operand.FieldName())
	}

	return value, nil
}

func (e *Evaluator) checkWarmup(field string, value float64) (float64, error) {
	if e.options.StrictWarmup && math.IsNaN(value) {
		return 0, errors.NewMissingFieldError(field)
	}

	return value, nil
}

// compare applies the operator. Any comparison involving NaN is false.
func compare(lhs float64, operator types.Operator, rhs float64) (bool, error) {
	switch operator {
	case types.OperatorGreaterThan:
		return lhs > rhs, nil
	case types.OperatorLessThan:
		return lhs < rhs, nil
	case types.OperatorGreaterThanEqual:
		return lhs >= rhs, nil
	case types.OperatorLessThanEqual:
		return lhs <= rhs, nil
	case types.OperatorEqual:
		return lhs == rhs, nil
	default:
		return false, errors.NewUnsupportedOperatorError(string(operator))
	}
}
