// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, operators, signal kinds
//   - Data errors (200-299): Missing bar fields, empty or unordered series
//   - Indicator errors (300-399): Indicator registry and calculation errors
//   - Strategy errors (400-499): Strategy document loading and versioning
//   - Backtest errors (600-699): Aborted or cancelled runs
//   - Market data errors (700-799): Market data fetching and parsing errors
//
// Usage:
//
//	err := errors.Newf(errors.ErrCodeNoDataFound, "no candles for %s", symbol)
//	err := errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "okx request failed", cause)
//	if errors.HasCode(err, errors.ErrCodeMissingField) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from the first coded error in err's chain.
// Both *Error and *ConditionError carry a code.
// Returns ErrCodeUnknown if no coded error is found.
func GetCode(err error) ErrorCode {
	var condErr *ConditionError
	if errors.As(err, &condErr) {
		return condErr.Code
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// ConditionError is raised when a strategy condition cannot be evaluated
// against a bar record. It names the offending field or operator, and once the
// engine has seen it, the condition list and index it came from.
type ConditionError struct {
	Code     ErrorCode
	Field    string
	Operator string
	// List is the condition list name, e.g. "entry_conditions".
	List string
	// Index is the position of the condition in its list, -1 when unknown.
	Index int
	// Timestamp is the bar timestamp in milliseconds, 0 when unknown.
	Timestamp int64
}

// NewMissingFieldError reports a condition operand that names no column of the record.
func NewMissingFieldError(field string) *ConditionError {
	return &ConditionError{
		Code:      ErrCodeMissingField,
		Field:     field,
		Operator:  "",
		List:      "",
		Index:     -1,
		Timestamp: 0,
	}
}

// NewUnsupportedOperatorError reports a comparison operator outside > < >= <= =.
func NewUnsupportedOperatorError(operator string) *ConditionError {
	return &ConditionError{
		Code:      ErrCodeUnsupportedOperator,
		Field:     "",
		Operator:  operator,
		List:      "",
		Index:     -1,
		Timestamp: 0,
	}
}

// WithLocation returns a copy of e annotated with the condition list, index and bar timestamp.
func (e *ConditionError) WithLocation(list string, index int, timestamp int64) *ConditionError {
	located := *e
	located.List = list
	located.Index = index
	located.Timestamp = timestamp

	return &located
}

// Error implements the error interface.
func (e *ConditionError) Error() string {
	var msg string

	switch e.Code {
	case ErrCodeMissingField:
		msg = fmt.Sprintf("missing field %q", e.Field)
	case ErrCodeUnsupportedOperator:
		msg = fmt.Sprintf("unsupported operator %q", e.Operator)
	default:
		msg = "invalid condition"
	}

	if e.List != "" {
		msg = fmt.Sprintf("%s in %s[%d]", msg, e.List, e.Index)
	}

	if e.Timestamp != 0 {
		msg = fmt.Sprintf("%s at bar %d", msg, e.Timestamp)
	}

	return fmt.Sprintf("[%d] %s", e.Code, msg)
}

// IsMissingFieldError checks if err's chain holds a missing field condition error.
func IsMissingFieldError(err error) bool {
	var condErr *ConditionError

	return errors.As(err, &condErr) && condErr.Code == ErrCodeMissingField
}

// IsUnsupportedOperatorError checks if err's chain holds an unsupported operator condition error.
func IsUnsupportedOperatorError(err error) bool {
	var condErr *ConditionError

	return errors.As(err, &condErr) && condErr.Code == ErrCodeUnsupportedOperator
}

// InsufficientDataError represents an error when there is not enough data
// for a calculation (e.g., an indicator period longer than the series).
type InsufficientDataError struct {
	Required int    // Minimum data points required
	Actual   int    // Actual data points available
	Symbol   string // Optional: symbol context
	Message  string // Human-readable message
}

// NewInsufficientDataErrorf creates a new InsufficientDataError with a formatted message.
func NewInsufficientDataErrorf(required, actual int, symbol, format string, args ...any) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *InsufficientDataError) Error() string {
	return e.Message
}

// IsInsufficientDataError checks if an error is an InsufficientDataError.
func IsInsufficientDataError(err error) bool {
	var insufficientErr *InsufficientDataError

	return errors.As(err, &insufficientErr)
}
