package unitify

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownUnit         = errors.New("unknown unit")
	ErrMalformedCompound   = errors.New("malformed compound unit")
	ErrDimensionMismatch   = errors.New("dimension mismatch")
	ErrDivisionByZero      = errors.New("division by zero")
	ErrMalformedExpression = errors.New("malformed expression")
	ErrParse               = errors.New("parse error")
	ErrInvalidOperator     = errors.New("invalid operator")
	ErrInvalidFactor       = errors.New("factor to base must be positive")
	ErrInvalidKind         = errors.New("invalid unit kind")
	ErrNoData              = errors.New("no data")
)

// EvalError reports the operator that failed while folding an expression.
// Index is the operator's position in the expression, -1 when the failure is
// not tied to one operator.
type EvalError struct {
	Index int
	Op    Operator
	Err   error
}

func (e *EvalError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Index < 0 {
		return fmt.Sprintf("evaluate: %v", e.Err)
	}
	return fmt.Sprintf("evaluate: operator %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *EvalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func unknownUnit(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownUnit, name)
}

func mismatch(left, right Unit) error {
	return fmt.Errorf("%w: %s (%s) and %s (%s)", ErrDimensionMismatch, left.Name(), left.Kind(), right.Name(), right.Kind())
}
