package unitify

import (
	"fmt"
	"strings"
)

// Expression is a flat token stream: measurements interleaved with
// operators. A well-formed expression has one operator fewer than
// measurements.
type Expression struct {
	Measurements []Measurement
	Operators    []Operator
}

// ParseExpression tokenizes a line such as "2 g + 3 kg * 4 g". Each unit is a
// single field, so compound units inside an expression are written without
// blanks ("72 km/hr"). A trailing operator is kept and left for Evaluate to
// reject.
func ParseExpression(line string) (Expression, error) {
	var expr Expression
	fields := strings.Fields(line)
	for i := 0; i < len(fields); {
		mag, err := parseMagnitude(fields[i])
		if err != nil {
			return Expression{}, fmt.Errorf("field %d: %w", i+1, err)
		}
		if i+1 >= len(fields) {
			return Expression{}, fmt.Errorf("%w: field %d: missing unit after %q", ErrParse, i+2, fields[i])
		}
		u, err := Resolve(fields[i+1])
		if err != nil {
			return Expression{}, fmt.Errorf("%w: field %d: %w", ErrParse, i+2, err)
		}
		expr.Measurements = append(expr.Measurements, Measurement{magnitude: mag, unit: u})
		i += 2
		if i >= len(fields) {
			break
		}
		op, err := ParseOperator(fields[i])
		if err != nil {
			return Expression{}, fmt.Errorf("%w: field %d: %w", ErrParse, i+1, err)
		}
		expr.Operators = append(expr.Operators, op)
		i++
	}
	return expr, nil
}

func (e Expression) String() string {
	var b strings.Builder
	for i, m := range e.Measurements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(m.String())
		if i < len(e.Operators) {
			b.WriteByte(' ')
			b.WriteByte(byte(e.Operators[i]))
		}
	}
	return b.String()
}

func (e Expression) Evaluate() (Measurement, error) {
	return Evaluate(e.Measurements, e.Operators)
}

// EvaluateLine parses and evaluates one line of text.
func EvaluateLine(line string) (Measurement, error) {
	expr, err := ParseExpression(line)
	if err != nil {
		return Measurement{}, err
	}
	return expr.Evaluate()
}

// Evaluate folds measurements and operators with the usual precedence:
// '*' and '/' bind tighter than '+' and '-', equal precedence associates to
// the left. It uses an operand stack and an operator stack and stops at the
// first failing operation. Failures are *EvalError values wrapping the
// taxonomy error.
func Evaluate(measurements []Measurement, operators []Operator) (Measurement, error) {
	if len(operators) > len(measurements) {
		return Measurement{}, &EvalError{Index: -1, Err: fmt.Errorf("%w: %d operators for %d measurements", ErrMalformedExpression, len(operators), len(measurements))}
	}

	operands := make([]Measurement, 0, len(measurements))
	pending := make([]int, 0, len(operators)) // indexes into operators

	reduce := func() error {
		idx := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		op := operators[idx]
		n := len(operands)
		if n < 2 {
			return &EvalError{Index: idx, Op: op, Err: fmt.Errorf("%w: not enough operands", ErrMalformedExpression)}
		}
		res, err := operands[n-2].Apply(op, operands[n-1])
		if err != nil {
			return &EvalError{Index: idx, Op: op, Err: err}
		}
		operands = append(operands[:n-2], res)
		return nil
	}

	for i, m := range measurements {
		operands = append(operands, m)
		if i >= len(operators) {
			continue
		}
		op := operators[i]
		if op.Precedence() == precedenceInvalid {
			return Measurement{}, &EvalError{Index: i, Op: op, Err: ErrInvalidOperator}
		}
		for len(pending) > 0 && operators[pending[len(pending)-1]].Precedence() >= op.Precedence() {
			if err := reduce(); err != nil {
				return Measurement{}, err
			}
		}
		pending = append(pending, i)
	}
	for len(pending) > 0 {
		if err := reduce(); err != nil {
			return Measurement{}, err
		}
	}

	if len(operands) != 1 {
		return Measurement{}, &EvalError{Index: -1, Err: fmt.Errorf("%w: %d operands left", ErrMalformedExpression, len(operands))}
	}
	return operands[0], nil
}
