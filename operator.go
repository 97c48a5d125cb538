package unitify

import "fmt"

// Operator is one of the four arithmetic operators accepted in expressions.
// Compound units only use OpMul and OpDiv.
type Operator byte

const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'
)

const (
	precedenceInvalid = iota
	precedenceAddSub
	precedenceMulDiv
)

func ParseOperator(s string) (Operator, error) {
	if len(s) == 1 {
		switch op := Operator(s[0]); op {
		case OpAdd, OpSub, OpMul, OpDiv:
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOperator, s)
}

// Precedence is 2 for '*' and '/', 1 for '+' and '-', 0 otherwise.
func (op Operator) Precedence() int {
	switch op {
	case OpMul, OpDiv:
		return precedenceMulDiv
	case OpAdd, OpSub:
		return precedenceAddSub
	default:
		return precedenceInvalid
	}
}

func (op Operator) String() string {
	return string(op)
}
