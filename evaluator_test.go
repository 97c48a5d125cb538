package unitify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateLine(t *testing.T) {
	tests := []struct {
		line     string
		want     float64
		wantUnit string
	}{
		{"5 kg", 5, "kg"},
		{"2 g + 3 g * 4 g", 14, "g"},
		{"2 g * 3 g + 4 g", 10, "g"},
		{"10 g - 4 g - 3 g", 3, "g"},
		{"8 g / 4 g / 2 g", 1, "g"},
		{"1 km + 500 m", 1500, "m"},
		{"0.5 kg + 200 g", 700, "g"},
		{"6 km / 2 hr", 3, "km / hr"},
		{"72 km/hr + 5 m/s", 25, "m / s"},
		{"  1 min   -  30 s ", 30, "s"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := EvaluateLine(tt.line)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Magnitude(), 1e-9)
			assert.Equal(t, tt.wantUnit, got.UnitName())
		})
	}
}

func TestEvaluateLineErrors(t *testing.T) {
	tests := []struct {
		line    string
		wantErr error
		index   int
		op      Operator
	}{
		{line: "2 g +", wantErr: ErrMalformedExpression, index: 0, op: OpAdd},
		{line: "1 g + 1 m", wantErr: ErrDimensionMismatch, index: 0, op: OpAdd},
		{line: "1 g / 0 g", wantErr: ErrDivisionByZero, index: 0, op: OpDiv},
		{line: "1 g / 0 g + 1 m", wantErr: ErrDivisionByZero, index: 0, op: OpDiv},
		{line: "1 g + 2 g - 3 m", wantErr: ErrDimensionMismatch, index: 1, op: OpSub},
		{line: "", wantErr: ErrMalformedExpression, index: -1},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := EvaluateLine(tt.line)
			require.ErrorIs(t, err, tt.wantErr)

			var evalErr *EvalError
			require.ErrorAs(t, err, &evalErr)
			assert.Equal(t, tt.index, evalErr.Index)
			assert.Equal(t, tt.op, evalErr.Op)
		})
	}
}

func TestParseExpressionErrors(t *testing.T) {
	tests := []struct {
		line    string
		wantErr []error
	}{
		{"2 g + 3 g % 4 g", []error{ErrParse, ErrInvalidOperator}},
		{"2 parsec", []error{ErrParse, ErrUnknownUnit}},
		{"2", []error{ErrParse}},
		{"g 2", []error{ErrParse}},
		{"2 g 3 g", []error{ErrParse, ErrInvalidOperator}},
		{"72 km / hr", []error{ErrParse}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := ParseExpression(tt.line)
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestParseExpressionKeepsTrailingOperator(t *testing.T) {
	expr, err := ParseExpression("2 g + 3 kg *")
	require.NoError(t, err)
	assert.Len(t, expr.Measurements, 2)
	assert.Equal(t, []Operator{OpAdd, OpMul}, expr.Operators)
	assert.Equal(t, "2 g + 3 kg *", expr.String())

	_, err = expr.Evaluate()
	assert.ErrorIs(t, err, ErrMalformedExpression)
}

func TestEvaluateMalformed(t *testing.T) {
	g := mustMeasure(t, "1 g")

	_, err := Evaluate([]Measurement{g, g}, nil)
	assert.ErrorIs(t, err, ErrMalformedExpression)

	_, err = Evaluate([]Measurement{g}, []Operator{OpAdd, OpAdd})
	assert.ErrorIs(t, err, ErrMalformedExpression)

	_, err = Evaluate(nil, nil)
	assert.ErrorIs(t, err, ErrMalformedExpression)

	_, err = Evaluate([]Measurement{g, g}, []Operator{Operator('^')})
	assert.ErrorIs(t, err, ErrInvalidOperator)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, 0, evalErr.Index)
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	ms := []Measurement{mustMeasure(t, "2 g"), mustMeasure(t, "3 g"), mustMeasure(t, "4 g")}
	ops := []Operator{OpAdd, OpMul}

	got, err := Evaluate(ms, ops)
	require.NoError(t, err)
	assert.Equal(t, "14 g", got.String())
	assert.Equal(t, "2 g", ms[0].String())
	assert.Equal(t, "3 g", ms[1].String())
	assert.Equal(t, []Operator{OpAdd, OpMul}, ops)
}

func TestOperatorPrecedence(t *testing.T) {
	assert.Equal(t, 2, OpMul.Precedence())
	assert.Equal(t, 2, OpDiv.Precedence())
	assert.Equal(t, 1, OpAdd.Precedence())
	assert.Equal(t, 1, OpSub.Precedence())
	assert.Equal(t, 0, Operator('%').Precedence())

	op, err := ParseOperator("/")
	require.NoError(t, err)
	assert.Equal(t, OpDiv, op)
	_, err = ParseOperator("**")
	assert.ErrorIs(t, err, ErrInvalidOperator)
}
