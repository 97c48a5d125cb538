package unitify

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Measurement is an immutable magnitude in a unit. Arithmetic returns new
// values and fails instead of coercing incompatible dimensions.
type Measurement struct {
	magnitude float64
	unit      Unit
}

func NewMeasurement(magnitude float64, unit Unit) Measurement {
	return Measurement{magnitude: magnitude, unit: unit}
}

// NewMeasurementNamed resolves unitName through the registry.
func NewMeasurementNamed(magnitude float64, unitName string) (Measurement, error) {
	u, err := Resolve(unitName)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{magnitude: magnitude, unit: u}, nil
}

// ParseMeasurement reads "<magnitude> <unit>", e.g. "2.5 kg" or "72 km / hr".
func ParseMeasurement(s string) (Measurement, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return Measurement{}, fmt.Errorf("%w: want \"<magnitude> <unit>\", got %q", ErrParse, s)
	}
	mag, err := parseMagnitude(fields[0])
	if err != nil {
		return Measurement{}, err
	}
	u, err := Resolve(strings.Join(fields[1:], " "))
	if err != nil {
		return Measurement{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return Measurement{magnitude: mag, unit: u}, nil
}

func parseMagnitude(s string) (float64, error) {
	mag, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(mag) || math.IsInf(mag, 0) {
		return 0, fmt.Errorf("%w: invalid magnitude %q", ErrParse, s)
	}
	return mag, nil
}

func (m Measurement) Magnitude() float64 {
	return m.magnitude
}

func (m Measurement) Unit() Unit {
	return m.unit
}

func (m Measurement) UnitName() string {
	return m.unit.Name()
}

func (m Measurement) String() string {
	return strconv.FormatFloat(m.magnitude, 'f', -1, 64) + " " + m.unit.Name()
}

// Base is m expressed in the base unit of its kind.
func (m Measurement) Base() Measurement {
	return ToBaseUnit(m)
}

// Add sums two compatible measurements in the left operand's base unit, so
// 0.5 kg + 200 g = 700 g.
func (m Measurement) Add(other Measurement) (Measurement, error) {
	l, r, err := m.normalize(other)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{magnitude: l.magnitude + r.magnitude, unit: l.unit}, nil
}

func (m Measurement) Sub(other Measurement) (Measurement, error) {
	l, r, err := m.normalize(other)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{magnitude: l.magnitude - r.magnitude, unit: l.unit}, nil
}

// Mul multiplies base magnitudes when both sides share a dimension and keeps
// the base unit. Otherwise the raw magnitudes are multiplied and the result
// carries the compound unit "left * right".
func (m Measurement) Mul(other Measurement) (Measurement, error) {
	return m.combine(OpMul, other)
}

// Div is like Mul with '/'. A zero divisor fails with ErrDivisionByZero.
func (m Measurement) Div(other Measurement) (Measurement, error) {
	if other.magnitude == 0 {
		return Measurement{}, fmt.Errorf("%w: %s / %s", ErrDivisionByZero, m, other)
	}
	return m.combine(OpDiv, other)
}

// Apply dispatches on op.
func (m Measurement) Apply(op Operator, other Measurement) (Measurement, error) {
	switch op {
	case OpAdd:
		return m.Add(other)
	case OpSub:
		return m.Sub(other)
	case OpMul:
		return m.Mul(other)
	case OpDiv:
		return m.Div(other)
	default:
		return Measurement{}, fmt.Errorf("%w: %q", ErrInvalidOperator, string(op))
	}
}

func (m Measurement) combine(op Operator, other Measurement) (Measurement, error) {
	if m.unit.Compatible(other.unit) {
		l, r := ToBaseUnit(m), ToBaseUnit(other)
		mag := l.magnitude * r.magnitude
		if op == OpDiv {
			mag = l.magnitude / r.magnitude
		}
		return Measurement{magnitude: mag, unit: l.unit}, nil
	}
	if !m.unit.IsValid() || !other.unit.IsValid() {
		return Measurement{}, mismatch(m.unit, other.unit)
	}
	mag := m.magnitude * other.magnitude
	if op == OpDiv {
		mag = m.magnitude / other.magnitude
	}
	return Measurement{magnitude: mag, unit: extend(m.unit, op, other.unit)}, nil
}

// extend chains right onto left. Both sides are flattened, so (g / l) * s
// is "g / l * s" and g / (km / hr) is "g / km * hr".
func extend(left Unit, op Operator, right Unit) Unit {
	return compound([]Unit{left, right}, []Operator{op})
}

func (m Measurement) normalize(other Measurement) (Measurement, Measurement, error) {
	if !m.unit.Compatible(other.unit) {
		return Measurement{}, Measurement{}, mismatch(m.unit, other.unit)
	}
	return ToBaseUnit(m), ToBaseUnit(other), nil
}

// Compare returns -1, 0 or 1 comparing base magnitudes.
func (m Measurement) Compare(other Measurement) (int, error) {
	l, r, err := m.normalize(other)
	if err != nil {
		return 0, err
	}
	switch {
	case l.magnitude < r.magnitude:
		return -1, nil
	case l.magnitude > r.magnitude:
		return 1, nil
	default:
		return 0, nil
	}
}

func (m Measurement) Equal(other Measurement) (bool, error) {
	c, err := m.Compare(other)
	return err == nil && c == 0, err
}

func (m Measurement) NotEqual(other Measurement) (bool, error) {
	eq, err := m.Equal(other)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

func (m Measurement) Less(other Measurement) (bool, error) {
	c, err := m.Compare(other)
	return err == nil && c < 0, err
}

func (m Measurement) Greater(other Measurement) (bool, error) {
	c, err := m.Compare(other)
	return err == nil && c > 0, err
}
