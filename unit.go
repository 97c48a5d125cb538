package unitify

import (
	"fmt"
	"math"
	"strings"
)

// Kind is the dimensional category of a unit.
type Kind int

const (
	KindInvalid Kind = iota
	KindMass
	KindLength
	KindTime
	KindVolume
	KindCompound
)

func (k Kind) String() string {
	switch k {
	case KindMass:
		return "Mass"
	case KindLength:
		return "Length"
	case KindTime:
		return "Time"
	case KindVolume:
		return "Volume"
	case KindCompound:
		return "Compound"
	default:
		return "Invalid"
	}
}

func (k Kind) isBase() bool {
	return k >= KindMass && k <= KindVolume
}

// Base unit names per kind: grams, meters, seconds, liters.
const (
	BaseMass   = "g"
	BaseLength = "m"
	BaseTime   = "s"
	BaseVolume = "l"
)

var baseNames = map[Kind]string{
	KindMass:   BaseMass,
	KindLength: BaseLength,
	KindTime:   BaseTime,
	KindVolume: BaseVolume,
}

// Unit is an immutable unit value. A simple unit carries a kind, a name and
// the factor converting one of it to the base unit of its kind. A compound
// unit chains operand units with '*' and '/' operators.
//
// The zero Unit is invalid.
type Unit struct {
	kind      Kind
	name      string
	factor    float64
	operands  []Unit
	operators []Operator
}

// NewUnit builds a simple unit, e.g. NewUnit(KindLength, "km", 1000).
func NewUnit(kind Kind, name string, factorToBase float64) (Unit, error) {
	if !kind.isBase() {
		return Unit{}, fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}
	if strings.TrimSpace(name) == "" {
		return Unit{}, unknownUnit(name)
	}
	if !(factorToBase > 0) || math.IsInf(factorToBase, 0) {
		return Unit{}, fmt.Errorf("%w: %s has factor %v", ErrInvalidFactor, name, factorToBase)
	}
	return Unit{kind: kind, name: name, factor: factorToBase}, nil
}

// NewCompoundUnit chains operands with operators. There must be exactly one
// operator fewer than operands and every operator must be '*' or '/'.
// Compound operands are flattened into the chain.
func NewCompoundUnit(operands []Unit, operators []Operator) (Unit, error) {
	if len(operands) == 0 || len(operators) != len(operands)-1 {
		return Unit{}, fmt.Errorf("%w: %d operands with %d operators", ErrMalformedCompound, len(operands), len(operators))
	}
	for i, u := range operands {
		if u.kind == KindInvalid {
			return Unit{}, fmt.Errorf("%w: operand %d is not a valid unit", ErrMalformedCompound, i)
		}
	}
	for i, op := range operators {
		if op != OpMul && op != OpDiv {
			return Unit{}, fmt.Errorf("%w: operator %d is %q", ErrMalformedCompound, i, string(op))
		}
	}
	return compound(operands, operators), nil
}

// compound builds a flat chain: a compound operand is spliced in with the
// operator distributed over it, so g / (km / hr) becomes g / km * hr. The
// result never shares slices with its inputs.
func compound(operands []Unit, operators []Operator) Unit {
	u := Unit{kind: KindCompound}
	u.chain(OpMul, operands[0], true)
	for i, op := range operators {
		u.chain(op, operands[i+1], false)
	}
	var b strings.Builder
	b.WriteString(u.operands[0].Name())
	for i, op := range u.operators {
		b.WriteByte(' ')
		b.WriteByte(byte(op))
		b.WriteByte(' ')
		b.WriteString(u.operands[i+1].Name())
	}
	u.name = b.String()
	return u
}

// chain appends o under op. op is ignored for the leading operand.
func (u *Unit) chain(op Operator, o Unit, leading bool) {
	if !o.IsCompound() {
		if !leading {
			u.operators = append(u.operators, op)
		}
		u.operands = append(u.operands, o)
		return
	}
	for i, inner := range o.operands {
		innerOp := op
		if i > 0 {
			innerOp = o.operators[i-1]
			if op == OpDiv && !leading {
				innerOp = invert(innerOp)
			}
		}
		u.chain(innerOp, inner, leading && i == 0)
	}
}

func invert(op Operator) Operator {
	if op == OpMul {
		return OpDiv
	}
	return OpMul
}

func baseUnit(kind Kind) Unit {
	return Unit{kind: kind, name: baseNames[kind], factor: 1}
}

func (u Unit) Kind() Kind {
	return u.kind
}

// Name is the canonical name. For compound units it is the operand names
// joined by " op ", e.g. "km / hr".
func (u Unit) Name() string {
	return u.name
}

func (u Unit) String() string {
	return u.name
}

func (u Unit) IsCompound() bool {
	return u.kind == KindCompound
}

func (u Unit) IsValid() bool {
	return u.kind != KindInvalid
}

// Factor is the amount of base unit in one of u.
func (u Unit) Factor() float64 {
	if u.kind == KindCompound {
		return u.ToBase(1)
	}
	return u.factor
}

func (u Unit) Operands() []Unit {
	return append([]Unit(nil), u.operands...)
}

func (u Unit) Operators() []Operator {
	return append([]Operator(nil), u.operators...)
}

// ToBase converts a magnitude expressed in u to its base representation.
// A compound unit applies each operand's factor through its operator, so
// 72 km / hr becomes 72 * 1000 / 3600 = 20 m / s.
func (u Unit) ToBase(magnitude float64) float64 {
	if u.kind != KindCompound {
		return magnitude * u.factor
	}
	result := magnitude * u.operands[0].ToBase(1)
	for i, op := range u.operators {
		f := u.operands[i+1].ToBase(1)
		if op == OpMul {
			result *= f
		} else {
			result /= f
		}
	}
	return result
}

// FromBase is the inverse of ToBase.
func (u Unit) FromBase(magnitude float64) float64 {
	if u.kind != KindCompound {
		return magnitude / u.factor
	}
	result := magnitude / u.operands[0].ToBase(1)
	for i, op := range u.operators {
		f := u.operands[i+1].ToBase(1)
		if op == OpMul {
			result /= f
		} else {
			result *= f
		}
	}
	return result
}

// BaseUnit returns the base unit of u's kind. For a compound unit every
// operand is replaced by its own base unit and the operators are kept.
func (u Unit) BaseUnit() Unit {
	switch {
	case u.kind.isBase():
		return baseUnit(u.kind)
	case u.kind == KindCompound:
		operands := make([]Unit, len(u.operands))
		for i, o := range u.operands {
			operands[i] = o.BaseUnit()
		}
		return compound(operands, u.operators)
	default:
		return Unit{}
	}
}

// Equal compares canonical names only.
func (u Unit) Equal(other Unit) bool {
	return u.name == other.name
}

// Compatible reports whether magnitudes in u and other can be combined
// additively. Simple units must share a kind; compound units must reduce to
// the same base unit.
func (u Unit) Compatible(other Unit) bool {
	if u.kind == KindInvalid || u.kind != other.kind {
		return false
	}
	if u.kind == KindCompound {
		return u.BaseUnit().name == other.BaseUnit().name
	}
	return true
}
