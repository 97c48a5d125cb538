package unitify

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

type unitRule struct {
	Kind    Kind
	Name    string
	Factor  float64 // 1 Name * Factor = base unit of Kind
	Aliases []string
}

var unitRules = []unitRule{
	{KindMass, "µg", 1e-6, []string{"μg", "ug", "micrograms"}},
	{KindMass, "mg", 1e-3, []string{"milligrams"}},
	{KindMass, "cg", 1e-2, []string{"centigrams"}},
	{KindMass, "dg", 1e-1, []string{"decigrams"}},
	{KindMass, "g", 1, []string{"grams"}},
	{KindMass, "kg", 1e3, []string{"kilograms"}},

	{KindLength, "µm", 1e-6, []string{"μm", "um", "micrometers"}},
	{KindLength, "mm", 1e-3, []string{"millimeters"}},
	{KindLength, "cm", 1e-2, []string{"centimeters"}},
	{KindLength, "dm", 1e-1, []string{"decimeters"}},
	{KindLength, "m", 1, []string{"meters"}},
	{KindLength, "km", 1e3, []string{"kilometers"}},

	{KindTime, "ms", 1e-3, []string{"milliseconds"}},
	{KindTime, "s", 1, []string{"seconds"}},
	{KindTime, "min", 60, []string{"minutes"}},
	{KindTime, "hr", 3600, []string{"hours"}},

	{KindVolume, "µl", 1e-6, []string{"μl", "ul", "µL", "microliters"}},
	{KindVolume, "ml", 1e-3, []string{"mL", "milliliters"}},
	{KindVolume, "cl", 1e-2, []string{"cL", "centiliters"}},
	{KindVolume, "dl", 1e-1, []string{"dL", "deciliters"}},
	{KindVolume, "l", 1, []string{"L", "liters"}},
	{KindVolume, "kl", 1e3, []string{"kL", "kiloliters"}},
}

// registry is filled once at init and never written afterwards, so
// concurrent reads are safe.
var registry = func() map[string]Unit {
	m := make(map[string]Unit)
	for _, rule := range unitRules {
		u := Unit{kind: rule.Kind, name: rule.Name, factor: rule.Factor}
		m[rule.Name] = u
		for _, alias := range rule.Aliases {
			m[alias] = u
		}
	}
	return m
}()

// Resolve maps a unit name or abbreviation to its Unit. Long names resolve
// to the abbreviated canonical name ("kilometers" -> "km"). A name containing
// '*' or '/' is read as a compound, e.g. "km / hr" or "g/ml".
func Resolve(name string) (Unit, error) {
	name = strings.TrimSpace(name)
	if strings.ContainsAny(name, "*/") {
		return resolveCompound(name)
	}
	if u, ok := registry[name]; ok {
		return u, nil
	}
	return Unit{}, unknownUnit(name)
}

// MustResolve is like Resolve but panics on error.
func MustResolve(name string) Unit {
	u, err := Resolve(name)
	if err != nil {
		panic(err)
	}
	return u
}

// Lookup reports whether name is a known unit or a well-formed compound.
func Lookup(name string) bool {
	_, err := Resolve(name)
	return err == nil
}

// Names lists every simple unit name and alias, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func resolveCompound(name string) (Unit, error) {
	tokens := splitCompound(name)
	if len(tokens) < 3 || len(tokens)%2 == 0 {
		return Unit{}, fmt.Errorf("%w: %q", ErrMalformedCompound, name)
	}
	operands := make([]Unit, 0, len(tokens)/2+1)
	operators := make([]Operator, 0, len(tokens)/2)
	for i, tok := range tokens {
		isOp := tok == "*" || tok == "/"
		if i%2 == 1 {
			if !isOp {
				return Unit{}, fmt.Errorf("%w: expected operator, got %q in %q", ErrMalformedCompound, tok, name)
			}
			operators = append(operators, Operator(tok[0]))
			continue
		}
		if isOp {
			return Unit{}, fmt.Errorf("%w: expected unit, got %q in %q", ErrMalformedCompound, tok, name)
		}
		u, err := Resolve(tok)
		if err != nil {
			return Unit{}, err
		}
		operands = append(operands, u)
	}
	return compound(operands, operators), nil
}

// splitCompound breaks "km/hr * s" into ["km" "/" "hr" "*" "s"]. Blanks are
// optional around operators.
func splitCompound(name string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range name {
		switch {
		case unicode.IsSpace(r):
			flush()
		case r == '*' || r == '/':
			flush()
			tokens = append(tokens, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// ToBaseUnit expresses m in the base unit of its kind.
func ToBaseUnit(m Measurement) Measurement {
	return Measurement{magnitude: m.unit.ToBase(m.magnitude), unit: m.unit.BaseUnit()}
}

// ConversionFactor returns how many `to` there are in one `from`.
func ConversionFactor(from, to Unit) (float64, error) {
	if !from.Compatible(to) {
		return 0, mismatch(from, to)
	}
	return from.ToBase(1) / to.ToBase(1), nil
}

// Convert expresses m in the compatible unit `to`.
func Convert(m Measurement, to Unit) (Measurement, error) {
	if !m.unit.Compatible(to) {
		return Measurement{}, mismatch(m.unit, to)
	}
	return Measurement{magnitude: to.FromBase(m.unit.ToBase(m.magnitude)), unit: to}, nil
}
