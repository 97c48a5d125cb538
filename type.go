package unitify

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
)

// DECIMALPRECISION is the number of fractional digits a Decimal keeps.
var DECIMALPRECISION = 6

// Decimal is a fixed-point magnitude: Data / FracDivisor. It is stored as an
// INTEGER column next to the float magnitude so stored results can be
// compared exactly. Valid is false when the value didn't fit in an int64.
type Decimal struct {
	FracDivisor int64
	Data        int64
	Valid       bool
}

func fracDivisor() int64 {
	return int64(math.Pow10(DECIMALPRECISION))
}

func NewDecimal(rawI64 int64) Decimal {
	return Decimal{FracDivisor: fracDivisor(), Data: rawI64, Valid: true}
}

func NewDecimalFromFloat(fdata float64) Decimal {
	div := fracDivisor()
	scaled := math.Round(fdata * float64(div))
	if math.IsNaN(scaled) || scaled >= math.MaxInt64 || scaled <= math.MinInt64 {
		return Decimal{FracDivisor: div}
	}
	return Decimal{FracDivisor: div, Data: int64(scaled), Valid: true}
}

func (d Decimal) ToFloat() float64 {
	return float64(d.Data) / float64(d.FracDivisor)
}

func (d Decimal) ToIntFrac() (int64, int64) {
	return d.Data / d.FracDivisor, d.Data % d.FracDivisor
}

func (d Decimal) String() string {
	if !d.Valid {
		return "NULL"
	}
	i, f := d.ToIntFrac()
	sign := ""
	if d.Data < 0 {
		sign = "-"
		i, f = -i, -f
	}
	return fmt.Sprintf("%s%d.%0*d", sign, i, DECIMALPRECISION, f)
}

func (d *Decimal) Scan(src any) error {
	if src == nil {
		*d = Decimal{FracDivisor: fracDivisor()}
		return nil
	}
	iSrc, ok := src.(int64)
	if !ok {
		return errors.New("src must be int64")
	}
	*d = NewDecimal(iSrc)
	return nil
}

func (d Decimal) Value() (driver.Value, error) {
	if !d.Valid {
		return nil, nil
	}
	return d.Data, nil
}
