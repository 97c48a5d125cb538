package unitifymsgpack

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"unitify"
)

type Unit struct {
	Kind      uint8   `msgpack:"kind,omitempty"`
	Name      string  `msgpack:"name,omitempty"`
	Factor    float64 `msgpack:"factor,omitempty"`
	Operands  []Unit  `msgpack:"operands,omitempty"`
	Operators string  `msgpack:"operators,omitempty"`
}

type Measurement struct {
	Magnitude float64 `msgpack:"magnitude"`
	Unit      Unit    `msgpack:"unit"`
}

type Result struct {
	UUID        string       `msgpack:"uuid,omitempty"`
	ProcessorID string       `msgpack:"processor_id,omitempty"`
	Line        int          `msgpack:"line,omitempty"`
	Expression  string       `msgpack:"expression,omitempty"`
	Measurement *Measurement `msgpack:"measurement,omitempty"`
	Error       string       `msgpack:"error,omitempty"`
	DatetimeMs  int64        `msgpack:"date,omitempty"`
}

func NewUnit(u unitify.Unit) Unit {
	dto := Unit{
		Kind: uint8(u.Kind()),
		Name: u.Name(),
	}
	if !u.IsCompound() {
		dto.Factor = u.Factor()
		return dto
	}
	for _, o := range u.Operands() {
		dto.Operands = append(dto.Operands, NewUnit(o))
	}
	for _, op := range u.Operators() {
		dto.Operators += op.String()
	}
	return dto
}

// ToUnit rebuilds a unit, validating it the same way the constructors do.
func ToUnit(dto *Unit) (unitify.Unit, error) {
	kind := unitify.Kind(dto.Kind)
	if kind != unitify.KindCompound {
		return unitify.NewUnit(kind, dto.Name, dto.Factor)
	}
	operands := make([]unitify.Unit, len(dto.Operands))
	for i := range dto.Operands {
		u, err := ToUnit(&dto.Operands[i])
		if err != nil {
			return unitify.Unit{}, fmt.Errorf("operand %d: %w", i, err)
		}
		operands[i] = u
	}
	operators := make([]unitify.Operator, len(dto.Operators))
	for i := 0; i < len(dto.Operators); i++ {
		operators[i] = unitify.Operator(dto.Operators[i])
	}
	return unitify.NewCompoundUnit(operands, operators)
}

func NewMeasurement(m unitify.Measurement) Measurement {
	return Measurement{
		Magnitude: m.Magnitude(),
		Unit:      NewUnit(m.Unit()),
	}
}

func ToMeasurement(dto *Measurement) (unitify.Measurement, error) {
	u, err := ToUnit(&dto.Unit)
	if err != nil {
		return unitify.Measurement{}, err
	}
	return unitify.NewMeasurement(dto.Magnitude, u), nil
}

func NewResult(res unitify.Result) Result {
	dto := Result{
		UUID:        res.ID,
		ProcessorID: res.ProcessorID,
		Line:        res.Line,
		Expression:  res.Expression,
		DatetimeMs:  res.EvaluatedAt.UnixMilli(),
	}
	if res.Err != nil {
		dto.Error = res.Err.Error()
	} else {
		m := NewMeasurement(res.Measurement)
		dto.Measurement = &m
	}
	return dto
}

func EncodeMeasurement(m unitify.Measurement) ([]byte, error) {
	dto := NewMeasurement(m)
	return msgpack.Marshal(&dto)
}

func DecodeMeasurement(b []byte) (unitify.Measurement, error) {
	var dto Measurement
	if err := msgpack.Unmarshal(b, &dto); err != nil {
		return unitify.Measurement{}, err
	}
	return ToMeasurement(&dto)
}

func EncodeUnit(u unitify.Unit) ([]byte, error) {
	dto := NewUnit(u)
	return msgpack.Marshal(&dto)
}

func DecodeUnit(b []byte) (unitify.Unit, error) {
	var dto Unit
	if err := msgpack.Unmarshal(b, &dto); err != nil {
		return unitify.Unit{}, err
	}
	return ToUnit(&dto)
}

func EncodeResults(results []unitify.Result) ([]byte, error) {
	dtos := make([]Result, len(results))
	for i, res := range results {
		dtos[i] = NewResult(res)
	}
	return msgpack.Marshal(dtos)
}

func DecodeResults(b []byte) ([]Result, error) {
	var dtos []Result
	err := msgpack.Unmarshal(b, &dtos)
	return dtos, err
}
