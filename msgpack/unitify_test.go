package unitifymsgpack

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"unitify"
)

func TestMeasurementRoundTrip(t *testing.T) {
	for _, line := range []string{"700 g", "72 km/hr", "5 g/ml*s", "-0.25 µl"} {
		t.Run(line, func(t *testing.T) {
			m, err := unitify.ParseMeasurement(line)
			require.NoError(t, err)

			b, err := EncodeMeasurement(m)
			require.NoError(t, err)
			got, err := DecodeMeasurement(b)
			require.NoError(t, err)

			assert.Equal(t, m.String(), got.String())
			assert.Equal(t, m.Unit().Kind(), got.Unit().Kind())
			assert.Equal(t, m.Unit().Factor(), got.Unit().Factor())
			assert.True(t, m.Unit().Compatible(got.Unit()))
		})
	}
}

func TestNewUnitCompound(t *testing.T) {
	dto := NewUnit(unitify.MustResolve("km/hr"))
	assert.Equal(t, uint8(unitify.KindCompound), dto.Kind)
	assert.Equal(t, "km / hr", dto.Name)
	assert.Equal(t, "/", dto.Operators)
	require.Len(t, dto.Operands, 2)
	assert.Equal(t, 1000.0, dto.Operands[0].Factor)
	assert.Equal(t, 3600.0, dto.Operands[1].Factor)
}

func TestToUnitValidates(t *testing.T) {
	tests := []struct {
		name    string
		dto     Unit
		wantErr error
	}{
		{name: "zero factor", dto: Unit{Kind: uint8(unitify.KindMass), Name: "g"}, wantErr: unitify.ErrInvalidFactor},
		{name: "invalid kind", dto: Unit{Name: "g", Factor: 1}, wantErr: unitify.ErrInvalidKind},
		{
			name: "additive operator",
			dto: Unit{Kind: uint8(unitify.KindCompound), Operators: "+", Operands: []Unit{
				{Kind: uint8(unitify.KindMass), Name: "g", Factor: 1},
				{Kind: uint8(unitify.KindMass), Name: "kg", Factor: 1000},
			}},
			wantErr: unitify.ErrMalformedCompound,
		},
		{
			name: "bad operand",
			dto: Unit{Kind: uint8(unitify.KindCompound), Operators: "*", Operands: []Unit{
				{Kind: uint8(unitify.KindMass), Name: "g", Factor: 1},
				{Kind: uint8(unitify.KindMass), Name: "kg"},
			}},
			wantErr: unitify.ErrInvalidFactor,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToUnit(&tt.dto)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecodeMeasurementGarbage(t *testing.T) {
	_, err := DecodeMeasurement([]byte{0xc1})
	assert.Error(t, err)

	_, err = DecodeUnit(nil)
	assert.Error(t, err)
}

func TestEncodeResults(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m, err := unitify.ParseMeasurement("5 g")
	require.NoError(t, err)
	results := []unitify.Result{
		{ID: "r1", ProcessorID: "p", Line: 1, Expression: "2 g + 3 g", Measurement: m, EvaluatedAt: at},
		{ID: "r2", ProcessorID: "p", Line: 2, Expression: "1 g + 1 m", Err: errors.New("dimension mismatch"), EvaluatedAt: at},
	}

	b, err := EncodeResults(results)
	require.NoError(t, err)
	dtos, err := DecodeResults(b)
	require.NoError(t, err)
	require.Len(t, dtos, 2)

	assert.Equal(t, "r1", dtos[0].UUID)
	assert.Equal(t, at.UnixMilli(), dtos[0].DatetimeMs)
	require.NotNil(t, dtos[0].Measurement)
	got, err := ToMeasurement(dtos[0].Measurement)
	require.NoError(t, err)
	assert.Equal(t, "5 g", got.String())

	assert.Nil(t, dtos[1].Measurement)
	assert.Equal(t, "dimension mismatch", dtos[1].Error)
}

func TestWireNames(t *testing.T) {
	b, err := msgpack.Marshal(&Measurement{Magnitude: 1, Unit: Unit{Kind: 1, Name: "g", Factor: 1}})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, msgpack.Unmarshal(b, &raw))
	assert.Contains(t, raw, "magnitude")
	assert.Contains(t, raw, "unit")
}
