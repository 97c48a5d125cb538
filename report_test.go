package unitify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func reportFixture(t *testing.T) []Measurement {
	t.Helper()
	return []Measurement{mustMeasure(t, "700 g"), mustMeasure(t, "20 m/s"), mustMeasure(t, "0.25 l")}
}

func TestTextReport(t *testing.T) {
	assert.Equal(t, "700 g\n20 m / s\n0.25 l\n", TextReport(reportFixture(t)))
	assert.Equal(t, "", TextReport(nil))
}

func TestCSVReport(t *testing.T) {
	out, err := CSVReport(reportFixture(t))
	require.NoError(t, err)
	assert.Equal(t, "Magnitude,Unit\n700,g\n20,m / s\n0.25,l\n", out)

	out, err = CSVReport(nil)
	require.NoError(t, err)
	assert.Equal(t, "Magnitude,Unit\n", out)
}

func TestYAMLReport(t *testing.T) {
	out, err := YAMLReport(reportFixture(t))
	require.NoError(t, err)

	var rows []reportRow
	require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
	assert.Equal(t, []reportRow{
		{Magnitude: 700, Unit: "g"},
		{Magnitude: 20, Unit: "m / s"},
		{Magnitude: 0.25, Unit: "l"},
	}, rows)
}

func TestWriteReportFormats(t *testing.T) {
	for _, f := range []Format{FormatText, FormatCSV, FormatYAML} {
		var buf bytes.Buffer
		require.NoError(t, WriteReport(&buf, f, reportFixture(t)), f)
		assert.Contains(t, buf.String(), "m / s", f)
	}
	assert.Error(t, WriteReport(&bytes.Buffer{}, Format("xml"), nil))
}

func TestWriteSummary(t *testing.T) {
	s := Summary{Count: 4, Mean: 2.5, Mode: 1, Median: 2.5}

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, FormatText, s))
	assert.Equal(t, "Mean: 2.5\nMode: 1\nMedian: 2.5\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteSummary(&buf, FormatCSV, s))
	assert.Equal(t, "Count,Mean,Mode,Median\n4,2.5,1,2.5\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteSummary(&buf, FormatYAML, s))
	var got Summary
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, s, got)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":      FormatText,
		"text":  FormatText,
		" CSV ": FormatCSV,
		"yaml":  FormatYAML,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("json")
	assert.True(t, err != nil && strings.Contains(err.Error(), "json"))
}
