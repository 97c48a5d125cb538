package unitify

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatCSV, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected text|csv|yaml)", s)
	}
}

type reportRow struct {
	Magnitude float64 `yaml:"magnitude"`
	Unit      string  `yaml:"unit"`
}

func formatMagnitude(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TextReport renders one "<magnitude> <unit>" line per measurement.
func TextReport(ms []Measurement) string {
	var b strings.Builder
	for _, m := range ms {
		b.WriteString(m.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func CSVReport(ms []Measurement) (string, error) {
	var b strings.Builder
	if err := writeCSV(&b, ms); err != nil {
		return "", err
	}
	return b.String(), nil
}

func YAMLReport(ms []Measurement) (string, error) {
	var b strings.Builder
	if err := writeYAML(&b, ms); err != nil {
		return "", err
	}
	return b.String(), nil
}

func WriteReport(w io.Writer, format Format, ms []Measurement) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, TextReport(ms))
		return err
	case FormatCSV:
		return writeCSV(w, ms)
	case FormatYAML:
		return writeYAML(w, ms)
	default:
		return fmt.Errorf("unsupported format %q (expected text|csv|yaml)", format)
	}
}

func writeCSV(w io.Writer, ms []Measurement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Magnitude", "Unit"}); err != nil {
		return err
	}
	for _, m := range ms {
		if err := cw.Write([]string{formatMagnitude(m.magnitude), m.UnitName()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeYAML(w io.Writer, ms []Measurement) error {
	rows := make([]reportRow, len(ms))
	for i, m := range ms {
		rows[i] = reportRow{Magnitude: m.magnitude, Unit: m.UnitName()}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}

// WriteSummary renders statistics in the given format.
func WriteSummary(w io.Writer, format Format, s Summary) error {
	switch format {
	case FormatText, "":
		_, err := fmt.Fprintf(w, "Mean: %s\nMode: %s\nMedian: %s\n",
			formatMagnitude(s.Mean), formatMagnitude(s.Mode), formatMagnitude(s.Median))
		return err
	case FormatCSV:
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"Count", "Mean", "Mode", "Median"})
		_ = cw.Write([]string{strconv.Itoa(s.Count), formatMagnitude(s.Mean), formatMagnitude(s.Mode), formatMagnitude(s.Median)})
		cw.Flush()
		return cw.Error()
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (expected text|csv|yaml)", format)
	}
}
