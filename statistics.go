package unitify

import "sort"

type Summary struct {
	Count  int     `yaml:"count"`
	Mean   float64 `yaml:"mean"`
	Mode   float64 `yaml:"mode"`
	Median float64 `yaml:"median"`
}

func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoData
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// Mode returns the most frequent value; ties go to the smallest value.
func Mode(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoData
	}
	freq := make(map[float64]int, len(values))
	for _, v := range values {
		freq[v]++
	}
	mode, maxCount := 0.0, 0
	for v, n := range freq {
		if n > maxCount || (n == maxCount && v < mode) {
			mode, maxCount = v, n
		}
	}
	return mode, nil
}

// Median sorts a copy; values is left untouched.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoData
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2, nil
	}
	return sorted[n/2], nil
}

func Summarize(values []float64) (Summary, error) {
	mean, err := Mean(values)
	if err != nil {
		return Summary{}, err
	}
	mode, _ := Mode(values)
	median, _ := Median(values)
	return Summary{Count: len(values), Mean: mean, Mode: mode, Median: median}, nil
}

// Magnitudes extracts the magnitudes of ms in order.
func Magnitudes(ms []Measurement) []float64 {
	values := make([]float64, len(ms))
	for i, m := range ms {
		values[i] = m.magnitude
	}
	return values
}
