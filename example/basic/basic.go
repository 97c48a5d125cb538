package main

import (
	"fmt"
	"os"
	"path/filepath"

	"unitify"
	"unitify/internal/logger"
)

func main() {
	// Resolve units by abbreviation or long name
	km := unitify.MustResolve("kilometers")
	hr := unitify.MustResolve("hr")
	fmt.Printf("%s is %s, factor %g\n", km, km.Kind(), km.Factor())

	// Build a compound unit and convert a speed to base units
	kmh, err := unitify.NewCompoundUnit([]unitify.Unit{km, hr}, []unitify.Operator{unitify.OpDiv})
	if err != nil {
		panic(err)
	}
	speed := unitify.NewMeasurement(72, kmh)
	fmt.Printf("%s = %s\n", speed, speed.Base()) // 20 m / s

	// Arithmetic normalizes to the left operand's base unit
	a, _ := unitify.NewMeasurementNamed(0.5, "kg")
	b, _ := unitify.NewMeasurementNamed(200, "g")
	sum, err := a.Add(b)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s + %s = %s\n", a, b, sum)

	// Mixing dimensions is an error, not a coercion
	if _, err := a.Add(speed); err != nil {
		fmt.Println("rejected:", err)
	}

	// Evaluate expressions with precedence
	for _, line := range []string{
		"2 g + 3 g * 4 g",
		"10 m - 4 m - 3 m",
		"6 km / 2 hr",
		"1 g / 0 g",
	} {
		m, err := unitify.EvaluateLine(line)
		if err != nil {
			fmt.Printf("%-18s -> error: %v\n", line, err)
			continue
		}
		fmt.Printf("%-18s -> %s\n", line, m)
	}

	// Process a file and keep the results in SQLite
	dir, err := os.MkdirTemp("", "unitify-basic")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "measurements.txt")
	lines := "5 kg + 300 g\n12 l * 2 l\n3 min + 30 s\n1 g + 1 m\n0.2 kl - 50 l\n"
	if err := os.WriteFile(input, []byte(lines), 0o644); err != nil {
		panic(err)
	}

	p := unitify.NewProcessor("").WithLogger(logger.New(logger.Config{}))
	if err := p.WithSQLite(filepath.Join(dir, "unitify.db")); err != nil {
		panic(err)
	}
	defer p.Close()

	if _, err := p.ProcessFile(input); err != nil {
		panic(err)
	}
	fmt.Print(unitify.TextReport(p.SortedMeasurements()))

	summary, err := unitify.Summarize(p.Magnitudes())
	if err != nil {
		panic(err)
	}
	if err := unitify.WriteSummary(os.Stdout, unitify.FormatText, summary); err != nil {
		panic(err)
	}

	stored, err := p.StoredResults()
	if err != nil {
		panic(err)
	}
	for _, s := range stored {
		fmt.Printf("stored line %d: %s %s (fixed %s) %s\n", s.Line, s.Expression, s.Unit, s.Fixed, s.Error)
	}
}
