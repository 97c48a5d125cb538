package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"unitify"
)

func reportCmd(opts *options, defaultDB string) *cobra.Command {
	var sorted bool
	var stats bool

	c := &cobra.Command{
		Use:   "report <file>...",
		Short: "Evaluate every line of the given files and print the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.reportFormat()
			if err != nil {
				return err
			}
			log := opts.logger(cmd)
			out := cmd.OutOrStdout()

			for i, path := range args {
				p := unitify.NewProcessor("").WithLogger(log)
				if opts.dbPath != "" {
					if err := p.WithSQLite(opts.dbPath); err != nil {
						return fmt.Errorf("open %s: %w", opts.dbPath, err)
					}
				}
				_, err := p.ProcessFile(path)
				if cerr := p.Close(); cerr != nil {
					log.Error("close database", "error", cerr)
				}
				if err != nil {
					return err
				}

				if i > 0 && format == unitify.FormatText {
					fmt.Fprintln(out)
				}
				if err := printResults(out, format, path, p, sorted, stats); err != nil {
					return err
				}
				if n := len(p.Failures()); n > 0 {
					log.Warn("lines skipped", "path", path, "count", n)
				}
			}
			return nil
		},
	}

	c.Flags().StringVar(&opts.dbPath, "db", defaultDB, "SQLite file to store results in (optional)")
	c.Flags().BoolVar(&sorted, "sorted", false, "Also print results in ascending order")
	c.Flags().BoolVar(&stats, "stats", false, "Print mean, mode and median of the results")
	return c
}

func printResults(w io.Writer, format unitify.Format, path string, p *unitify.Processor, sorted, stats bool) error {
	heading := func(s string) {
		if format == unitify.FormatText {
			fmt.Fprintln(w, s)
		}
	}

	heading(fmt.Sprintf("Results for %s in original order:", path))
	if err := unitify.WriteReport(w, format, p.Measurements()); err != nil {
		return err
	}
	if sorted {
		heading(fmt.Sprintf("\nResults for %s in ascending order:", path))
		if err := unitify.WriteReport(w, format, p.SortedMeasurements()); err != nil {
			return err
		}
	}
	if stats {
		heading(fmt.Sprintf("\nStatistics for %s:", path))
		summary, err := unitify.Summarize(p.Magnitudes())
		if errors.Is(err, unitify.ErrNoData) {
			heading("no results")
			return nil
		}
		if err != nil {
			return err
		}
		return unitify.WriteSummary(w, format, summary)
	}
	return nil
}
