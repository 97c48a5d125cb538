package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"unitify"
)

func evalCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "eval <expression>",
		Short:   "Evaluate one expression, e.g. unitify eval 2 g + 3 kg",
		Args:    cobra.MinimumNArgs(1),
		Example: "  unitify eval 72 km/hr + 5 m/s\n  unitify eval \"2 g + 3 g * 4 g\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.reportFormat()
			if err != nil {
				return err
			}
			line := strings.Join(args, " ")
			m, err := unitify.EvaluateLine(line)
			if err != nil {
				opts.logger(cmd).Debug("evaluation failed", "expression", line, "error", err)
				return err
			}
			return unitify.WriteReport(cmd.OutOrStdout(), format, []unitify.Measurement{m})
		},
	}
}
