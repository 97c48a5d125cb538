package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"unitify"
)

func unitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List recognized unit names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCANONICAL\tKIND\tFACTOR")
			for _, name := range unitify.Names() {
				u := unitify.MustResolve(name)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%g\n", name, u.Name(), u.Kind(), u.Factor())
			}
			return tw.Flush()
		},
	}
}
