package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"unitify"
	"unitify/internal/config"
	"unitify/internal/logger"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	format  string
	dbPath  string
	debug   bool
	logJSON bool
}

func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	return logger.New(logger.Config{
		Writer: cmd.ErrOrStderr(),
		Debug:  o.debug,
		JSON:   o.logJSON,
	})
}

func (o *options) reportFormat() (unitify.Format, error) {
	return unitify.ParseFormat(o.format)
}

func newRootCmd() *cobra.Command {
	cfg, cfgErr := config.Load()
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "unitify",
		Short:        "Evaluate measurement expressions with unit checking",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return cfgErr
		},
	}

	cmd.PersistentFlags().StringVar(&opts.format, "format", cfg.Format, "Output format: text|csv|yaml")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", cfg.Debug, "enable debug logging on stderr")
	cmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", cfg.LogJSON, "log as JSON")

	cmd.AddCommand(evalCmd(opts), reportCmd(opts, cfg.DBPath), unitsCmd())
	return cmd
}
