package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/olgasafonova/wikiedits-mcp-server/internal/config"
	"github.com/olgasafonova/wikiedits-mcp-server/internal/output"
	"github.com/olgasafonova/wikiedits-mcp-server/internal/wikimedia"
)

// app holds the state shared by all commands of one invocation
type app struct {
	cfgFile string
	jsonOut bool
	color   string

	cfg     *config.Config
	logger  *slog.Logger
	printer *output.Printer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "wikiedits",
		Short: "Wikimedia edit statistics from the command line",
		Long: `wikiedits queries the Wikimedia analytics REST API for editing activity.

Example usage:
  wikiedits edits --project en.wikipedia --start 2024-01-01 --end 2024-01-31
  wikiedits edits --project en.wikipedia --page-title Python --start 20240101 --end 20240131
  wikiedits bytes --diff-type net --project de.wikipedia --start 2023-01-01 --end 2023-12-31
  wikiedits pages --change-type new --start "March 1, 2024" --end "March 31, 2024"
  wikiedits top --project en.wikipedia --date 2024-03-15 --count 5
  wikiedits series --metric edits --granularity monthly --start 2023-01-01 --end 2024-01-01`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is .wikiedits.yaml)")
	pf.String("base-url", "", "Wikimedia analytics API root")
	pf.String("user-agent", "", "User-Agent header sent to the API")
	pf.Duration("timeout", 0, "per-request timeout")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&a.jsonOut, "json", false, "output as JSON")
	pf.StringVar(&a.color, "color", "auto", "color output: auto, always, never")

	root.AddCommand(
		newEditsCmd(a),
		newBytesCmd(a),
		newPagesCmd(a),
		newTopCmd(a),
		newSeriesCmd(a),
		newEvalsCmd(a),
		newVersionCmd(),
	)

	return root
}

// init loads configuration and sets up logging and output
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	mode, err := output.ParseColorMode(a.color)
	if err != nil {
		return err
	}
	a.printer = output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ResolveColors(mode))

	a.logger.Debug("configuration loaded",
		"base_url", cfg.API.BaseURL,
		"timeout", cfg.API.Timeout,
	)
	return nil
}

// client creates an API client from the loaded configuration
func (a *app) client() *wikimedia.Client {
	return wikimedia.NewClient(
		wikimedia.WithConfig(a.cfg.Base()),
		wikimedia.WithLogger(a.logger),
	)
}
