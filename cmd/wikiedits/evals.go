package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/olgasafonova/wikiedits-mcp-server/evals"
	"github.com/olgasafonova/wikiedits-mcp-server/internal/output"
)

func newEvalsCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "evals",
		Short: "Check the MCP tool selection evaluation suite",
		Long: `Load a tool selection suite (the built-in one by default), verify that every
case names a registered tool and valid arguments, and report coverage per tool.

Run the suite against an LLM by implementing evals.ToolSelector.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				suite *evals.ToolSelectionSuite
				err   error
			)
			if file != "" {
				suite, err = evals.LoadToolSelectionSuite(file)
			} else {
				suite, err = evals.DefaultSuite()
			}
			if err != nil {
				return fmt.Errorf("loading suite: %w", err)
			}

			problems := evals.Lint(suite)
			coverage := evals.Coverage(suite)

			if a.jsonOut {
				if err := a.printer.JSON(map[string]any{
					"name":     suite.Name,
					"version":  suite.Version,
					"tests":    len(suite.Tests),
					"coverage": coverage,
					"problems": problems,
				}); err != nil {
					return err
				}
			} else {
				a.printer.Header(fmt.Sprintf("%s (v%s)", suite.Name, suite.Version))
				a.printer.Info("%d tests", len(suite.Tests))

				names := make([]string, 0, len(coverage))
				for name := range coverage {
					names = append(names, name)
				}
				sort.Strings(names)

				table := output.NewTable(a.printer.Writer(), []string{"tool", "tests"})
				for _, name := range names {
					table.AddRow(name, strconv.Itoa(coverage[name]))
				}
				if err := table.Render(); err != nil {
					return err
				}

				for _, p := range problems {
					a.printer.Error("%s", p)
				}
				if len(problems) == 0 {
					a.printer.Success("suite is consistent with the registered tools")
				}
			}

			if len(problems) > 0 {
				return fmt.Errorf("%d problems in suite %q", len(problems), suite.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "suite JSON file (default: built-in suite)")
	return cmd
}
