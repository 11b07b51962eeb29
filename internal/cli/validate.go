package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	tgerrors "github.com/matzehuels/tilegrid/pkg/errors"
	tgio "github.com/matzehuels/tilegrid/pkg/io"
)

type validateOpts struct {
	grid    gridFlags
	output  string
	asJSON  bool
	noCache bool
}

// validateCommand checks a layout file and reports every error.
func (c *CLI) validateCommand() *cobra.Command {
	var opts validateOpts

	cmd := &cobra.Command{
		Use:   "validate <layout>",
		Short: "Check a layout file for invalid positions, overflow and overlaps",
		Example: `  tilegrid validate dashboard.json
  tilegrid validate dashboard.toml --width 1280 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), cmd.OutOrStdout(), args[0], &opts)
		},
	}

	opts.grid.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the JSON report to a file")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the JSON report instead of a summary")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runValidate(ctx context.Context, out io.Writer, input string, opts *validateOpts) error {
	logger := loggerFromContext(ctx)

	layout, err := tgio.ImportLayout(input)
	if err != nil {
		return err
	}
	popts := opts.grid.options(c.Config, layout)
	logger.Debug("validating", "file", input, "items", len(layout.Items), "options", popts)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Validate(ctx, layout.Items, popts)
	if err != nil {
		return err
	}
	report := res.Report()

	if opts.output != "" {
		if err := tgio.ExportReport(report, opts.output); err != nil {
			return err
		}
	}
	if opts.asJSON {
		if err := tgio.WriteReport(out, report); err != nil {
			return err
		}
		if !report.Valid {
			return reported(tgerrors.FromResult(res.Validation))
		}
		return nil
	}

	if !report.Valid {
		printError(out, "%s has %d layout errors", input, len(report.Errors))
		printValidationErrors(out, report.Errors)
		return reported(tgerrors.FromResult(res.Validation))
	}

	printSuccess(out, "%s is valid", input)
	printStats(out, len(layout.Items), res.Columns, res.CacheInfo.ReportHit)
	if opts.output != "" {
		printFile(out, opts.output)
	}
	printNextStep(out, "Render it", appName+" render "+input+" -f html")
	return nil
}
