package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	tgerrors "github.com/matzehuels/tilegrid/pkg/errors"
	tgio "github.com/matzehuels/tilegrid/pkg/io"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	grid    gridFlags
	output  string   // output file, base path for several formats, or "-" for stdout
	formats []string // output formats
	noCache bool
	refresh bool // re-render even when artifacts are cached
}

// renderCommand renders a layout to one or more formats.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	var formatsStr string

	cmd := &cobra.Command{
		Use:   "render <layout>",
		Short: "Render a layout as JSON, HTML, SVG, DOT or a text preview",
		Example: `  tilegrid render dashboard.json -f html -o dashboard.html
  tilegrid render dashboard.toml -f svg,dot
  tilegrid render dashboard.json -f text -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = pipeline.ParseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.output == "-" && len(opts.formats) > 1 {
				return tgerrors.New(tgerrors.ErrCodeInvalidInput, "-o - writes a single format to stdout (got %d formats)", len(opts.formats))
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], &opts)
		},
	}

	opts.grid.register(cmd.Flags())
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated, default json)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, base path for several formats, or - for stdout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	return cmd
}

func (c *CLI) runRender(ctx context.Context, out, errOut io.Writer, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	layout, err := tgio.ImportLayout(input)
	if err != nil {
		return err
	}
	popts := opts.grid.options(c.Config, layout)
	popts.Formats = opts.formats
	popts.Refresh = opts.refresh
	popts.Logger = logger

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	var res *pipeline.Result
	err = guard(errOut, func() error {
		spinner := newSpinner(ctx, errOut, "Rendering "+filepath.Base(input)+"...")
		spinner.Start()
		defer spinner.Stop()

		var err error
		res, err = runner.Execute(ctx, layout.Items, popts)
		return err
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(opts.formats)))

	if opts.output == "-" {
		_, err := out.Write(res.Artifacts[opts.formats[0]])
		return err
	}

	paths := outputPaths(input, opts.output, opts.formats)
	for _, f := range opts.formats {
		if err := os.WriteFile(paths[f], res.Artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[f], err)
		}
	}

	printSuccess(out, "Rendered %s", input)
	printStats(out, len(layout.Items), res.Columns, res.CacheInfo.RenderHit)
	for _, f := range opts.formats {
		printFile(out, paths[f])
	}
	return nil
}

// outputPaths maps each format to its output file. A single format goes to
// output verbatim; several formats share output's base name. Without output
// the files land next to the input as <name>.grid.<ext>.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input)) + ".grid"
	} else {
		ext := filepath.Ext(base)
		for _, e := range pipeline.FormatExt {
			if ext == e {
				base = strings.TrimSuffix(base, ext)
				break
			}
		}
	}
	for _, f := range formats {
		paths[f] = base + pipeline.FormatExt[f]
	}
	return paths
}
