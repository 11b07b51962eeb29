package cli

import (
	"github.com/spf13/pflag"

	tgio "github.com/matzehuels/tilegrid/pkg/io"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
)

// gridFlags are the grid settings shared by validate, render and watch.
// Zero means "not given".
type gridFlags struct {
	columns    int
	width      float64
	cellWidth  float64
	cellHeight float64
	gap        float64

	fs *pflag.FlagSet
}

func (f *gridFlags) register(fs *pflag.FlagSet) {
	f.fs = fs
	fs.IntVarP(&f.columns, "columns", "c", 0, "pin the column count instead of deriving it from --width")
	fs.Float64VarP(&f.width, "width", "w", 0, "screen width in pixels (default 1920)")
	fs.Float64Var(&f.cellWidth, "cell-width", 0, "cell width in pixels (default 150)")
	fs.Float64Var(&f.cellHeight, "cell-height", 0, "cell height in pixels (default 150)")
	fs.Float64Var(&f.gap, "gap", 0, "gap between cells in pixels (default 10)")
}

// options resolves flags, then the layout file, then the config file, then
// pipeline defaults.
func (f *gridFlags) options(cfg *Config, l *tgio.Layout) pipeline.Options {
	opts := pipeline.Options{
		Columns:     f.columns,
		ScreenWidth: f.width,
		CellWidth:   f.cellWidth,
		CellHeight:  f.cellHeight,
		Gap:         f.gap,
	}
	if l != nil && opts.Columns == 0 && opts.ScreenWidth == 0 {
		opts.Columns = l.Columns
		opts.ScreenWidth = l.ScreenWidth
	}
	cfg.applyGrid(&opts)
	if opts.Gap == 0 && cfg.Grid.Gap == 0 && (f.fs == nil || !f.fs.Changed("gap")) {
		opts.Gap = pipeline.DefaultGap
	}
	opts.SetDefaults()
	return opts
}
