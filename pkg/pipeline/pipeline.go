// Package pipeline runs the validate → render pipeline shared by the CLI
// and the HTTP service.
//
// The pipeline is the grid's rendering container: it resolves the column
// count, validates the items, and only renders when the layout is valid.
// A failing layout is returned both as data (Result.Validation) and as an
// INVALID_LAYOUT error from pkg/errors, so callers can either show the
// verdict or treat it as a failure.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, items, pipeline.Options{
//	    ScreenWidth: 1280,
//	    Formats:     []string{pipeline.FormatHTML},
//	})
//	if errors.Is(err, errors.ErrCodeInvalidLayout) {
//	    for _, e := range res.Validation.Errors { ... }
//	}
//	html := res.Artifacts[pipeline.FormatHTML]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilegrid/pkg/cache"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/grid"
	tgio "github.com/matzehuels/tilegrid/pkg/io"
	"github.com/matzehuels/tilegrid/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScreenWidth is used when neither a column count nor a width is
	// given.
	DefaultScreenWidth = 1920.0

	// DefaultCellWidth and DefaultCellHeight mirror the grid defaults.
	DefaultCellWidth  = grid.DefaultCellWidth
	DefaultCellHeight = grid.DefaultCellHeight

	// DefaultGap is the inter-item gap in pixels.
	DefaultGap = grid.DefaultGap

	// DefaultTTL is how long rendered artifacts stay cached.
	DefaultTTL = cache.TTLArtifact
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatText = "text"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatHTML: true,
	FormatSVG:  true,
	FormatDOT:  true,
	FormatText: true,
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// tableFormats draw every slot of the grid and are bounded by
// render.MaxCells.
var tableFormats = []string{FormatSVG, FormatDOT, FormatText}

// FormatExt is the file extension written for each format.
var FormatExt = map[string]string{
	FormatJSON: ".json",
	FormatHTML: ".html",
	FormatSVG:  ".svg",
	FormatDOT:  ".dot",
	FormatText: ".txt",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run. It supports JSON
// for API requests.
type Options struct {
	// Columns pins the column count. Zero derives it from ScreenWidth.
	Columns int `json:"columns,omitempty"`

	ScreenWidth float64 `json:"screen_width,omitempty"`
	CellWidth   float64 `json:"cell_width,omitempty"`
	CellHeight  float64 `json:"cell_height,omitempty"`
	Gap         float64 `json:"gap,omitempty"`

	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses cached entries.
	Refresh bool `json:"refresh,omitempty"`

	// TTL is the artifact cache lifetime.
	TTL time.Duration `json:"-"`

	// Logger receives this run's log lines. Nil uses the runner's logger.
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run in logs and API responses.
	ID string

	// Columns is the column count the layout was validated against.
	Columns int

	// Validation is the verdict. It is always set, also for invalid layouts.
	Validation grid.Result

	// Grid holds the placed cells. Empty when the layout is invalid.
	Grid render.Grid

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Report returns the validation verdict in its serialisable form.
func (r *Result) Report() tgio.Report {
	return tgio.NewReport(r.ID, r.Columns, r.Validation)
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount    int
	ValidateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ReportHit bool
	RenderHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if err := errors.ValidateFormat(format, ValidFormats); err != nil {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates. An empty list yields the default format.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []string{FormatJSON}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// DrawsTable reports whether any requested format draws every grid slot.
func (o *Options) DrawsTable() bool {
	for _, f := range o.Formats {
		if slices.Contains(tableFormats, f) {
			return true
		}
	}
	return false
}

// SetDefaults fills unset fields. It never overrides explicit values.
func (o *Options) SetDefaults() {
	if o.Columns == 0 && o.ScreenWidth == 0 {
		o.ScreenWidth = DefaultScreenWidth
	}
	if o.CellWidth == 0 {
		o.CellWidth = DefaultCellWidth
	}
	if o.CellHeight == 0 {
		o.CellHeight = DefaultCellHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option values. Call SetDefaults first.
func (o *Options) Validate() error {
	if o.Columns < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "columns cannot be negative (got %d)", o.Columns)
	}
	if err := errors.ValidateScreenWidth(o.ScreenWidth); err != nil {
		return err
	}
	if err := errors.ValidateCellSize(o.CellWidth, o.CellHeight); err != nil {
		return err
	}
	if o.Gap < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "gap cannot be negative (got %v)", o.Gap)
	}
	return ValidateFormats(o.Formats)
}

// ResolveColumns returns the pinned column count, or the count that fits
// ScreenWidth.
func (o *Options) ResolveColumns() int {
	if o.Columns > 0 {
		return o.Columns
	}
	return grid.ColumnCount(o.ScreenWidth, o.CellWidth, o.Gap)
}

// RenderOptions returns the cell metrics for pkg/render.
func (o *Options) RenderOptions() render.Options {
	return render.Options{CellWidth: o.CellWidth, CellHeight: o.CellHeight, Gap: o.Gap}
}

// ReportKeyOpts returns cache key options for a validation report.
func (o *Options) ReportKeyOpts(columns int) cache.ReportKeyOpts {
	return cache.ReportKeyOpts{
		Columns:    columns,
		CellWidth:  o.CellWidth,
		CellHeight: o.CellHeight,
		Gap:        o.Gap,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}

// String is used in debug logs.
func (o Options) String() string {
	return fmt.Sprintf("columns=%d width=%g cell=%gx%g gap=%g formats=%v",
		o.Columns, o.ScreenWidth, o.CellWidth, o.CellHeight, o.Gap, o.Formats)
}
