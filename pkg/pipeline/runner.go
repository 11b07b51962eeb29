package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tilegrid/pkg/cache"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/grid"
	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/render"
)

// Runner encapsulates pipeline execution with caching. It holds no
// per-run state, so one Runner can serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer uses the DefaultKeyer, a nil
// cache disables caching and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute validates items and, when the layout is valid, renders every
// requested format.
//
// An invalid layout yields a non-nil Result carrying the verdict together
// with an INVALID_LAYOUT error; no artifacts are rendered. Option errors,
// and grids too large for the requested table formats, return a nil Result.
func (r *Runner) Execute(ctx context.Context, items []grid.Item, opts Options) (*Result, error) {
	res, reportHash, err := r.validate(ctx, items, &opts)
	if err != nil {
		return nil, err
	}
	if !res.Validation.Valid {
		opts.Logger.Warn("layout rejected", "id", res.ID, "errors", len(res.Validation.Errors))
		return res, errors.FromResult(res.Validation)
	}

	res.Grid = render.Build(items, res.Columns, opts.RenderOptions())
	if opts.DrawsTable() {
		if err := res.Grid.CheckExtent(); err != nil {
			opts.Logger.Warn("grid too large to draw", "id", res.ID, "rows", res.Grid.Rows, "columns", res.Grid.Columns)
			return nil, err
		}
	}

	renderStart := time.Now()
	artifacts, hit, err := r.renderWithCache(ctx, res.Grid, reportHash, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	res.Artifacts = artifacts
	res.Stats.RenderTime = time.Since(renderStart)
	res.CacheInfo.RenderHit = hit

	opts.Logger.Info("rendered outputs",
		"id", res.ID,
		"formats", opts.Formats,
		"duration", res.Stats.RenderTime)

	return res, nil
}

// Validate runs only the validation stage. The returned error is non-nil
// only for bad options; the layout verdict is in Result.Validation.
func (r *Runner) Validate(ctx context.Context, items []grid.Item, opts Options) (*Result, error) {
	res, _, err := r.validate(ctx, items, &opts)
	return res, err
}

func (r *Runner) validate(ctx context.Context, items []grid.Item, opts *Options) (*Result, string, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	cols := opts.ResolveColumns()
	res := &Result{
		ID:      uuid.NewString(),
		Columns: cols,
	}
	res.Stats.ItemCount = len(items)

	hooks := observability.Pipeline()
	hooks.OnValidateStart(ctx, len(items), cols)
	start := time.Now()

	// Items whose content cannot be hashed are validated without caching.
	var reportKey, reportHash string
	if itemsHash, err := cache.HashJSON(items); err == nil {
		reportKey = r.Keyer.ReportKey(itemsHash, opts.ReportKeyOpts(cols))
		reportHash = cache.Hash([]byte(reportKey))
	}

	if reportKey != "" && !opts.Refresh {
		if v, ok := r.cachedReport(ctx, reportKey); ok {
			res.Validation = v
			res.CacheInfo.ReportHit = true
		}
	}
	if !res.CacheInfo.ReportHit {
		res.Validation = grid.Validate(items, cols)
		if reportKey != "" {
			r.store(ctx, opts.Logger, "report", reportKey, res.Validation, cache.TTLReport)
		}
	}

	res.Stats.ValidateTime = time.Since(start)
	hooks.OnValidateComplete(ctx, res.Validation.Valid, len(res.Validation.Errors), res.Stats.ValidateTime)

	opts.Logger.Info("validated layout",
		"id", res.ID,
		"items", len(items),
		"columns", cols,
		"valid", res.Validation.Valid,
		"cached", res.CacheInfo.ReportHit)

	return res, reportHash, nil
}

func (r *Runner) cachedReport(ctx context.Context, key string) (grid.Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "report")
		return grid.Result{}, false
	}
	var v grid.Result
	if err := json.Unmarshal(data, &v); err != nil {
		observability.Cache().OnCacheMiss(ctx, "report")
		return grid.Result{}, false
	}
	if v.Errors == nil {
		v.Errors = []grid.ValidationError{}
	}
	observability.Cache().OnCacheHit(ctx, "report")
	return v, true
}

func (r *Runner) store(ctx context.Context, logger *log.Logger, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Debug("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// renderWithCache renders all formats unless every one of them is cached.
func (r *Runner) renderWithCache(ctx context.Context, g render.Grid, reportHash string, opts Options) (map[string][]byte, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	if reportHash != "" && !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(reportHash, opts.ArtifactKeyOpts(format)))
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	rendered, err := Render(ctx, g, opts.Formats)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if reportHash != "" {
		for format, data := range rendered {
			key := r.Keyer.ArtifactKey(reportHash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, opts.TTL); err == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
