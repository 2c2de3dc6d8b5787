package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tablecast/pkg/cache"
	"github.com/matzehuels/tablecast/pkg/encode"
	"github.com/matzehuels/tablecast/pkg/observability"
	"github.com/matzehuels/tablecast/pkg/render"
	"github.com/matzehuels/tablecast/pkg/table"
)

// cacheKeyType labels artifact entries in cache hooks.
const cacheKeyType = "artifact"

// Runner executes renders with caching.
//
// The Runner is stateless except for the cache and logger, so several
// goroutines may share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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

// Records reshapes records into a table (see [table.FromRecords]) and
// renders it. A nil titles slice takes the key order of the first record.
func (r *Runner) Records(ctx context.Context, records []table.Record, titles []string, opts Options) (*Result, error) {
	t, err := r.adapt(ctx, "records", func() (table.Table, error) {
		return table.FromRecords(records, titles...)
	})
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, t, opts)
}

// Grid pairs grid with titles (see [table.FromGrid]) and renders it.
func (r *Runner) Grid(ctx context.Context, grid [][]string, titles []string, opts Options) (*Result, error) {
	t, err := r.adapt(ctx, "grid", func() (table.Table, error) {
		return table.FromGrid(grid, titles)
	})
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, t, opts)
}

func (r *Runner) adapt(ctx context.Context, kind string, fn func() (table.Table, error)) (table.Table, error) {
	hooks := observability.Pipeline()
	hooks.OnAdaptStart(ctx, kind)
	start := time.Now()
	t, err := fn()
	hooks.OnAdaptComplete(ctx, kind, t.Len(), time.Since(start), err)
	return t, err
}

// Render rasterizes t and encodes it in every requested format.
// Artifacts already in the cache are returned without rendering.
func (r *Runner) Render(ctx context.Context, t table.Table, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.SetRenderDefaults(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := render.Validate(t, opts.RenderOptions()); err != nil {
		return nil, err
	}

	result := &Result{
		ID:        uuid.NewString(),
		TableHash: cache.HashTable(t.Header, t.Body),
		Artifacts: make(map[encode.Format][]byte, len(opts.Formats)),
		Stats:     Stats{Rows: t.Len(), Columns: t.Columns()},
	}
	logger := opts.Logger.With("render_id", result.ID)

	if opts.Cacheable() && r.fromCache(ctx, logger, result, opts) {
		result.CacheHit = true
		logger.Info("served from cache",
			"rows", result.Stats.Rows,
			"columns", result.Stats.Columns,
			"formats", len(result.Artifacts))
		return result, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, result.Stats.Rows, result.Stats.Columns)
	renderStart := time.Now()
	img, err := render.Render(t, opts.RenderOptions())
	result.Stats.RenderTime = time.Since(renderStart)
	if err != nil {
		hooks.OnRenderComplete(ctx, 0, 0, result.Stats.RenderTime, err)
		return nil, err
	}
	result.Width, result.Height = img.Bounds().Dx(), img.Bounds().Dy()
	hooks.OnRenderComplete(ctx, result.Width, result.Height, result.Stats.RenderTime, nil)

	logger.Info("rendered table",
		"rows", result.Stats.Rows,
		"columns", result.Stats.Columns,
		"width", result.Width,
		"height", result.Height,
		"duration", result.Stats.RenderTime)

	// PNG encoding dominates; encode once and wrap for the other formats.
	encodeStart := time.Now()
	png, err := encode.PNG(img)
	if err != nil {
		hooks.OnEncodeComplete(ctx, string(encode.FormatPNG), 0, time.Since(encodeStart), err)
		return nil, err
	}
	for _, format := range opts.Formats {
		start := time.Now()
		data, err := encode.Wrap(png, format)
		hooks.OnEncodeComplete(ctx, string(format), len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", format, err)
		}
		result.Artifacts[format] = data
	}
	result.Stats.EncodeTime = time.Since(encodeStart)

	logger.Debug("encoded artifacts",
		"formats", opts.Formats,
		"png_bytes", len(png),
		"duration", result.Stats.EncodeTime)

	if opts.Cacheable() {
		r.toCache(ctx, logger, result, opts)
	}
	return result, nil
}

// fromCache fills result from the cache. It reports true only when every
// requested format was found.
func (r *Runner) fromCache(ctx context.Context, logger *log.Logger, result *Result, opts Options) bool {
	hooks := observability.Cache()
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(result.TableHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			logger.Warn("cache read failed", "format", format, "error", err)
		}
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, cacheKeyType)
			clear(result.Artifacts)
			return false
		}
		hooks.OnCacheHit(ctx, cacheKeyType)
		result.Artifacts[format] = data
	}
	return true
}

// toCache stores every artifact in result. Failures are logged, not returned:
// a render that succeeded is never failed by the cache.
func (r *Runner) toCache(ctx context.Context, logger *log.Logger, result *Result, opts Options) {
	hooks := observability.Cache()
	for format, data := range result.Artifacts {
		key := r.Keyer.ArtifactKey(result.TableHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, cacheKeyType, len(data))
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
// It must run before SetRenderDefaults, which installs a discard logger.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
