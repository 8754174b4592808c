package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/toldot/toldot/pkg/cache"
	"github.com/toldot/toldot/pkg/filter"
	"github.com/toldot/toldot/pkg/observability"
	"github.com/toldot/toldot/pkg/timeline"
)

// Runner executes pipeline stages with caching. The CLI and the HTTP server
// share it so cache keys stay consistent.
//
// A Runner holds no per-run state; one instance may serve concurrent runs
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer uses [cache.DefaultKeyer], a nil
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

// Execute runs load → filter → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	ds, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Dataset = ds
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.People = len(ds.People)
	result.Stats.Periods = len(ds.Periods)
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Info("loaded dataset",
		"source", opts.Source,
		"people", len(ds.People),
		"periods", len(ds.Periods),
		"cached", loadHit,
		"duration", result.Stats.LoadTime)

	// Stage 2: Filter
	result.Filtered = r.Filter(ctx, ds.People, opts.Filter)
	result.Stats.Filtered = len(result.Filtered)
	if !opts.Filter.IsZero() {
		r.Logger.Info("applied filter", "filter", opts.Filter.Key(), "kept", len(result.Filtered))
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	l, hash, layoutHit, err := r.LayoutWithCacheInfo(ctx, ds, result.Filtered, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.DatasetHash = hash
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Blocks = len(l.Result.Blocks)
	result.Stats.Dropped = len(l.Result.Dropped)
	result.CacheInfo.LayoutHit = layoutHit

	if n := len(l.Result.Dropped); n > 0 {
		r.Logger.Warn("persons without a known period were not placed", "count", n)
	}
	r.Logger.Info("computed layout",
		"blocks", len(l.Result.Blocks),
		"bounds", fmt.Sprintf("%d..%d", l.Bounds.MinYear, l.Bounds.MaxYear),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, result.Filtered, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads the dataset and reports whether it came from the
// cache. Only remote sources are cached; opts.Refresh bypasses the lookup
// but still stores the fresh copy.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (timeline.Dataset, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return timeline.Dataset{}, false, err
	}

	src, err := OpenSource(opts)
	if err != nil {
		return timeline.Dataset{}, false, err
	}
	if !remote(src) {
		ds, err := loadFrom(ctx, src)
		return ds, false, err
	}

	key := r.Keyer.DatasetKey(src.Name(), opts.Filter.Key())
	if !opts.Refresh {
		if ds, ok := r.getJSONDataset(ctx, key); ok {
			return ds, true, nil
		}
	}

	ds, err := loadFrom(ctx, src)
	if err != nil {
		return timeline.Dataset{}, false, err
	}
	if data, err := json.Marshal(ds); err == nil {
		r.set(ctx, "dataset", key, data, cache.TTLDataset)
	}
	return ds, false, nil
}

// Load is LoadWithCacheInfo without the cache hit flag.
func (r *Runner) Load(ctx context.Context, opts Options) (timeline.Dataset, error) {
	ds, _, err := r.LoadWithCacheInfo(ctx, opts)
	return ds, err
}

func (r *Runner) getJSONDataset(ctx context.Context, key string) (timeline.Dataset, bool) {
	data, ok := r.get(ctx, "dataset", key)
	if !ok {
		return timeline.Dataset{}, false
	}
	var ds timeline.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		r.Logger.Debug("discarding unreadable cached dataset", "key", key, "error", err)
		return timeline.Dataset{}, false
	}
	return ds, true
}

// Filter applies s to people and reports the reduction.
func (r *Runner) Filter(ctx context.Context, people []timeline.Person, s filter.State) []timeline.Person {
	out := filter.Apply(people, s)
	observability.Pipeline().OnFilter(ctx, len(people), len(out))
	return out
}

// LayoutWithCacheInfo computes the layout of the filtered persons. The cache
// key combines the dataset hash with the filter and layout options, so a
// cached layout always matches its filtered person list. The dataset hash
// is returned for API responses.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, ds timeline.Dataset, filtered []timeline.Person, opts Options) (Layout, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return Layout{}, "", false, err
	}

	hash, err := HashDataset(ds)
	if err != nil {
		return Layout{}, "", false, fmt.Errorf("hash dataset: %w", err)
	}
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if data, ok := r.get(ctx, "layout", key); ok {
		if l, err := UnmarshalLayout(data); err == nil {
			return l, hash, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(filtered))
	start := time.Now()
	l := ComputeLayout(filtered, ds.Periods, opts)
	hooks.OnLayoutComplete(ctx, len(l.Result.Blocks), time.Since(start), nil)

	if data, err := MarshalLayout(l); err == nil {
		r.set(ctx, "layout", key, data, cache.TTLLayout)
	}
	return l, hash, false, nil
}

// RenderWithCacheInfo renders every requested format. It reports a hit only
// when all formats came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l Layout, people []timeline.Person, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	contentHash, err := hashContent(l, people)
	if err != nil {
		return nil, false, fmt.Errorf("hash render input: %w", err)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(contentHash, opts.ArtifactKeyOpts(format))
		if data, ok := r.get(ctx, "artifact", key); ok {
			artifacts[format] = data
			continue
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := RenderFromLayout(ctx, l, people, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(contentHash, opts.ArtifactKeyOpts(format))
		r.set(ctx, "artifact", key, data, cache.TTLArtifact)
		artifacts[format] = data
	}
	return artifacts, false, nil
}

// Render is RenderWithCacheInfo without the cache hit flag.
func (r *Runner) Render(ctx context.Context, l Layout, people []timeline.Person, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, people, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// get reads key and fires the cache hooks. Cache errors count as misses.
func (r *Runner) get(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) set(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
