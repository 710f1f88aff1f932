package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/loomui/loomui/pkg/cache"
	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/errors"
	"github.com/loomui/loomui/pkg/layout"
	"github.com/loomui/loomui/pkg/observability"
	"github.com/loomui/loomui/pkg/store"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, store, and logger - it
// doesn't retain pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Store resolves documents for options that carry only a screen id.
	// Optional; Execute fails such options when it is nil.
	Store store.Store
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

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 0: Fetch the raw document if only a screen id was given
	doc, docHit, err := r.loadDocument(ctx, &opts)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	result.CacheInfo.DocumentHit = docHit
	result.DocumentHash = cache.Hash(doc)

	// Stage 1: Parse
	parseStart := time.Now()
	screen, err := r.parseDocument(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Screen = screen
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.EntityCount = len(screen.Entities)

	r.Logger.Info("parsed document",
		"screen", opts.ScreenID,
		"entities", len(screen.Entities),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	snap, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, screen, result.DocumentHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Snapshot = snap
	result.Diagnostics = result.Diagnostics.Merge(snap.Diagnostics)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.PlacedCount = len(snap.Rects)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("resolved layout",
		"placed", len(snap.Rects),
		"diagnostics", len(snap.Diagnostics),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifact, renderDiags, renderHit, err := r.RenderWithCacheInfo(ctx, screen, snap, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifact = artifact
	result.Diagnostics = result.Diagnostics.Merge(renderDiags)
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered output",
		"format", opts.Format,
		"bytes", len(artifact),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// loadDocument returns the raw document bytes for the options, fetching from
// the store (through the document cache) when only a screen id was supplied.
func (r *Runner) loadDocument(ctx context.Context, opts *Options) ([]byte, bool, error) {
	if len(opts.Document) > 0 {
		return opts.Document, false, nil
	}
	if r.Store == nil {
		return nil, false, fmt.Errorf("no store configured for screen %q", opts.ScreenID)
	}

	cacheKey := r.Keyer.DocumentKey(opts.ScreenID)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "document")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "document")
	}

	data, err := r.Store.Get(ctx, opts.ScreenID)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLDocument); err == nil {
		observability.Cache().OnCacheSet(ctx, "document", len(data))
	}
	return data, false, nil
}

// parseDocument runs the parse stage with observability hooks.
func (r *Runner) parseDocument(ctx context.Context, doc []byte, opts Options) (*document.Screen, error) {
	observability.Pipeline().OnParseStart(ctx, opts.ScreenID)
	start := time.Now()
	screen, err := document.Parse(doc)
	count := 0
	if screen != nil {
		count = len(screen.Entities)
	}
	observability.Pipeline().OnParseComplete(ctx, opts.ScreenID, count, time.Since(start), err)
	return screen, err
}

// Parse resolves the raw document for the options and parses it.
func (r *Runner) Parse(ctx context.Context, opts Options) (*document.Screen, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	doc, _, err := r.loadDocument(ctx, &opts)
	if err != nil {
		return nil, err
	}
	return r.parseDocument(ctx, doc, opts)
}

// ComputeLayoutWithCacheInfo resolves the layout with caching and returns cache hit info.
// documentHash keys the cache; pass cache.Hash of the raw document. An empty
// hash disables caching for this call, since the key would no longer identify
// the document.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, screen *document.Screen, documentHash string, opts Options) (layout.Snapshot, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Snapshot{}, false, err
	}
	r.applyLogger(&opts)
	opts.SetRenderDefaults() // the registry doubles as the measurer

	if documentHash == "" {
		return ComputeLayout(ctx, screen, opts), false, nil
	}

	cacheKey := r.Keyer.LayoutKey(documentHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := layout.UnmarshalSnapshot(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	snap := ComputeLayout(ctx, screen, opts)

	// Cache the result
	if data, err := layout.MarshalSnapshot(snap); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return snap, false, nil
}

// ComputeLayout is a convenience wrapper around ComputeLayoutWithCacheInfo
// for callers that no longer hold the raw document. It resolves without
// touching the cache, since a Screen alone cannot key it.
func (r *Runner) ComputeLayout(ctx context.Context, screen *document.Screen, opts Options) (layout.Snapshot, error) {
	snap, _, err := r.ComputeLayoutWithCacheInfo(ctx, screen, "", opts)
	return snap, err
}

// RenderWithCacheInfo renders the artifact with caching and returns the
// render diagnostics plus cache hit info. Cached artifacts carry no render
// diagnostics; the layout snapshot's diagnostics still apply.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, screen *document.Screen, snap layout.Snapshot, opts Options) ([]byte, errors.Diagnostics, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from the snapshot data
	snapData, err := layout.MarshalSnapshot(snap)
	if err != nil {
		return nil, nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(snapData)
	cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, nil, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	artifact, diags, err := RenderSnapshot(ctx, screen, snap, opts)
	if err != nil {
		return nil, nil, false, err
	}

	if err := r.Cache.Set(ctx, cacheKey, artifact, cache.TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(artifact))
	}

	return artifact, diags, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, screen *document.Screen, snap layout.Snapshot, opts Options) ([]byte, errors.Diagnostics, error) {
	artifact, diags, _, err := r.RenderWithCacheInfo(ctx, screen, snap, opts)
	return artifact, diags, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
