// Package pipeline provides the core screen pipeline for LoomUI.
//
// This package implements the complete parse → layout → render pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Decode the screen document and build the reference table
//  2. Layout: Build the constraint graph and resolve it against a viewport
//  3. Render: Dispatch placed views to a surface (terminal, SVG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Per-view problems (dangling anchors, cycles, unknown types) never fail a
// run; they accumulate on Result.Diagnostics while the rest of the screen
// resolves and renders.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Document: raw,
//	    Width:    400,
//	    Height:   800,
//	    Format:   pipeline.FormatTerm,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Artifact))
//
// Run individual stages:
//
//	// Parse only
//	screen, err := runner.Parse(ctx, opts)
//
//	// Layout with an existing screen
//	snap, err := runner.ComputeLayout(ctx, screen, opts)
package pipeline

import (
	"fmt"
	"io"

	"time"

	"github.com/charmbracelet/log"

	"github.com/loomui/loomui/pkg/cache"
	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/errors"
	"github.com/loomui/loomui/pkg/layout"
	"github.com/loomui/loomui/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultWidth is the default viewport width in layout units.
	DefaultWidth = 400.0

	// DefaultHeight is the default viewport height in layout units.
	DefaultHeight = 800.0
)

// DefaultFormat is the default output format.
const DefaultFormat = FormatTerm

// Format constants for output formats.
const (
	FormatTerm = "term"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatTerm: true,
	FormatSVG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the screen pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. Document is the raw JSON screen document. When it is
	// empty and ScreenID is set, the runner loads the document from its
	// store. ScreenID is otherwise only a label for logs and cache keys.
	ScreenID string `json:"screen_id,omitempty"`
	Document []byte `json:"document,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`

	// Layout options
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Format string `json:"format,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger       `json:"-"`
	Registry *render.Registry  `json:"-"`
	Sink     render.ActionSink `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Screen is the parsed document.
	Screen *document.Screen

	// DocumentHash is the content hash of the raw document.
	DocumentHash string

	// Snapshot is the resolved layout with its diagnostics.
	Snapshot layout.Snapshot

	// Artifact is the rendered output in the requested format.
	Artifact []byte

	// Diagnostics aggregates the per-view problems from layout and render.
	Diagnostics errors.Diagnostics

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EntityCount int
	PlacedCount int
	ParseTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DocumentHit bool // Whether the raw document came from cache
	LayoutHit   bool // Whether the layout snapshot came from cache
	RenderHit   bool // Whether the artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: term, svg, json)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if len(o.Document) == 0 && o.ScreenID == "" {
		return fmt.Errorf("document or screen_id is required")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetLayoutDefaults sets default values for layout resolution.
func (o *Options) SetLayoutDefaults() {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout resolution.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Registry == nil {
		o.Registry = render.Builtin()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	return ValidateFormat(o.Format)
}

// Viewport returns the layout viewport for these options.
func (o *Options) Viewport() layout.Size {
	return layout.Size{Width: o.Width, Height: o.Height}
}

// LayoutKeyOpts returns cache key options for layout resolution.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:  o.Width,
		Height: o.Height,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: o.Format,
	}
}
