package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/loomui/loomui/pkg/cache"
	"github.com/loomui/loomui/pkg/errors"
	"github.com/loomui/loomui/pkg/layout"
	"github.com/loomui/loomui/pkg/store"
)

var testDocument = []byte(`[
	{"id": "header", "type": "Text", "ui": {"text": "Welcome"},
	 "constraints": {"start": "parent.start", "end": "parent.end", "top": "parent.top",
		"margin": {"start": 2, "end": 2, "top": 1},
		"width": "fill", "height": "fixed", "heightValue": 3}},
	{"id": "cta", "type": "Button", "ui": {"text": "Go"}, "actionId": "go",
	 "constraints": {"start": "parent.start", "top": "header.bottom",
		"margin": {"start": 2, "top": 1}}}
]`)

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Document: testDocument}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("viewport = %gx%g, want defaults", opts.Width, opts.Height)
	}
	if opts.Format != FormatTerm {
		t.Errorf("format = %q, want term", opts.Format)
	}
	if opts.Registry == nil {
		t.Error("registry default not applied")
	}

	// Idempotent: a second call leaves everything in place.
	opts.Width = 100
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if opts.Width != 100 {
		t.Error("second call must not re-apply defaults")
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	empty := Options{}
	if err := empty.ValidateAndSetDefaults(); err == nil {
		t.Error("want error when neither document nor screen id is set")
	}

	bad := Options{Document: testDocument, Format: "png"}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("want error for an unsupported format")
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatTerm, FormatSVG, FormatJSON} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, want nil", f, err)
		}
	}
	if err := ValidateFormat("html"); err == nil {
		t.Error("ValidateFormat(html) = nil, want error")
	}
}

func TestExecuteTerm(t *testing.T) {
	r := quietRunner(cache.NewNullCache())
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Document: testDocument,
		Width:    40,
		Height:   12,
		Format:   FormatTerm,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Stats.EntityCount != 2 {
		t.Errorf("EntityCount = %d, want 2", result.Stats.EntityCount)
	}
	if result.Stats.PlacedCount != 2 {
		t.Errorf("PlacedCount = %d, want 2", result.Stats.PlacedCount)
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v, want none", result.Diagnostics)
	}
	if result.DocumentHash == "" {
		t.Error("DocumentHash not set")
	}
	out := string(result.Artifact)
	if !strings.Contains(out, "Welcome") || !strings.Contains(out, "Go") {
		t.Errorf("terminal artifact missing content:\n%s", out)
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Error("null cache must never report hits")
	}
}

func TestExecuteJSON(t *testing.T) {
	r := quietRunner(cache.NewNullCache())
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Document: testDocument,
		Format:   FormatJSON,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	var snap layout.Snapshot
	if err := json.Unmarshal(result.Artifact, &snap); err != nil {
		t.Fatalf("artifact is not a snapshot: %v", err)
	}
	if len(snap.Rects) != 2 {
		t.Errorf("snapshot rects = %d, want 2", len(snap.Rects))
	}
	if snap.Viewport.Width != DefaultWidth {
		t.Errorf("snapshot viewport width = %g, want default", snap.Viewport.Width)
	}
}

func TestExecuteMalformedDocument(t *testing.T) {
	r := quietRunner(cache.NewNullCache())

	_, err := r.Execute(context.Background(), Options{Document: []byte("{")})
	if err == nil {
		t.Fatal("Execute should fail on a malformed document")
	}
	if !errors.GetCode(err).IsDocument() {
		t.Errorf("error code = %v, want a DOCUMENT_* code", errors.GetCode(err))
	}
}

func TestExecuteCollectsDiagnostics(t *testing.T) {
	r := quietRunner(cache.NewNullCache())

	doc := []byte(`[
		{"id": "a", "type": "Text", "ui": {"text": "x"},
		 "constraints": {"start": "ghost.end", "top": "parent.top"}},
		{"id": "b", "type": "Widget", "ui": {},
		 "constraints": {"start": "parent.start", "top": "parent.top"}}
	]`)
	result, err := r.Execute(context.Background(), Options{Document: doc, Format: FormatTerm})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if !result.Diagnostics.HasCode(errors.ErrCodeUnresolvedReference) {
		t.Error("missing LAYOUT_UNRESOLVED_REFERENCE diagnostic")
	}
	if !result.Diagnostics.HasCode(errors.ErrCodeUnknownType) {
		t.Error("missing RENDER_UNKNOWN_TYPE diagnostic")
	}
}

func TestExecuteLayoutCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := quietRunner(c)
	defer r.Close()
	ctx := context.Background()
	opts := Options{Document: testDocument, Format: FormatTerm}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if string(second.Artifact) != string(first.Artifact) {
		t.Error("cached artifact differs from computed artifact")
	}

	refreshed, err := r.Execute(ctx, Options{Document: testDocument, Format: FormatTerm, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute error: %v", err)
	}
	if refreshed.CacheInfo.LayoutHit || refreshed.CacheInfo.RenderHit {
		t.Error("refresh must bypass the cache")
	}
}

func TestComputeLayoutDistinctDocuments(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := quietRunner(c)
	defer r.Close()
	ctx := context.Background()

	docA := []byte(`[{"id": "a", "type": "Text", "ui": {"text": "A"},
		"constraints": {"start": "parent.start", "top": "parent.top",
			"width": "fixed", "widthValue": 10, "height": "fixed", "heightValue": 10}}]`)
	docB := []byte(`[{"id": "b", "type": "Text", "ui": {"text": "B"},
		"constraints": {"start": "parent.start", "top": "parent.top",
			"width": "fixed", "widthValue": 20, "height": "fixed", "heightValue": 5}}]`)

	resolve := func(doc []byte) layout.Snapshot {
		t.Helper()
		opts := Options{Document: doc, Width: 40, Height: 12}
		screen, err := r.Parse(ctx, opts)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		snap, err := r.ComputeLayout(ctx, screen, opts)
		if err != nil {
			t.Fatalf("ComputeLayout error: %v", err)
		}
		return snap
	}

	resolve(docA)
	snapB := resolve(docB)
	if len(snapB.Rects) != 1 || snapB.Rects[0].ID != "b" {
		t.Fatalf("second document rects = %+v, want one rect for b", snapB.Rects)
	}
	if snapB.Rects[0].Width != 20 || snapB.Rects[0].Height != 5 {
		t.Errorf("b rect = %+v, want 20x5", snapB.Rects[0].Rect)
	}
}

func TestComputeLayoutWithCacheInfoKeysByDocument(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := quietRunner(c)
	defer r.Close()
	ctx := context.Background()

	docA := []byte(`[{"id": "a", "type": "Text", "ui": {"text": "A"},
		"constraints": {"start": "parent.start", "top": "parent.top",
			"width": "fixed", "widthValue": 10, "height": "fixed", "heightValue": 10}}]`)
	docB := []byte(`[{"id": "b", "type": "Text", "ui": {"text": "B"},
		"constraints": {"start": "parent.start", "top": "parent.top",
			"width": "fixed", "widthValue": 20, "height": "fixed", "heightValue": 5}}]`)

	resolve := func(doc []byte) (layout.Snapshot, bool) {
		t.Helper()
		opts := Options{Document: doc, Width: 40, Height: 12}
		screen, err := r.Parse(ctx, opts)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		snap, hit, err := r.ComputeLayoutWithCacheInfo(ctx, screen, cache.Hash(doc), opts)
		if err != nil {
			t.Fatalf("ComputeLayoutWithCacheInfo error: %v", err)
		}
		return snap, hit
	}

	if _, hit := resolve(docA); hit {
		t.Error("first document should miss the cache")
	}
	snapB, hit := resolve(docB)
	if hit {
		t.Error("a different document must not hit the first document's entry")
	}
	if len(snapB.Rects) != 1 || snapB.Rects[0].ID != "b" {
		t.Fatalf("second document rects = %+v, want one rect for b", snapB.Rects)
	}

	snapA, hit := resolve(docA)
	if !hit {
		t.Error("re-resolving the first document should hit the cache")
	}
	if len(snapA.Rects) != 1 || snapA.Rects[0].ID != "a" {
		t.Fatalf("cached rects = %+v, want one rect for a", snapA.Rects)
	}
}

func TestExecuteFromStore(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	if err := st.Put(ctx, "login", testDocument); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	r := quietRunner(cache.NewNullCache())
	r.Store = st

	result, err := r.Execute(ctx, Options{ScreenID: "login", Format: FormatJSON})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.Stats.EntityCount != 2 {
		t.Errorf("EntityCount = %d, want 2", result.Stats.EntityCount)
	}

	if _, err := r.Execute(ctx, Options{ScreenID: "missing"}); err == nil {
		t.Error("Execute should fail for an unknown screen id")
	}
}

func TestExecuteScreenIDWithoutStore(t *testing.T) {
	r := quietRunner(cache.NewNullCache())
	if _, err := r.Execute(context.Background(), Options{ScreenID: "login"}); err == nil {
		t.Error("Execute should fail when only a screen id is given and no store is configured")
	}
}

func TestParseAndStages(t *testing.T) {
	r := quietRunner(cache.NewNullCache())
	ctx := context.Background()
	opts := Options{Document: testDocument, Width: 40, Height: 12, Format: FormatSVG}

	screen, err := r.Parse(ctx, opts)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(screen.Entities) != 2 {
		t.Fatalf("entities = %d, want 2", len(screen.Entities))
	}

	snap, err := r.ComputeLayout(ctx, screen, opts)
	if err != nil {
		t.Fatalf("ComputeLayout error: %v", err)
	}
	if len(snap.Rects) != 2 {
		t.Errorf("placed = %d, want 2", len(snap.Rects))
	}

	artifact, diags, err := r.Render(ctx, screen, snap, opts)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("render diagnostics = %v, want none", diags)
	}
	if !strings.Contains(string(artifact), "<svg") {
		t.Error("SVG artifact missing root element")
	}
}
