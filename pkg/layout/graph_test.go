package layout

import (
	"testing"

	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/errors"
)

func mustParse(t *testing.T, doc string) *document.Screen {
	t.Helper()
	screen, err := document.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return screen
}

func TestBuildGraphStatuses(t *testing.T) {
	screen := mustParse(t, `[
		{"id": "full", "type": "Text", "ui": {},
		 "constraints": {"start": "parent.start", "top": "parent.top"}},
		{"id": "partial", "type": "Text", "ui": {},
		 "constraints": {"start": "parent.start", "top": "ghost.bottom"}},
		{"id": "broken", "type": "Text", "ui": {},
		 "constraints": {"start": "ghost.start"}},
		{"id": "floating", "type": "Text", "ui": {}}
	]`)

	g, diags := BuildGraph(screen)

	tests := []struct {
		id   string
		want Status
	}{
		{"full", StatusFull},
		{"partial", StatusPartial},
		{"broken", StatusUnconstrained},
		{"floating", StatusUnconstrained},
	}
	for _, tt := range tests {
		if got := g.Status(tt.id); got != tt.want {
			t.Errorf("Status(%s) = %v, want %v", tt.id, got, tt.want)
		}
	}

	// Each dangling anchor produces one diagnostic.
	unresolved := 0
	for _, d := range diags {
		if d.Code == errors.ErrCodeUnresolvedReference {
			unresolved++
		}
	}
	if unresolved != 2 {
		t.Errorf("unresolved diagnostics = %d, want 2", unresolved)
	}
}

func TestBuildGraphAxisMismatch(t *testing.T) {
	screen := mustParse(t, `[
		{"id": "a", "type": "Text", "ui": {},
		 "constraints": {"start": "parent.start", "top": "parent.top"}},
		{"id": "b", "type": "Text", "ui": {},
		 "constraints": {"start": "a.top", "top": "a.start"}}
	]`)

	g, diags := BuildGraph(screen)

	mismatches := diags.ForView("b")
	if len(mismatches) != 2 {
		t.Fatalf("diagnostics for b = %d, want 2", len(mismatches))
	}
	for _, d := range mismatches {
		if d.Code != errors.ErrCodeAxisMismatch {
			t.Errorf("code = %v, want LAYOUT_AXIS_MISMATCH", d.Code)
		}
	}
	if got := g.Status("b"); got != StatusUnconstrained {
		t.Errorf("Status(b) = %v, want unconstrained after both sides failed", got)
	}
}

func TestBuildGraphGuidelineCrossAxis(t *testing.T) {
	// A vertical guideline provides an x coordinate; anchoring a vertical
	// side to it is an axis mismatch even though the side names match.
	screen := mustParse(t, `[
		{"id": "g", "type": "Guideline", "orientation": "vertical", "percent": 0.5},
		{"id": "ok", "type": "Text", "ui": {},
		 "constraints": {"start": "g.start", "top": "parent.top"}},
		{"id": "bad", "type": "Text", "ui": {},
		 "constraints": {"top": "g.top", "start": "parent.start"}}
	]`)

	g, diags := BuildGraph(screen)

	if got := g.Status("ok"); got != StatusFull {
		t.Errorf("Status(ok) = %v, want full", got)
	}
	bad := diags.ForView("bad")
	if len(bad) != 1 || bad[0].Code != errors.ErrCodeAxisMismatch {
		t.Fatalf("diagnostics for bad = %v, want one LAYOUT_AXIS_MISMATCH", bad)
	}
	if got := g.Status("bad"); got != StatusPartial {
		t.Errorf("Status(bad) = %v, want partial", got)
	}
}

func TestBuildGraphFixedWithoutValue(t *testing.T) {
	screen := mustParse(t, `[
		{"id": "a", "type": "Text", "ui": {},
		 "constraints": {"start": "parent.start", "top": "parent.top", "width": "fixed"}}
	]`)

	g, diags := BuildGraph(screen)

	if !diags.HasCode(errors.ErrCodeInvalidSize) {
		t.Error("fixed without value should produce LAYOUT_INVALID_SIZE")
	}
	// Demoted to wrap, so the view still resolves.
	if got := g.nodes[0].width.Mode; got != document.SizeWrap {
		t.Errorf("width mode = %v, want wrap after demotion", got)
	}
}

func TestBuildGraphGuidelinesCarryNoEdges(t *testing.T) {
	screen := mustParse(t, `[
		{"id": "g", "type": "Guideline", "orientation": "horizontal", "percent": 0.3}
	]`)

	g, diags := BuildGraph(screen)
	if len(diags) != 0 {
		t.Errorf("diagnostics = %v, want none", diags)
	}
	for _, edge := range g.nodes[0].edges {
		if edge != nil {
			t.Error("guideline should have no edges")
		}
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusUnconstrained, "unconstrained"},
		{StatusPartial, "partial"},
		{StatusFull, "full"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
