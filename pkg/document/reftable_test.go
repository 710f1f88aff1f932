package document

import (
	"testing"

	"github.com/loomui/loomui/pkg/errors"
)

func makeEntities(ids ...string) []*ViewSpec {
	out := make([]*ViewSpec, len(ids))
	for i, id := range ids {
		out[i] = &ViewSpec{ID: id, Type: "Text", Index: i}
	}
	return out
}

func TestBuildReferenceTable(t *testing.T) {
	refs, err := BuildReferenceTable(makeEntities("a", "b", "c"))
	if err != nil {
		t.Fatalf("BuildReferenceTable error: %v", err)
	}
	if refs.Len() != 3 {
		t.Errorf("Len() = %d, want 3", refs.Len())
	}

	h, ok := refs.Resolve("b")
	if !ok || h != Handle(1) {
		t.Errorf("Resolve(b) = %v, %v, want 1, true", h, ok)
	}
	if got := refs.ID(h); got != "b" {
		t.Errorf("ID(%v) = %q, want %q", h, got, "b")
	}
}

func TestResolveRoot(t *testing.T) {
	refs, err := BuildReferenceTable(makeEntities("a"))
	if err != nil {
		t.Fatalf("BuildReferenceTable error: %v", err)
	}

	h, ok := refs.Resolve(RootID)
	if !ok || h != HandleRoot {
		t.Errorf("Resolve(parent) = %v, %v, want HandleRoot, true", h, ok)
	}
	if got := refs.ID(HandleRoot); got != RootID {
		t.Errorf("ID(HandleRoot) = %q, want %q", got, RootID)
	}
}

func TestResolveUnknown(t *testing.T) {
	refs, _ := BuildReferenceTable(makeEntities("a"))
	if _, ok := refs.Resolve("ghost"); ok {
		t.Error("Resolve(ghost) should fail")
	}
}

func TestBuildReferenceTableErrors(t *testing.T) {
	if _, err := BuildReferenceTable(makeEntities("a", "a")); !errors.Is(err, errors.ErrCodeDuplicateID) {
		t.Errorf("duplicate id error = %v, want DOCUMENT_DUPLICATE_ID", err)
	}
	if _, err := BuildReferenceTable(makeEntities("parent")); !errors.Is(err, errors.ErrCodeMalformed) {
		t.Errorf("reserved id error = %v, want DOCUMENT_MALFORMED", err)
	}
}

func TestResolveAnchor(t *testing.T) {
	refs, _ := BuildReferenceTable(makeEntities("hero", "item.one"))

	tests := []struct {
		ref      string
		wantH    Handle
		wantSide Side
		wantErr  bool
	}{
		{"hero.start", Handle(0), SideStart, false},
		{"hero.bottom", Handle(0), SideBottom, false},
		{"parent.end", HandleRoot, SideEnd, false},
		{"item.one.top", Handle(1), SideTop, false}, // split at last dot
		{"hero", 0, 0, true},                        // no side
		{"hero.", 0, 0, true},                       // empty side
		{".start", 0, 0, true},                      // empty id
		{"hero.middle", 0, 0, true},                 // unknown side
		{"ghost.start", 0, 0, true},                 // unknown entity
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			h, side, err := refs.ResolveAnchor(tt.ref)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ResolveAnchor should fail")
				}
				if !errors.Is(err, errors.ErrCodeUnresolvedReference) {
					t.Errorf("error code = %v, want LAYOUT_UNRESOLVED_REFERENCE", errors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveAnchor error: %v", err)
			}
			if h != tt.wantH || side != tt.wantSide {
				t.Errorf("ResolveAnchor(%q) = %v, %v, want %v, %v", tt.ref, h, side, tt.wantH, tt.wantSide)
			}
		})
	}
}

func TestSideAxis(t *testing.T) {
	tests := []struct {
		side Side
		want Axis
	}{
		{SideStart, AxisHorizontal},
		{SideEnd, AxisHorizontal},
		{SideTop, AxisVertical},
		{SideBottom, AxisVertical},
	}
	for _, tt := range tests {
		if got := tt.side.Axis(); got != tt.want {
			t.Errorf("%v.Axis() = %v, want %v", tt.side, got, tt.want)
		}
	}
}

func TestOrientationPositionAxis(t *testing.T) {
	if got := OrientationVertical.PositionAxis(); got != AxisHorizontal {
		t.Errorf("vertical.PositionAxis() = %v, want horizontal", got)
	}
	if got := OrientationHorizontal.PositionAxis(); got != AxisVertical {
		t.Errorf("horizontal.PositionAxis() = %v, want vertical", got)
	}
}
