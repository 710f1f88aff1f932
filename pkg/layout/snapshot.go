package layout

import (
	"encoding/json"

	"github.com/loomui/loomui/pkg/errors"
)

// Snapshot is the serializable form of a resolved layout. It carries the
// placed rects in declaration order plus the diagnostics collected while
// resolving, so cached and API-served layouts preserve both.
type Snapshot struct {
	Viewport    Size                `json:"viewport"`
	Rects       []PlacedRect        `json:"rects"`
	Diagnostics []errors.Diagnostic `json:"diagnostics,omitempty"`
}

// PlacedRect pairs an entity id with its resolved rect.
type PlacedRect struct {
	ID string `json:"id"`
	Rect
}

// NewSnapshot captures a geometry and its diagnostics.
func NewSnapshot(geo *Geometry, diags errors.Diagnostics) Snapshot {
	s := Snapshot{
		Viewport: geo.Viewport,
		Rects:    make([]PlacedRect, 0, geo.Len()),
	}
	for _, id := range geo.IDs() {
		r, _ := geo.Rect(id)
		s.Rects = append(s.Rects, PlacedRect{ID: id, Rect: r})
	}
	s.Diagnostics = append(s.Diagnostics, diags...)
	return s
}

// Geometry reconstructs the geometry held by the snapshot.
func (s Snapshot) Geometry() *Geometry {
	geo := newGeometry(s.Viewport)
	for _, pr := range s.Rects {
		geo.put(pr.ID, pr.Rect)
	}
	return geo
}

// MarshalSnapshot serializes a snapshot for caching or API responses.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSnapshot deserializes a snapshot.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
