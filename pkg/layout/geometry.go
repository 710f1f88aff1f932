package layout

// Size is a viewport extent in device-independent units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is the resolved position and size of one entity.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the rect's end side.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the rect's bottom side.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Geometry is the resolved snapshot for one screen: a read-only mapping
// from entity id to rect, produced once per layout pass. Views that could
// not be placed (unconstrained, cyclic, or a fully unanchored axis) simply
// have no entry; rendering skips them.
type Geometry struct {
	Viewport Size
	rects    map[string]Rect
	order    []string // ids in declaration order, for deterministic iteration
}

func newGeometry(viewport Size) *Geometry {
	return &Geometry{Viewport: viewport, rects: make(map[string]Rect)}
}

func (g *Geometry) put(id string, r Rect) {
	if _, exists := g.rects[id]; !exists {
		g.order = append(g.order, id)
	}
	g.rects[id] = r
}

// Rect returns the resolved rect for an entity id.
func (g *Geometry) Rect(id string) (Rect, bool) {
	r, ok := g.rects[id]
	return r, ok
}

// Has reports whether the entity was placed.
func (g *Geometry) Has(id string) bool {
	_, ok := g.rects[id]
	return ok
}

// IDs returns placed entity ids in declaration order.
func (g *Geometry) IDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of placed entities.
func (g *Geometry) Len() int { return len(g.rects) }
