package layout

import (
	"strings"

	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/errors"
)

// Measurer provides intrinsic content measurement for wrap sizing.
// The renderer dispatch registry implements this; the resolver depends on
// the interface only, so layout never imports rendering.
type Measurer interface {
	// Measure returns the intrinsic size for a view type and style.
	// ok is false when no measurement capability exists for the type,
	// in which case wrap sizing degrades to zero.
	Measure(typeTag string, style document.StyleMap) (w, h float64, ok bool)
}

// resolver holds the per-pass state of one dependency walk.
// Resolution for one screen is single-threaded and synchronous; a resolver
// is created, driven, and discarded inside Resolve.
type resolver struct {
	graph    *ConstraintGraph
	viewport Size
	measurer Measurer
	rects    map[document.Handle]Rect
	geo      *Geometry
	diags    errors.Diagnostics
}

// Resolve computes concrete geometry for every placeable entity.
//
// The walk is deterministic: guidelines are positioned first (they depend
// only on percent and the viewport), then views are placed in dependency
// order, scanning in declaration order on every round so equal inputs yield
// identical snapshots. Per-view failures are collected as diagnostics and
// never abort the screen; the returned snapshot is always the best effort.
//
// When the walk stalls with views remaining, those views form a cyclic (or
// cycle-blocked) cluster: each is reported as LAYOUT_CYCLIC_CONSTRAINT and
// excluded from the snapshot while the rest of the screen stands.
func Resolve(g *ConstraintGraph, viewport Size, m Measurer) (*Geometry, errors.Diagnostics) {
	r := &resolver{
		graph:    g,
		viewport: viewport,
		measurer: m,
		rects:    make(map[document.Handle]Rect),
		geo:      newGeometry(viewport),
	}

	r.placeGuidelines()

	// Collect the candidate views. Unconstrained views (including those
	// with no constraint block) are excluded up front with no diagnostic:
	// missing constraints mean "do not render", not an error.
	var pending []document.Handle
	for h, n := range g.nodes {
		if n.entity.IsGuideline() || n.status == StatusUnconstrained {
			continue
		}
		pending = append(pending, document.Handle(h))
	}

	for len(pending) > 0 {
		var next []document.Handle
		progressed := false
		for _, h := range pending {
			if !r.ready(h) {
				next = append(next, h)
				continue
			}
			r.place(h)
			progressed = true
		}
		if !progressed {
			r.reportCycle(next)
			break
		}
		pending = next
	}

	return r.geo, r.diags
}

// placeGuidelines positions every guideline from percent and viewport
// extent. Guidelines never join the dependency walk: they are always-ready
// position providers for the views anchored to them.
func (r *resolver) placeGuidelines() {
	for h, n := range r.graph.nodes {
		e := n.entity
		if !e.IsGuideline() {
			continue
		}
		var rect Rect
		if e.Orientation == document.OrientationVertical {
			rect = Rect{X: e.Percent * r.viewport.Width, Height: r.viewport.Height}
		} else {
			rect = Rect{Y: e.Percent * r.viewport.Height, Width: r.viewport.Width}
		}
		r.rects[document.Handle(h)] = rect
		r.geo.put(e.ID, rect)
	}
}

// ready reports whether every side the view anchors to is itself resolved.
func (r *resolver) ready(h document.Handle) bool {
	for _, edge := range r.graph.nodes[h].edges {
		if edge == nil || edge.To == document.HandleRoot {
			continue
		}
		if _, ok := r.rects[edge.To]; !ok {
			return false
		}
	}
	return true
}

// coord returns the resolved coordinate of one side of an already-placed
// entity. The implicit root resolves to the viewport edges.
func (r *resolver) coord(h document.Handle, side document.Side) float64 {
	if h == document.HandleRoot {
		switch side {
		case document.SideStart, document.SideTop:
			return 0
		case document.SideEnd:
			return r.viewport.Width
		default:
			return r.viewport.Height
		}
	}
	rect := r.rects[h]
	switch side {
	case document.SideStart:
		return rect.X
	case document.SideEnd:
		return rect.Right()
	case document.SideTop:
		return rect.Y
	default:
		return rect.Bottom()
	}
}

// place computes the view's rect from its resolved anchors and sizing.
// A view whose horizontal or vertical axis has no resolvable anchor at all
// is excluded from the snapshot entirely: the engine never invents a
// default position.
func (r *resolver) place(h document.Handle) {
	n := r.graph.nodes[h]
	e := n.entity

	mw, mh := r.measure(e)

	x, w, okX := r.placeAxis(n, e, document.SideStart, document.SideEnd, n.width, mw)
	y, hgt, okY := r.placeAxis(n, e, document.SideTop, document.SideBottom, n.height, mh)
	if !okX || !okY {
		return
	}

	rect := Rect{X: x, Y: y, Width: w, Height: hgt}
	r.rects[h] = rect
	r.geo.put(e.ID, rect)
}

// placeAxis resolves position and size on one axis.
//
// The leading side's coordinate is the anchor target's coordinate plus
// margin; the trailing side's is the target's coordinate minus margin. When
// both sides are anchored together with a non-fill size, the leading side
// wins and the trailing anchor only constrains fill spans.
func (r *resolver) placeAxis(n *node, e *document.ViewSpec, lead, trail document.Side, size document.SizeSpec, measured float64) (pos, extent float64, ok bool) {
	leadEdge, trailEdge := n.edges[lead], n.edges[trail]
	if leadEdge == nil && trailEdge == nil {
		return 0, 0, false
	}

	var leadC, trailC float64
	if leadEdge != nil {
		leadC = r.coord(leadEdge.To, leadEdge.ToSide) + leadEdge.Margin
	}
	if trailEdge != nil {
		trailC = r.coord(trailEdge.To, trailEdge.ToSide) - trailEdge.Margin
	}

	switch size.Mode {
	case document.SizeFixed:
		extent = size.Value
	case document.SizeFill:
		if leadEdge != nil && trailEdge != nil {
			extent = trailC - leadC
			if extent < 0 {
				extent = 0
			}
		} else {
			r.diags.Add(errors.ErrCodeAmbiguousFill, e.ID, "",
				"fill on %s axis with only the %s side anchored; using wrap", lead.Axis(), anchoredSide(leadEdge, lead, trail))
			extent = measured
		}
	default:
		extent = measured
	}

	if leadEdge != nil {
		pos = leadC
	} else {
		pos = trailC - extent
	}
	return pos, extent, true
}

// measure obtains the intrinsic content size once per view.
// Unknown types (or a nil measurer) measure as zero.
func (r *resolver) measure(e *document.ViewSpec) (w, h float64) {
	if r.measurer == nil {
		return 0, 0
	}
	w, h, ok := r.measurer.Measure(e.Type, e.Style)
	if !ok {
		return 0, 0
	}
	return w, h
}

// reportCycle marks every view in a stalled cluster as cyclic and leaves
// the cluster out of the snapshot. Views anchored into the cluster from
// outside stall with it and are reported the same way.
func (r *resolver) reportCycle(stalled []document.Handle) {
	ids := make([]string, len(stalled))
	for i, h := range stalled {
		ids[i] = r.graph.nodes[h].entity.ID
	}
	cluster := strings.Join(ids, ", ")
	for _, id := range ids {
		r.diags.Add(errors.ErrCodeCyclicConstraint, id, "",
			"anchor chain cannot make progress (cluster: %s)", cluster)
	}
}

func anchoredSide(leadEdge *anchorEdge, lead, trail document.Side) document.Side {
	if leadEdge != nil {
		return lead
	}
	return trail
}
