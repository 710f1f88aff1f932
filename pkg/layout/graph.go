// Package layout converts a parsed screen into concrete geometry.
//
// The work happens in two stages mirroring the screen pipeline:
//
//  1. BuildGraph resolves every raw anchor declaration through the screen's
//     reference table into typed constraint edges. Failures here (unknown
//     references, cross-axis anchors, fixed sizes without a value) are
//     per-view diagnostics: the offending side or view is left
//     unconstrained and the rest of the graph still builds.
//  2. Resolve walks the graph in dependency order against a viewport,
//     producing a read-only geometry snapshot plus diagnostics for views
//     that could not be placed (ambiguous fill, cyclic anchor clusters).
//
// Cycle handling deliberately lives in the resolver, not the builder:
// detecting a stalled dependency walk falls out of the topological
// evaluation for free, and the builder has no reason to pay for it twice.
package layout

import (
	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/errors"
)

// Status classifies how completely a view's sides were converted to edges.
type Status int

// Constraint statuses.
const (
	// StatusUnconstrained marks views with no usable anchor on any side,
	// including views with no constraint block at all. They are excluded
	// from geometry and never rendered.
	StatusUnconstrained Status = iota
	// StatusPartial marks views where at least one declared side failed
	// (unresolved reference or axis mismatch) but others survived.
	StatusPartial
	// StatusFull marks views whose every declared side became an edge.
	StatusFull
)

// String returns the status name for reports and logs.
func (s Status) String() string {
	switch s {
	case StatusPartial:
		return "partial"
	case StatusFull:
		return "full"
	default:
		return "unconstrained"
	}
}

// anchorEdge is one resolved constraint edge: this view's side is placed
// relative to To's ToSide, offset by Margin.
type anchorEdge struct {
	To     document.Handle
	ToSide document.Side
	Margin float64
}

// node carries the resolved constraint state for one entity.
type node struct {
	entity *document.ViewSpec
	edges  [document.NumSides]*anchorEdge
	width  document.SizeSpec
	height document.SizeSpec
	status Status
}

// ConstraintGraph is the typed edge set for one screen, built once per
// parse and read-only afterwards.
type ConstraintGraph struct {
	screen *document.Screen
	nodes  []*node // indexed by handle
}

// Screen returns the screen the graph was built from.
func (g *ConstraintGraph) Screen() *document.Screen { return g.screen }

// Status returns the constraint status recorded for a view id.
// Guidelines and unknown ids report StatusUnconstrained.
func (g *ConstraintGraph) Status(id string) Status {
	h, ok := g.screen.Refs.Resolve(id)
	if !ok || h == document.HandleRoot {
		return StatusUnconstrained
	}
	return g.nodes[h].status
}

// BuildGraph converts each entity's raw anchor, margin and size fields into
// typed constraint edges against the screen's reference table.
//
// Per-view failures never abort the graph: an anchor naming an unknown
// entity yields a LAYOUT_UNRESOLVED_REFERENCE diagnostic and leaves that
// side unanchored; an anchor targeting the wrong axis yields
// LAYOUT_AXIS_MISMATCH for that side only; a fixed size without a value
// yields LAYOUT_INVALID_SIZE and demotes the axis to wrap.
func BuildGraph(screen *document.Screen) (*ConstraintGraph, errors.Diagnostics) {
	g := &ConstraintGraph{
		screen: screen,
		nodes:  make([]*node, len(screen.Entities)),
	}
	var diags errors.Diagnostics

	for i, e := range screen.Entities {
		n := &node{entity: e}
		g.nodes[i] = n

		if e.IsGuideline() {
			// Guidelines carry no edges; they are always-ready position
			// providers positioned directly from percent at resolve time.
			continue
		}
		if e.Constraint == nil {
			continue
		}

		declared, resolved := 0, 0
		for side := document.Side(0); side < document.NumSides; side++ {
			raw := e.Constraint.Anchor(side)
			if raw == "" {
				continue
			}
			declared++

			to, toSide, err := screen.Refs.ResolveAnchor(raw)
			if err != nil {
				diags.Add(errors.ErrCodeUnresolvedReference, e.ID, side.String(),
					"%s", errors.UserMessage(err))
				continue
			}
			if toSide.Axis() != side.Axis() {
				diags.Add(errors.ErrCodeAxisMismatch, e.ID, side.String(),
					"%s anchor targets %s side %q", side.Axis(), toSide.Axis(), raw)
				continue
			}
			if target := screen.Entity(to); target != nil && target.IsGuideline() &&
				target.Orientation.PositionAxis() != side.Axis() {
				diags.Add(errors.ErrCodeAxisMismatch, e.ID, side.String(),
					"%s anchor targets %s guideline %q", side.Axis(), target.Orientation, target.ID)
				continue
			}

			n.edges[side] = &anchorEdge{To: to, ToSide: toSide, Margin: e.Constraint.Margin(side)}
			resolved++
		}

		n.width = validateSize(e.Constraint.Width, e.ID, "width", &diags)
		n.height = validateSize(e.Constraint.Height, e.ID, "height", &diags)

		switch {
		case resolved == 0:
			n.status = StatusUnconstrained
		case resolved < declared:
			n.status = StatusPartial
		default:
			n.status = StatusFull
		}
	}

	return g, diags
}

// validateSize enforces the fixed-requires-value invariant, demoting
// violations to wrap so the view still gets best-effort geometry.
func validateSize(s document.SizeSpec, view, axis string, diags *errors.Diagnostics) document.SizeSpec {
	if s.Mode == document.SizeFixed && !s.HasValue {
		diags.Add(errors.ErrCodeInvalidSize, view, "",
			"%s is fixed but carries no value", axis)
		return document.SizeSpec{Mode: document.SizeWrap}
	}
	return s
}
