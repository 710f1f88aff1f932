// Package render dispatches resolved entities to per-type renderer
// capabilities.
//
// The registry is a static mapping from a document's declared type tag to a
// [Capability]. It is built once at process start and read-only thereafter,
// so concurrent screens can share it without locking, and adding a view
// type is a pure-addition change: no dispatch code branches on types.
//
// Dispatch degrades instead of failing: an unknown type paints a visible
// placeholder and reports RENDER_UNKNOWN_TYPE; a missing required attribute
// substitutes its documented placeholder value and reports
// RENDER_MISSING_ATTRIBUTE; an entity with no geometry entry is skipped
// silently - that is the documented "missing constraints, skip rendering"
// fallback, not an error.
package render

import (
	"fmt"

	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/errors"
	"github.com/loomui/loomui/pkg/layout"
)

// Registry maps type tags to renderer capabilities.
// Register during startup; lookups afterwards are lock-free.
type Registry struct {
	caps map[string]Capability
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{caps: make(map[string]Capability)}
}

// Register binds a capability to a type tag, replacing any previous
// binding. Call only during startup, before the registry is shared.
func (r *Registry) Register(typeTag string, c Capability) {
	r.caps[typeTag] = c
}

// Capability returns the capability registered for a type tag.
func (r *Registry) Capability(typeTag string) (Capability, bool) {
	c, ok := r.caps[typeTag]
	return c, ok
}

// Types returns the number of registered type tags.
func (r *Registry) Types() int { return len(r.caps) }

// Measure implements [layout.Measurer] against the registered
// capabilities. Styles are defaulted before measuring so wrap sizing and
// painting agree on attribute values.
func (r *Registry) Measure(typeTag string, style document.StyleMap) (w, h float64, ok bool) {
	c, ok := r.caps[typeTag]
	if !ok {
		return 0, 0, false
	}
	merged, _ := ApplyDefaults(typeTag, style)
	w, h = c.Measure(merged)
	return w, h, true
}

// Dispatch paints one entity. Guidelines and entities without a geometry
// entry produce no output and no diagnostic. The returned diagnostics carry
// any unknown-type or missing-attribute fallbacks that were applied.
func (r *Registry) Dispatch(e *document.ViewSpec, geo *layout.Geometry, s Surface, sink ActionSink) errors.Diagnostics {
	var diags errors.Diagnostics

	if e.IsGuideline() {
		return nil
	}
	rect, ok := geo.Rect(e.ID)
	if !ok {
		return nil
	}

	style, attrDiags := ApplyDefaults(e.Type, e.Style)
	action := Action{ID: e.ActionID, Sink: sink}

	c, ok := r.caps[e.Type]
	if !ok {
		paintUnknown(s, rect, e.Type)
		diags.Add(errors.ErrCodeUnknownType, e.ID, "", "no renderer registered for type %q", e.Type)
		return diags
	}

	for i := range attrDiags {
		attrDiags[i].View = e.ID
	}
	diags = diags.Merge(attrDiags)

	c.Paint(s, rect, style, action)
	return diags
}

// DispatchScreen paints every renderable entity of a screen in declaration
// order against an already-resolved geometry snapshot. Layout must be
// complete before this is called: rendering never observes a partially
// resolved screen.
func (r *Registry) DispatchScreen(screen *document.Screen, geo *layout.Geometry, s Surface, sink ActionSink) errors.Diagnostics {
	var diags errors.Diagnostics
	for _, e := range screen.Entities {
		diags = diags.Merge(r.Dispatch(e, geo, s, sink))
	}
	return diags
}

// paintUnknown draws the visible "unknown type" placeholder: an outlined
// box naming the unrecognized tag.
func paintUnknown(s Surface, rect layout.Rect, typeTag string) {
	style := document.StyleMap{"background": "", "borderColor": "240"}
	s.Rect(rect, style)
	s.Text(rect, fmt.Sprintf("?%s", typeTag), document.StyleMap{"foreground": "240"})
}
