package render

import (
	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/layout"
)

// ActionSink receives the action ids of entities the user interacts with.
// The sink is opaque to the engine: dispatch only wires it through to the
// capability painting the entity.
type ActionSink interface {
	Invoke(actionID string)
}

// ActionFunc adapts a function to the ActionSink interface.
type ActionFunc func(actionID string)

// Invoke calls f.
func (f ActionFunc) Invoke(actionID string) { f(actionID) }

// Action bundles an entity's declared action id with the screen's sink.
// A capability invokes it directly for immediate effects or registers it as
// a surface hotspot for interactive surfaces.
type Action struct {
	ID   string
	Sink ActionSink
}

// Invoke forwards the action id to the sink. It is a no-op when the entity
// declared no action or the screen has no sink.
func (a Action) Invoke() {
	if a.ID != "" && a.Sink != nil {
		a.Sink.Invoke(a.ID)
	}
}

// Surface is the opaque paint target a screen renders onto. Concrete
// surfaces (terminal cell canvas, SVG writer) implement these primitives;
// capabilities compose them. Coordinates are the resolved geometry's
// device-independent units.
type Surface interface {
	// Rect fills the region using the style's background, border and
	// corner attributes.
	Rect(r layout.Rect, style document.StyleMap)
	// Text draws a string clipped to the region.
	Text(r layout.Rect, text string, style document.StyleMap)
	// Line draws a separator along the region's longer axis.
	Line(r layout.Rect, style document.StyleMap)
	// Hotspot registers an interactive region. Non-interactive surfaces
	// may ignore it.
	Hotspot(r layout.Rect, a Action)
}

// Capability is the per-type renderer implementation looked up by the
// dispatch registry. Implementations must be stateless or internally
// synchronized: one registry serves concurrent screens.
type Capability interface {
	// Measure returns the intrinsic content size for wrap sizing.
	Measure(style document.StyleMap) (w, h float64)
	// Paint draws the entity onto the surface using resolved geometry and
	// the defaulted style.
	Paint(s Surface, r layout.Rect, style document.StyleMap, a Action)
}
