package document

// Side identifies one of the four anchorable edges of a view.
// Start/End are the horizontal axis, Top/Bottom the vertical axis.
type Side int

// Anchorable sides, in declaration order.
const (
	SideStart Side = iota
	SideEnd
	SideTop
	SideBottom

	// NumSides is the number of anchorable sides per view.
	NumSides = 4
)

// String returns the document-form name of the side ("start", "end", ...).
func (s Side) String() string {
	switch s {
	case SideStart:
		return "start"
	case SideEnd:
		return "end"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	}
	return "invalid"
}

// ParseSide converts a document-form side name to a Side.
// Returns false for anything outside {start, end, top, bottom}.
func ParseSide(s string) (Side, bool) {
	switch s {
	case "start":
		return SideStart, true
	case "end":
		return SideEnd, true
	case "top":
		return SideTop, true
	case "bottom":
		return SideBottom, true
	}
	return 0, false
}

// Axis identifies a layout axis.
type Axis int

// Layout axes.
const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// String returns "horizontal" or "vertical".
func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Axis returns the axis the side belongs to. Start/End are horizontal,
// Top/Bottom vertical. Anchors may only target sides on their own axis.
func (s Side) Axis() Axis {
	if s == SideStart || s == SideEnd {
		return AxisHorizontal
	}
	return AxisVertical
}

// SizeMode selects how a view's extent on one axis is determined.
type SizeMode int

// Sizing modes.
const (
	// SizeWrap sizes the view to its intrinsic content measurement.
	SizeWrap SizeMode = iota
	// SizeFill stretches the view between its two resolved opposite anchors.
	SizeFill
	// SizeFixed uses an explicit value from the document.
	SizeFixed
)

// String returns the document-form name of the mode.
func (m SizeMode) String() string {
	switch m {
	case SizeFill:
		return "fill"
	case SizeFixed:
		return "fixed"
	}
	return "wrap"
}

// SizeSpec is the sizing declaration for one axis.
// HasValue distinguishes fixed(120) from a bare "fixed" with no value,
// which is a constraint-level error detected by the graph builder.
type SizeSpec struct {
	Mode     SizeMode
	Value    float64
	HasValue bool
}

// ConstraintSpec holds the raw anchor, margin and sizing declarations for
// one view. Anchor strings are kept unresolved ("parent.end", "hero.start");
// resolution against the reference table is the graph builder's job, since
// forward references require the full entity set.
type ConstraintSpec struct {
	Anchors [NumSides]string  // empty string = side not anchored
	Margins [NumSides]float64 // non-negative, default 0
	Width   SizeSpec
	Height  SizeSpec
}

// Anchor returns the raw anchor reference declared for the side,
// or "" when the side is unanchored.
func (c *ConstraintSpec) Anchor(s Side) string { return c.Anchors[s] }

// Margin returns the margin declared for the side (0 when absent).
func (c *ConstraintSpec) Margin(s Side) float64 { return c.Margins[s] }

// Size returns the sizing spec for the given axis.
func (c *ConstraintSpec) Size(a Axis) SizeSpec {
	if a == AxisHorizontal {
		return c.Width
	}
	return c.Height
}

// Kind distinguishes renderable views from virtual guidelines.
type Kind int

// Entity kinds.
const (
	// KindView is a renderable entity dispatched to a renderer capability.
	KindView Kind = iota
	// KindGuideline is a virtual alignment line. It participates in the
	// reference table exactly like a view but is never dispatched.
	KindGuideline
)

// Orientation is the axis a guideline runs along.
type Orientation int

// Guideline orientations. A vertical guideline is positioned on the
// horizontal axis (an x coordinate), and vice versa.
const (
	OrientationVertical Orientation = iota
	OrientationHorizontal
)

// String returns "vertical" or "horizontal".
func (o Orientation) String() string {
	if o == OrientationVertical {
		return "vertical"
	}
	return "horizontal"
}

// PositionAxis returns the axis a guideline of this orientation provides a
// coordinate on: vertical guidelines anchor horizontal sides.
func (o Orientation) PositionAxis() Axis {
	if o == OrientationVertical {
		return AxisHorizontal
	}
	return AxisVertical
}

// ViewSpec is one declared entity of a screen. Guidelines are a
// specialization carrying Orientation and Percent instead of renderable
// output. ViewSpecs are owned by their Screen and immutable after parse.
type ViewSpec struct {
	ID         string
	Type       string
	Kind       Kind
	Style      StyleMap        // open attribute map; nil when absent
	Constraint *ConstraintSpec // nil means "do not render"
	ActionID   string          // opaque id passed to the action sink

	// Guideline fields (meaningful only when Kind == KindGuideline).
	Orientation Orientation
	Percent     float64 // 0.0-1.0 of viewport extent on the orientation axis

	// Index is the declaration position within the document.
	Index int
}

// IsGuideline reports whether the entity is a virtual guideline.
func (v *ViewSpec) IsGuideline() bool { return v.Kind == KindGuideline }
