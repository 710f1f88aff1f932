// Package document parses raw server-driven UI documents into screens.
//
// A document is a JSON array of entity objects. Each entity declares an id
// and a type, an optional open style map under "ui", and an optional
// "constraints" object describing per-side anchors, margins, and sizing.
// Objects carrying "orientation" and "percent" but no "ui" are virtual
// guidelines: they participate in the reference table like any view so that
// siblings can anchor to them, but they produce no renderable output.
//
// Parsing is deliberately loose where looseness is safe (unknown style
// attributes are retained, unknown sizing modes fall back to wrap) and
// strict where the screen cannot survive (non-array input, entities without
// an id or type, duplicate ids). Anchor validity is not checked here at all:
// a view may reference a sibling declared later in the document, so anchors
// resolve only once the full reference table exists.
package document

import (
	"encoding/json"

	"github.com/loomui/loomui/pkg/errors"
)

// rawEntity is the wire form of one entity declaration.
type rawEntity struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	UI          map[string]any  `json:"ui"`
	Constraints *rawConstraints `json:"constraints"`
	ActionID    string          `json:"actionId"`
	Orientation string          `json:"orientation"`
	Percent     *float64        `json:"percent"`
}

// rawConstraints is the wire form of a constraint declaration. Margins may
// be given as a "margin" sub-map or as flat marginStart/... fields; flat
// fields win when both are present.
type rawConstraints struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Top    string `json:"top"`
	Bottom string `json:"bottom"`

	Margin       map[string]float64 `json:"margin"`
	MarginStart  *float64           `json:"marginStart"`
	MarginEnd    *float64           `json:"marginEnd"`
	MarginTop    *float64           `json:"marginTop"`
	MarginBottom *float64           `json:"marginBottom"`

	Width       string   `json:"width"`
	Height      string   `json:"height"`
	WidthValue  *float64 `json:"widthValue"`
	HeightValue *float64 `json:"heightValue"`
}

// Parse converts a raw document into a Screen: ordered entities plus a
// fully built reference table. It fails with a DOCUMENT_MALFORMED error when
// the top-level structure is not a sequence of objects or an entity lacks an
// id or type, and with DOCUMENT_DUPLICATE_ID when two entities share an id.
// Document errors are fatal: no partial screen is returned.
func Parse(raw []byte) (*Screen, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformed, err, "document is not a sequence of entities")
	}

	entities := make([]*ViewSpec, 0, len(items))
	for i, item := range items {
		var re rawEntity
		if err := json.Unmarshal(item, &re); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformed, err, "entity %d is not an object", i)
		}
		if re.ID == "" {
			return nil, errors.New(errors.ErrCodeMalformed, "entity %d has no id", i)
		}
		if re.Type == "" {
			return nil, errors.New(errors.ErrCodeMalformed, "entity %q has no type", re.ID)
		}
		entities = append(entities, buildEntity(re, i))
	}

	refs, err := BuildReferenceTable(entities)
	if err != nil {
		return nil, err
	}

	return &Screen{Entities: entities, Refs: refs}, nil
}

// buildEntity converts a decoded wire entity into a ViewSpec, classifying
// guidelines and normalizing the constraint block.
func buildEntity(re rawEntity, index int) *ViewSpec {
	v := &ViewSpec{
		ID:       re.ID,
		Type:     re.Type,
		ActionID: re.ActionID,
		Index:    index,
	}

	if len(re.UI) > 0 {
		v.Style = StyleMap(re.UI)
	}

	// GuidelineSpec classification: orientation + percent present, ui absent.
	if re.UI == nil && re.Percent != nil {
		if o, ok := parseOrientation(re.Orientation); ok {
			v.Kind = KindGuideline
			v.Orientation = o
			v.Percent = clamp01(*re.Percent)
			return v
		}
	}

	if re.Constraints != nil {
		v.Constraint = buildConstraint(re.Constraints)
	}
	return v
}

// buildConstraint normalizes the wire constraint block. Margins are clamped
// to non-negative; unknown sizing modes fall back to wrap so that documents
// from newer servers degrade instead of failing.
func buildConstraint(rc *rawConstraints) *ConstraintSpec {
	c := &ConstraintSpec{}
	c.Anchors[SideStart] = rc.Start
	c.Anchors[SideEnd] = rc.End
	c.Anchors[SideTop] = rc.Top
	c.Anchors[SideBottom] = rc.Bottom

	for side, key := range map[Side]string{
		SideStart: "start", SideEnd: "end", SideTop: "top", SideBottom: "bottom",
	} {
		if m, ok := rc.Margin[key]; ok {
			c.Margins[side] = clampNonNegative(m)
		}
	}
	if rc.MarginStart != nil {
		c.Margins[SideStart] = clampNonNegative(*rc.MarginStart)
	}
	if rc.MarginEnd != nil {
		c.Margins[SideEnd] = clampNonNegative(*rc.MarginEnd)
	}
	if rc.MarginTop != nil {
		c.Margins[SideTop] = clampNonNegative(*rc.MarginTop)
	}
	if rc.MarginBottom != nil {
		c.Margins[SideBottom] = clampNonNegative(*rc.MarginBottom)
	}

	c.Width = buildSize(rc.Width, rc.WidthValue)
	c.Height = buildSize(rc.Height, rc.HeightValue)
	return c
}

// buildSize maps a wire sizing mode and optional value into a SizeSpec.
// The absence of a value under fixed is preserved (HasValue=false) so the
// graph builder can report it as a constraint-level error.
func buildSize(mode string, value *float64) SizeSpec {
	s := SizeSpec{Mode: SizeWrap}
	switch mode {
	case "fill":
		s.Mode = SizeFill
	case "fixed":
		s.Mode = SizeFixed
	}
	if value != nil {
		s.Value = clampNonNegative(*value)
		s.HasValue = true
	}
	return s
}

func parseOrientation(s string) (Orientation, bool) {
	switch s {
	case "vertical":
		return OrientationVertical, true
	case "horizontal":
		return OrientationHorizontal, true
	}
	return 0, false
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func clampNonNegative(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
