package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/layout"
)

// Builtin returns a registry with the standard view types registered:
// Text, Button, Image, Container, and Divider.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register("Text", TextCapability{})
	r.Register("Button", ButtonCapability{})
	r.Register("Image", ImageCapability{})
	r.Register("Container", ContainerCapability{})
	r.Register("Divider", DividerCapability{})
	return r
}

// TextCapability renders a block of text.
type TextCapability struct{}

// Measure returns the text's line extents plus padding.
func (TextCapability) Measure(style document.StyleMap) (w, h float64) {
	pad := style.FloatOr("padding", 0)
	text := style.String("text")
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if lw := float64(lipgloss.Width(line)); lw > w {
			w = lw
		}
	}
	return w + 2*pad, float64(len(lines)) + 2*pad
}

func (TextCapability) Paint(s Surface, r layout.Rect, style document.StyleMap, a Action) {
	if style.String("background") != "" {
		s.Rect(r, style)
	}
	s.Text(inset(r, style.FloatOr("padding", 0)), style.String("text"), style)
}

// ButtonCapability renders a bordered, tappable label.
type ButtonCapability struct{}

// Measure adds border cells around the label on both axes.
func (ButtonCapability) Measure(style document.StyleMap) (w, h float64) {
	pad := style.FloatOr("padding", 0)
	return float64(lipgloss.Width(style.String("text"))) + 2*pad + 2, 1 + 2*pad + 2
}

func (ButtonCapability) Paint(s Surface, r layout.Rect, style document.StyleMap, a Action) {
	if !style.Has("borderColor") || style.String("borderColor") == "" {
		style = style.Merged(document.StyleMap{"borderColor": "62"})
	}
	s.Rect(r, style)
	s.Text(inset(r, 1+style.FloatOr("padding", 0)), style.String("text"), style)
	s.Hotspot(r, a)
}

// ImageCapability renders an image region. Surfaces without raster support
// draw the source reference as a labeled box.
type ImageCapability struct{}

// Measure prefers explicit style extents and falls back to a thumbnail.
func (ImageCapability) Measure(style document.StyleMap) (w, h float64) {
	return style.FloatOr("width", 8), style.FloatOr("height", 4)
}

func (ImageCapability) Paint(s Surface, r layout.Rect, style document.StyleMap, a Action) {
	s.Rect(r, style.Merged(document.StyleMap{"background": "236"}))
	if src := style.String("source"); src != "" {
		s.Text(r, src, style)
	}
}

// ContainerCapability renders a styled background region. Children are
// independent entities positioned by their own constraints, so containers
// have no intrinsic content size.
type ContainerCapability struct{}

func (ContainerCapability) Measure(style document.StyleMap) (w, h float64) { return 0, 0 }

func (ContainerCapability) Paint(s Surface, r layout.Rect, style document.StyleMap, a Action) {
	s.Rect(r, style)
}

// DividerCapability renders a separator line.
type DividerCapability struct{}

func (DividerCapability) Measure(style document.StyleMap) (w, h float64) { return 1, 1 }

func (DividerCapability) Paint(s Surface, r layout.Rect, style document.StyleMap, a Action) {
	s.Line(r, style)
}

// inset shrinks a rect by pad on every side, clamping at zero extent.
func inset(r layout.Rect, pad float64) layout.Rect {
	out := layout.Rect{
		X:      r.X + pad,
		Y:      r.Y + pad,
		Width:  r.Width - 2*pad,
		Height: r.Height - 2*pad,
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}
