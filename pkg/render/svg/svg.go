// Package svg implements an SVG paint surface for document screens.
//
// Geometry units map to SVG user units scaled by a cell factor so terminal
// and SVG renders of the same document stay proportional. Hotspots become
// transparent rects carrying a data-action attribute for host pages to wire
// up.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/layout"
	"github.com/loomui/loomui/pkg/render"
)

// Cell scaling: one geometry unit is cellW x cellH user units, matching the
// roughly 1:2 aspect of terminal cells.
const (
	cellW = 10.0
	cellH = 20.0
)

// Surface accumulates SVG elements for one screen render.
// Not safe for concurrent use; each screen paints into its own surface.
type Surface struct {
	viewport layout.Size
	body     bytes.Buffer
}

// New creates a surface for the given viewport.
func New(viewport layout.Size) *Surface {
	return &Surface{viewport: viewport}
}

// Rect emits a filled, optionally stroked and rounded rectangle.
func (s *Surface) Rect(r layout.Rect, style document.StyleMap) {
	fill := cssColor(style.String("background"), "none")
	stroke := cssColor(style.String("borderColor"), "none")
	rx := style.FloatOr("cornerRadius", 0) * cellW / 2
	fmt.Fprintf(&s.body,
		`  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s"/>`+"\n",
		r.X*cellW, r.Y*cellH, r.Width*cellW, r.Height*cellH, rx, fill, stroke)
}

// Text emits one <text> element per line, clipped to the region's rows.
func (s *Surface) Text(r layout.Rect, text string, style document.StyleMap) {
	fill := cssColor(style.String("foreground"), "#222222")
	lines := strings.Split(text, "\n")
	maxLines := int(r.Height)
	for i, line := range lines {
		if i >= maxLines {
			break
		}
		var escaped bytes.Buffer
		_ = xml.EscapeText(&escaped, []byte(line))
		fmt.Fprintf(&s.body,
			`  <text x="%.1f" y="%.1f" font-family="monospace" font-size="%.0f" fill="%s">%s</text>`+"\n",
			r.X*cellW, (r.Y+float64(i))*cellH+cellH*0.75, cellH*0.7, fill, escaped.String())
	}
}

// Line emits a separator along the region's longer axis.
func (s *Surface) Line(r layout.Rect, style document.StyleMap) {
	stroke := cssColor(style.String("foreground"), "#999999")
	x1, y1 := r.X*cellW, r.Y*cellH+cellH/2
	x2, y2 := r.Right()*cellW, y1
	if r.Height > r.Width {
		x1, y1 = r.X*cellW+cellW/2, r.Y*cellH
		x2, y2 = x1, r.Bottom()*cellH
	}
	fmt.Fprintf(&s.body, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
		x1, y1, x2, y2, stroke)
}

// Hotspot emits a transparent overlay rect tagged with the action id.
func (s *Surface) Hotspot(r layout.Rect, a render.Action) {
	if a.ID == "" {
		return
	}
	fmt.Fprintf(&s.body,
		`  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="transparent" data-action="%s" style="cursor:pointer"/>`+"\n",
		r.X*cellW, r.Y*cellH, r.Width*cellW, r.Height*cellH, a.ID)
}

// Bytes returns the complete SVG document.
func (s *Surface) Bytes() []byte {
	var buf bytes.Buffer
	w, h := s.viewport.Width*cellW, s.viewport.Height*cellH
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// cssColor maps a style color to a CSS value. Hex and named colors pass
// through; bare ANSI palette indices (as used by the terminal surface) fall
// back to a neutral gray since SVG has no palette.
func cssColor(v, def string) string {
	if v == "" {
		return def
	}
	if isDigits(v) {
		return "#888888"
	}
	return v
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Ensure Surface implements the paint surface.
var _ render.Surface = (*Surface)(nil)
