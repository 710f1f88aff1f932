// Package term implements a terminal paint surface backed by a cell canvas.
//
// Geometry units map one-to-one to terminal cells. Entities paint into the
// canvas through the [render.Surface] primitives; Render flattens the cells
// into a lipgloss-styled string for the CLI and the preview TUI. Hotspots
// registered by interactive capabilities are retained so the TUI can route
// key presses to the screen's action sink.
package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/layout"
	"github.com/loomui/loomui/pkg/render"
)

// Hotspot is an interactive region recorded during painting.
type Hotspot struct {
	Rect   layout.Rect
	Action render.Action
}

// cell is one canvas position with its styling.
type cell struct {
	ch rune
	fg string
	bg string
}

// Canvas is a write-once paint surface for one screen render.
// It is not safe for concurrent use; each screen paints into its own canvas.
type Canvas struct {
	w, h     int
	cells    [][]cell
	hotspots []Hotspot
}

// NewCanvas creates a canvas sized to the viewport, rounding fractional
// extents to whole cells.
func NewCanvas(viewport layout.Size) *Canvas {
	w, h := round(viewport.Width), round(viewport.Height)
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	cells := make([][]cell, h)
	for y := range cells {
		row := make([]cell, w)
		for x := range row {
			row[x] = cell{ch: ' '}
		}
		cells[y] = row
	}
	return &Canvas{w: w, h: h, cells: cells}
}

// Rect fills the region with the style's background and, when a border
// color is set, outlines it with box-drawing characters.
func (c *Canvas) Rect(r layout.Rect, style document.StyleMap) {
	x0, y0, x1, y1 := c.bounds(r)
	bg := style.String("background")
	border := style.String("borderColor")

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.cells[y][x] = cell{ch: ' ', bg: bg}
		}
	}

	if border == "" || x1-x0 < 2 || y1-y0 < 2 {
		return
	}
	rounded := style.FloatOr("cornerRadius", 0) > 0
	tl, tr, bl, br := '┌', '┐', '└', '┘'
	if rounded {
		tl, tr, bl, br = '╭', '╮', '╰', '╯'
	}
	for x := x0 + 1; x < x1-1; x++ {
		c.set(x, y0, '─', border, bg)
		c.set(x, y1-1, '─', border, bg)
	}
	for y := y0 + 1; y < y1-1; y++ {
		c.set(x0, y, '│', border, bg)
		c.set(x1-1, y, '│', border, bg)
	}
	c.set(x0, y0, tl, border, bg)
	c.set(x1-1, y0, tr, border, bg)
	c.set(x0, y1-1, bl, border, bg)
	c.set(x1-1, y1-1, br, border, bg)
}

// Text draws the string clipped to the region, one document line per row.
func (c *Canvas) Text(r layout.Rect, text string, style document.StyleMap) {
	x0, y0, x1, y1 := c.bounds(r)
	fg := style.String("foreground")

	y := y0
	for _, line := range strings.Split(text, "\n") {
		if y >= y1 {
			break
		}
		x := x0
		for _, ch := range line {
			if x >= x1 {
				break
			}
			bg := c.cells[y][x].bg
			c.set(x, y, ch, fg, bg)
			x++
		}
		y++
	}
}

// Line draws a separator along the region's longer axis.
func (c *Canvas) Line(r layout.Rect, style document.StyleMap) {
	x0, y0, x1, y1 := c.bounds(r)
	fg := style.String("foreground")
	if x1-x0 >= y1-y0 {
		if y0 < y1 {
			for x := x0; x < x1; x++ {
				c.set(x, y0, '─', fg, c.cells[y0][x].bg)
			}
		}
		return
	}
	if x0 < x1 {
		for y := y0; y < y1; y++ {
			c.set(x0, y, '│', fg, c.cells[y][x0].bg)
		}
	}
}

// Hotspot records the region for interactive surfaces.
func (c *Canvas) Hotspot(r layout.Rect, a render.Action) {
	if a.ID == "" {
		return
	}
	c.hotspots = append(c.hotspots, Hotspot{Rect: r, Action: a})
}

// Hotspots returns the interactive regions recorded during painting,
// in paint order.
func (c *Canvas) Hotspots() []Hotspot { return c.hotspots }

// Render flattens the canvas into a styled string. Runs of cells sharing
// colors are styled together to keep the output compact.
func (c *Canvas) Render() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		x := 0
		for x < c.w {
			run := x + 1
			for run < c.w && row[run].fg == row[x].fg && row[run].bg == row[x].bg {
				run++
			}
			var text strings.Builder
			for i := x; i < run; i++ {
				text.WriteRune(row[i].ch)
			}
			b.WriteString(styleRun(text.String(), row[x].fg, row[x].bg))
			x = run
		}
	}
	return b.String()
}

func styleRun(text, fg, bg string) string {
	if fg == "" && bg == "" {
		return text
	}
	s := lipgloss.NewStyle()
	if fg != "" {
		s = s.Foreground(lipgloss.Color(fg))
	}
	if bg != "" {
		s = s.Background(lipgloss.Color(bg))
	}
	return s.Render(text)
}

// bounds clips a rect to the canvas, returning half-open cell ranges.
func (c *Canvas) bounds(r layout.Rect) (x0, y0, x1, y1 int) {
	x0 = clampInt(round(r.X), 0, c.w)
	y0 = clampInt(round(r.Y), 0, c.h)
	x1 = clampInt(round(r.X+r.Width), x0, c.w)
	y1 = clampInt(round(r.Y+r.Height), y0, c.h)
	return
}

func (c *Canvas) set(x, y int, ch rune, fg, bg string) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	c.cells[y][x] = cell{ch: ch, fg: fg, bg: bg}
}

func round(f float64) int { return int(math.Round(f)) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Ensure Canvas implements the paint surface.
var _ render.Surface = (*Canvas)(nil)
