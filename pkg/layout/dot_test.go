package layout

import (
	"strings"
	"testing"
)

func TestToDOT(t *testing.T) {
	screen := mustParse(t, `[
		{"id": "g", "type": "Guideline", "orientation": "vertical", "percent": 0.25},
		{"id": "hero", "type": "Image", "ui": {"source": "x.png"},
		 "constraints": {"start": "g.start", "top": "parent.top", "margin": {"top": 12}}}
	]`)
	g, _ := BuildGraph(screen)

	dot := ToDOT(g)

	for _, want := range []string{
		"digraph constraints",
		`"parent" [shape=box, peripheries=2];`,
		`"g" [style=dashed`,
		"vertical 25%",
		`"hero" -> "g"`,
		`"hero" -> "parent"`,
		"(12)",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT output missing %q:\n%s", want, dot)
		}
	}
}
