package layout_test

import (
	"fmt"

	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/layout"
)

func ExampleResolve() {
	raw := []byte(`[
		{"id": "header", "type": "Container", "ui": {},
		 "constraints": {
			"start": "parent.start", "end": "parent.end", "top": "parent.top",
			"width": "fill", "height": "fixed", "heightValue": 3}},
		{"id": "body", "type": "Container", "ui": {},
		 "constraints": {
			"start": "parent.start", "end": "parent.end",
			"top": "header.bottom", "bottom": "parent.bottom",
			"margin": {"top": 1},
			"width": "fill", "height": "fill"}}
	]`)

	screen, _ := document.Parse(raw)
	graph, _ := layout.BuildGraph(screen)
	geo, diags := layout.Resolve(graph, layout.Size{Width: 40, Height: 20}, nil)

	for _, id := range geo.IDs() {
		r, _ := geo.Rect(id)
		fmt.Printf("%s: x=%g y=%g w=%g h=%g\n", id, r.X, r.Y, r.Width, r.Height)
	}
	fmt.Println("Diagnostics:", len(diags))
	// Output:
	// header: x=0 y=0 w=40 h=3
	// body: x=0 y=4 w=40 h=16
	// Diagnostics: 0
}

func ExampleBuildGraph() {
	raw := []byte(`[
		{"id": "label", "type": "Text", "ui": {"text": "hi"},
		 "constraints": {"start": "parent.start", "top": "missing.bottom"}}
	]`)

	screen, _ := document.Parse(raw)
	graph, diags := layout.BuildGraph(screen)

	fmt.Println("Status:", graph.Status("label"))
	for _, d := range diags {
		fmt.Println(d.Code)
	}
	// Output:
	// Status: partial
	// LAYOUT_UNRESOLVED_REFERENCE
}
