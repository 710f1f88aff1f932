package layout

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/loomui/loomui/pkg/document"
)

// ToDOT converts a constraint graph to Graphviz DOT format for debugging.
// Each entity is a node (guidelines dashed, the implicit root double-lined)
// and each anchor edge is a labeled directed edge "side→side (margin)".
// The resulting DOT string can be rendered with [RenderDOTSVG].
func ToDOT(g *ConstraintGraph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph constraints {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontsize=12];\n")
	buf.WriteString(fmt.Sprintf("  %q [shape=box, peripheries=2];\n", document.RootID))
	buf.WriteString("\n")

	for _, n := range g.nodes {
		e := n.entity
		if e.IsGuideline() {
			buf.WriteString(fmt.Sprintf("  %q [style=dashed, label=\"%s\\n%s %.0f%%\"];\n",
				e.ID, e.ID, e.Orientation, e.Percent*100))
		} else {
			buf.WriteString(fmt.Sprintf("  %q [label=\"%s\\n%s\"];\n", e.ID, e.ID, e.Type))
		}
	}
	buf.WriteString("\n")

	for _, n := range g.nodes {
		for side := document.Side(0); side < document.NumSides; side++ {
			edge := n.edges[side]
			if edge == nil {
				continue
			}
			label := fmt.Sprintf("%s→%s", side, edge.ToSide)
			if edge.Margin != 0 {
				label += fmt.Sprintf(" (%g)", edge.Margin)
			}
			buf.WriteString(fmt.Sprintf("  %q -> %q [label=%q, fontsize=10];\n",
				n.entity.ID, g.screen.Refs.ID(edge.To), label))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOTSVG renders a DOT string to SVG bytes using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
