package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/layout"
)

// inspectCommand creates the inspect command for examining constraint graphs.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		dotOutput string
		svgOutput string
	)

	cmd := &cobra.Command{
		Use:   "inspect [document.json]",
		Short: "Report a screen's constraint graph and diagnostics",
		Long: `Report a screen's constraint graph and diagnostics.

The inspect command parses a document and builds its constraint graph
without resolving it. It prints each entity with its constraint status
(full, partial, unconstrained) and every diagnostic the builder produced.

Use --dot to export the graph in Graphviz DOT form, or --svg to render
it directly through Graphviz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], dotOutput, svgOutput)
		},
	}

	cmd.Flags().StringVar(&dotOutput, "dot", "", "write the constraint graph as Graphviz DOT to this file")
	cmd.Flags().StringVar(&svgOutput, "svg", "", "render the constraint graph as SVG to this file")

	return cmd
}

// runInspect parses the document, builds the graph, and prints the report.
func (c *CLI) runInspect(ctx context.Context, input, dotOutput, svgOutput string) error {
	doc, err := readDocument(input)
	if err != nil {
		return err
	}

	screen, err := document.Parse(doc)
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}

	graph, diags := layout.BuildGraph(screen)

	fmt.Println(StyleTitle.Render(strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))))
	printKeyValue("entities", fmt.Sprintf("%d", len(screen.Entities)))
	printKeyValue("views", fmt.Sprintf("%d", len(screen.Views())))
	printKeyValue("guidelines", fmt.Sprintf("%d", len(screen.Guidelines())))
	fmt.Println()

	for _, e := range screen.Entities {
		if e.IsGuideline() {
			printDetail("%-20s guideline %s %.0f%%", e.ID, e.Orientation, e.Percent*100)
			continue
		}
		status := graph.Status(e.ID)
		label := status.String()
		switch status {
		case layout.StatusFull:
			label = StyleSuccess.Render(label)
		case layout.StatusPartial:
			label = StyleWarning.Render(label)
		default:
			label = StyleDim.Render(label)
		}
		fmt.Printf("  %-20s %-10s %s\n", StyleValue.Render(e.ID), StyleDim.Render(e.Type), label)
	}

	if len(diags) > 0 {
		fmt.Println()
		printWarning("%d diagnostics", len(diags))
		printDiagnostics(diags)
	} else {
		fmt.Println()
		printSuccess("No diagnostics")
	}

	return c.exportGraph(ctx, graph, dotOutput, svgOutput)
}

// exportGraph writes the DOT and SVG exports when requested.
func (c *CLI) exportGraph(ctx context.Context, graph *layout.ConstraintGraph, dotOutput, svgOutput string) error {
	if dotOutput == "" && svgOutput == "" {
		return nil
	}

	dot := layout.ToDOT(graph)
	if dotOutput != "" {
		if err := os.WriteFile(dotOutput, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write dot: %w", err)
		}
		printFile(dotOutput)
	}
	if svgOutput != "" {
		svg, err := layout.RenderDOTSVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("render graph svg: %w", err)
		}
		if err := os.WriteFile(svgOutput, svg, 0o644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		printFile(svgOutput)
	}
	return nil
}
