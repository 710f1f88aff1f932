package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loomui/loomui/pkg/pipeline"
)

// renderCommand creates the render command for resolving and rendering screens.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		screenID string
		noCache  bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "render [document.json]",
		Short: "Resolve a screen document and render it",
		Long: `Resolve a screen document and render it.

The render command parses a JSON screen document, resolves its anchor
constraints against the viewport, and renders the placed views. Output
formats are term (ANSI, default), svg, and json (the layout snapshot).

Per-view problems such as dangling anchors, constraint cycles, or unknown
view types never fail the run; the affected views are skipped or drawn as
placeholders and the diagnostics are printed afterwards.

Read the document from a file argument, from stdin ("-"), or from the
screen store with --screen. Results are cached locally for faster
subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, screenID, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout for term, <input>.<format> otherwise)")
	cmd.Flags().StringVar(&screenID, "screen", "", "render a stored screen by id instead of a file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass cached results")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "viewport width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "viewport height")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", opts.Format, "output format: term (default), svg, json")

	return cmd
}

// runRender loads the document, executes the pipeline, and writes the artifact.
func (c *CLI) runRender(ctx context.Context, input, screenID string, opts pipeline.Options, output string, noCache bool) error {
	if input == "" && screenID == "" {
		return fmt.Errorf("a document file or --screen is required")
	}
	if opts.Width == 0 {
		opts.Width = c.Config.Viewport.Width
	}
	if opts.Height == 0 {
		opts.Height = c.Config.Viewport.Height
	}

	if input != "" {
		doc, err := readDocument(input)
		if err != nil {
			return err
		}
		opts.Document = doc
	}
	opts.ScreenID = screenID
	opts.Logger = c.Logger

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d of %d entities", result.Stats.PlacedCount, result.Stats.EntityCount))

	if err := c.writeArtifact(result.Artifact, opts.Format, input, output); err != nil {
		return err
	}

	printStats(result.Stats.EntityCount, result.Stats.PlacedCount, len(result.Diagnostics), result.CacheInfo.LayoutHit)
	if len(result.Diagnostics) > 0 {
		printWarning("%d diagnostics", len(result.Diagnostics))
		printDiagnostics(result.Diagnostics)
	}
	return nil
}

// writeArtifact writes the rendered bytes to the output path. The term format
// defaults to stdout; svg and json default to a path derived from the input.
func (c *CLI) writeArtifact(data []byte, format, input, output string) error {
	if output == "" && format != pipeline.FormatTerm {
		if input == "" || input == "-" {
			output = "screen." + format
		} else {
			output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
		}
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	if output != "" {
		printFile(output)
	}
	return nil
}

// readDocument reads a document from a file path, or stdin for "-".
func readDocument(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	return data, nil
}

// openOutput opens path for writing, or wraps stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
