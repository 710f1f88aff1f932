package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/layout"
	"github.com/loomui/loomui/pkg/render"
	"github.com/loomui/loomui/pkg/render/term"
)

// previewCommand creates the preview command for interactive screen preview.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		width  float64
		height float64
	)

	cmd := &cobra.Command{
		Use:   "preview [document.json]",
		Short: "Preview a screen interactively in the terminal",
		Long: `Preview a screen interactively in the terminal.

The preview command renders a screen document to an ANSI canvas and lets
you tab between its actionable views. Invoking a hotspot shows the action
id the host application would receive. Press r to reload the document
from disk after editing it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width == 0 {
				width = c.Config.Viewport.Width
			}
			if height == 0 {
				height = c.Config.Viewport.Height
			}
			model, err := newPreviewModel(args[0], layout.Size{Width: width, Height: height})
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "viewport width in cells")
	cmd.Flags().Float64Var(&height, "height", 0, "viewport height in cells")

	return cmd
}

// =============================================================================
// previewModel - Interactive screen preview
// =============================================================================

// previewModel is the bubbletea model for the preview command.
type previewModel struct {
	path     string
	viewport layout.Size

	frame    string
	hotspots []term.Hotspot
	diags    int
	cursor   int
	invoked  string
	loadErr  error
}

func newPreviewModel(path string, viewport layout.Size) (previewModel, error) {
	m := previewModel{path: path, viewport: viewport}
	if err := m.reload(); err != nil {
		return previewModel{}, err
	}
	return m, nil
}

// reload re-parses the document and re-renders the canvas.
func (m *previewModel) reload() error {
	doc, err := readDocument(m.path)
	if err != nil {
		return err
	}
	screen, err := document.Parse(doc)
	if err != nil {
		return err
	}

	registry := render.Builtin()
	graph, buildDiags := layout.BuildGraph(screen)
	geo, resolveDiags := layout.Resolve(graph, m.viewport, registry)

	canvas := term.NewCanvas(m.viewport)
	renderDiags := registry.DispatchScreen(screen, geo, canvas, nil)

	m.frame = canvas.Render()
	m.hotspots = canvas.Hotspots()
	m.diags = len(buildDiags) + len(resolveDiags) + len(renderDiags)
	if m.cursor >= len(m.hotspots) {
		m.cursor = 0
	}
	return nil
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down", "j":
			if len(m.hotspots) > 0 {
				m.cursor = (m.cursor + 1) % len(m.hotspots)
			}
		case "shift+tab", "up", "k":
			if len(m.hotspots) > 0 {
				m.cursor = (m.cursor - 1 + len(m.hotspots)) % len(m.hotspots)
			}
		case "enter":
			if len(m.hotspots) > 0 {
				a := m.hotspots[m.cursor].Action
				a.Invoke()
				m.invoked = a.ID
			}
		case "r":
			m.invoked = ""
			m.loadErr = m.reload()
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(m.frame)
	b.WriteString("\n")

	if m.loadErr != nil {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("reload failed: %v", m.loadErr)))
		b.WriteString("\n")
	}

	status := fmt.Sprintf("%d hotspots", len(m.hotspots))
	if len(m.hotspots) > 0 {
		status += fmt.Sprintf("  [%d/%d] %s", m.cursor+1, len(m.hotspots),
			StyleHighlight.Render(m.hotspots[m.cursor].Action.ID))
	}
	if m.diags > 0 {
		status += StyleWarning.Render(fmt.Sprintf("  %d diagnostics", m.diags))
	}
	b.WriteString(StyleDim.Render(status))
	b.WriteString("\n")

	if m.invoked != "" {
		b.WriteString(StyleSuccess.Render("invoked " + m.invoked))
		b.WriteString("\n")
	}

	b.WriteString(StyleDim.Render("tab/shift+tab navigate  ⏎ invoke  r reload  q quit"))
	return b.String()
}
