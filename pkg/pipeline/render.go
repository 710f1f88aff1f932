package pipeline

import (
	"context"
	"time"

	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/errors"
	"github.com/loomui/loomui/pkg/layout"
	"github.com/loomui/loomui/pkg/observability"
	"github.com/loomui/loomui/pkg/render/svg"
	"github.com/loomui/loomui/pkg/render/term"
)

// RenderSnapshot renders a resolved layout in the requested format.
//
// The term and svg formats dispatch every placed view to a surface and
// return its output; the json format serializes the snapshot itself and
// produces no render diagnostics.
func RenderSnapshot(ctx context.Context, screen *document.Screen, snap layout.Snapshot, opts Options) ([]byte, errors.Diagnostics, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, nil, err
	}

	observability.Pipeline().OnRenderStart(ctx, opts.ScreenID, opts.Format)
	start := time.Now()

	artifact, diags, err := renderFormat(screen, snap, opts)

	observability.Pipeline().OnRenderComplete(ctx, opts.ScreenID, opts.Format, time.Since(start), err)
	return artifact, diags, err
}

func renderFormat(screen *document.Screen, snap layout.Snapshot, opts Options) ([]byte, errors.Diagnostics, error) {
	geo := snap.Geometry()

	switch opts.Format {
	case FormatTerm:
		canvas := term.NewCanvas(geo.Viewport)
		diags := opts.Registry.DispatchScreen(screen, geo, canvas, opts.Sink)
		return []byte(canvas.Render()), diags, nil

	case FormatSVG:
		surface := svg.New(geo.Viewport)
		diags := opts.Registry.DispatchScreen(screen, geo, surface, opts.Sink)
		return surface.Bytes(), diags, nil

	case FormatJSON:
		data, err := layout.MarshalSnapshot(snap)
		return data, nil, err

	default:
		return nil, nil, ValidateFormat(opts.Format)
	}
}
