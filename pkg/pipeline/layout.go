package pipeline

import (
	"context"
	"time"

	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/layout"
	"github.com/loomui/loomui/pkg/observability"
)

// ComputeLayout builds the constraint graph for a screen and resolves it
// against the options' viewport. Build and resolve diagnostics are merged
// into the returned snapshot.
func ComputeLayout(ctx context.Context, screen *document.Screen, opts Options) layout.Snapshot {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	observability.Pipeline().OnLayoutStart(ctx, opts.ScreenID, len(screen.Entities))
	start := time.Now()

	graph, buildDiags := layout.BuildGraph(screen)
	geo, resolveDiags := layout.Resolve(graph, opts.Viewport(), opts.Registry)
	snap := layout.NewSnapshot(geo, buildDiags.Merge(resolveDiags))

	observability.Pipeline().OnLayoutComplete(ctx, opts.ScreenID, len(snap.Diagnostics), time.Since(start), nil)
	return snap
}
