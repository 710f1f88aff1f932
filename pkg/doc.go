// Package pkg provides the core libraries for LoomUI server-driven layout.
//
// # Overview
//
// LoomUI turns JSON screen documents into concrete geometry and rendered
// output. A document describes the views of one screen and how their edges
// anchor to each other; the libraries here parse it, resolve the anchor
// constraints against a viewport, and dispatch the placed views to a
// rendering surface.
//
// # Packages
//
//   - errors: structured error codes and per-view diagnostics
//   - document: document parsing, reference table, entity model
//   - layout: constraint graph, resolver, geometry snapshots
//   - render: capability registry, defaults, terminal and SVG surfaces
//   - pipeline: the parse → layout → render runner with caching
//   - cache: file, redis, and null cache backends with content keys
//   - store: screen document storage (memory, file, mongo)
//   - config: TOML deployment configuration
//   - observability: optional instrumentation hooks
//   - buildinfo: build-time version information
package pkg
