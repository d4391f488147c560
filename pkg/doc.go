// Package pkg provides the core libraries for the Oracle wiki-graph engine.
//
// # Overview
//
// Oracle renders a wiki as a living map: every page is a node, every mention
// is a link, and a force simulation arranges the whole thing so related pages
// drift together. The pkg directory is organized into five main areas:
//
//  1. [graph] - Dataset types (nodes, links, alignment scores, color tables)
//  2. [force] - d3-style force simulation (links, charge, collision, axes)
//  3. [textfit] - Label fitting inside node circles
//  4. [view] - Interactive view state (modes, highlighting, camera, tooltip)
//  5. [render] - Frame serialization (SVG, JSON)
//
// # Architecture
//
// The typical data flow through Oracle:
//
//	Dataset artifact (graph.json)
//	         ↓
//	    [graph] package (decode + validate)
//	         ↓
//	    [force] package (settle node positions)
//	         ↓
//	    [view] package (highlighting, camera, interaction)
//	         ↓
//	    [render] package (SVG/JSON frames)
//
// # Quick Start
//
// Load a dataset, settle the layout, and render a frame:
//
//	import (
//	    "github.com/oakbrad/dungeonchurch-oracle/pkg/force"
//	    "github.com/oakbrad/dungeonchurch-oracle/pkg/graph"
//	    "github.com/oakbrad/dungeonchurch-oracle/pkg/render"
//	    "github.com/oakbrad/dungeonchurch-oracle/pkg/view"
//	)
//
//	// 1. Load the dataset
//	d, _ := graph.ReadDatasetFile("graph.json")
//
//	// 2. Build a view and settle the simulation
//	v := view.New(d, graph.NewColorTable(nil), force.DefaultTuning(), 1280, 800)
//	v.Settle(5000)
//
//	// 3. Highlight a node's neighborhood
//	_ = v.Pin("dragon")
//
//	// 4. Render to SVG
//	svg := render.RenderSVG(v.Frame())
//
// # Main Packages
//
// [graph] - Dataset decoding and validation. Nodes carry wiki titles,
// collection membership, and optional alignment scores; links are resolved
// against node IDs at load time so dangling references fail fast.
//
// [force] - Velocity-Verlet force simulation with alpha cooling. Named
// forces are swapped as a set when the view mode changes: connection mode
// uses link, charge, center, and collision forces; alignment mode adds axis
// forces that pull scored nodes toward their grid cell.
//
// [textfit] - Fits page titles inside node circles by searching font sizes
// and line breaks, truncating with an ellipsis when nothing fits.
//
// [view] - The interactive engine. Owns the mode state machine, pin and
// hover highlighting, camera transforms and tweens, drag interaction,
// search, and the tooltip lifecycle. Emits immutable [view.Frame] snapshots.
//
// [render] - Serializes frames to standalone SVG documents or JSON.
//
// [errors] - Coded errors with user-facing messages.
//
// [observability] - Hook interfaces (simulation, session, render) with no-op
// defaults, registered by main.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/view/...      # Specific package
//	go test -run Example        # Examples only
//
// [graph]: https://pkg.go.dev/github.com/oakbrad/dungeonchurch-oracle/pkg/graph
// [force]: https://pkg.go.dev/github.com/oakbrad/dungeonchurch-oracle/pkg/force
// [textfit]: https://pkg.go.dev/github.com/oakbrad/dungeonchurch-oracle/pkg/textfit
// [view]: https://pkg.go.dev/github.com/oakbrad/dungeonchurch-oracle/pkg/view
// [render]: https://pkg.go.dev/github.com/oakbrad/dungeonchurch-oracle/pkg/render
// [errors]: https://pkg.go.dev/github.com/oakbrad/dungeonchurch-oracle/pkg/errors
// [observability]: https://pkg.go.dev/github.com/oakbrad/dungeonchurch-oracle/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/oakbrad/dungeonchurch-oracle/pkg/buildinfo
package pkg
