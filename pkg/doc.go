// Package pkg provides the core libraries for the forcechart flowchart editor.
//
// # Overview
//
// Forcechart keeps a small directed graph of labelled boxes, lays it out with
// a force simulation and lets the user edit it with pointer gestures. The
// packages are independent of any UI toolkit: a host feeds input events to
// the editor and draws the scenes it returns.
//
// # Architecture
//
// The data flow through forcechart:
//
//	pointer/key events
//	         ↓
//	    [editor] package (interaction state machine, commands)
//	         ↓                      ↘
//	    [force] package (layout)    [store] package (persistence)
//	         ↓
//	    [editor.Scene] snapshot
//	         ↓
//	    [render/canvas] or [render/nodelink] (SVG, PNG, PDF, DOT)
//
// # Quick Start
//
// Seed a board, add a linked node and draw it:
//
//	ed := editor.New(editor.Options{Store: store.NewMemoryStore()})
//	_ = ed.Restore(ctx)                      // seeds the "Start" node
//	_ = ed.Dispatch(ctx, editor.Event{Kind: editor.ContextMenu, Pos: geometry.Point{X: 200, Y: 120}})
//	_, _ = ed.AddNode(ctx, "Review", "")
//	ed.Settle(1000)
//	svg := canvas.RenderSVG(ed.Scene())
//
// # Main Packages
//
// [geometry] - Points, rectangles and the edge clipping that ends an arrow
// on the border of its target box.
//
// [flow] - The graph model: nodes with positions and optional pins, directed
// links without duplicates or self-loops.
//
// [force] - A velocity-Verlet simulation with charge, link and centre forces
// and an alpha schedule that cools to rest.
//
// [graph] - The JSON document format used for storage, export and import.
//
// [editor] - Selection, dragging, linking, context menus and the details
// panel, driven by toolkit-independent events.
//
// [store] - Document persistence: file, memory, null, Redis and MongoDB
// backends behind one interface.
//
// [remote] - Fetches shared documents over HTTP for read-only viewing.
//
// [render/canvas] - Draws an editor scene as SVG.
//
// [render/nodelink] - Converts a board to Graphviz DOT and renders it.
//
// [observability] - Hooks for layout, storage and HTTP events.
//
// [errors] - Error codes, user-facing messages and input validation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/editor/...             # Specific package
//	go test -run Example                 # Examples only
//
// [geometry]: https://pkg.go.dev/github.com/matzehuels/forcechart/pkg/geometry
// [flow]: https://pkg.go.dev/github.com/matzehuels/forcechart/pkg/flow
// [force]: https://pkg.go.dev/github.com/matzehuels/forcechart/pkg/force
// [graph]: https://pkg.go.dev/github.com/matzehuels/forcechart/pkg/graph
// [editor]: https://pkg.go.dev/github.com/matzehuels/forcechart/pkg/editor
// [editor.Scene]: https://pkg.go.dev/github.com/matzehuels/forcechart/pkg/editor#Scene
// [store]: https://pkg.go.dev/github.com/matzehuels/forcechart/pkg/store
// [remote]: https://pkg.go.dev/github.com/matzehuels/forcechart/pkg/remote
// [render/canvas]: https://pkg.go.dev/github.com/matzehuels/forcechart/pkg/render/canvas
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/forcechart/pkg/render/nodelink
// [observability]: https://pkg.go.dev/github.com/matzehuels/forcechart/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/forcechart/pkg/errors
package pkg
