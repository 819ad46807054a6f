// Package render turns flowcharts into static images.
//
// # Overview
//
// The editor keeps its state in memory and draws it on a terminal. This
// package and its subpackages produce files from the same state:
//
//   - Canvas drawings mirroring the interactive editor (in [canvas])
//   - Graphviz diagrams from the persisted document (in [nodelink])
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg):
//
//	svg := canvas.RenderSVG(ed.Scene())
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Canvas
//
// [canvas] renders an [editor.Scene]: rounded node boxes, arrowed links
// clipped to the target box, the selection and the link being drawn.
//
// # Node-Link Diagrams
//
// [nodelink] emits Graphviz DOT with every node pinned at its layout
// position and renders it in-process with neato:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [canvas]: github.com/matzehuels/forcechart/pkg/render/canvas
// [nodelink]: github.com/matzehuels/forcechart/pkg/render/nodelink
// [editor.Scene]: github.com/matzehuels/forcechart/pkg/editor.Scene
package render
