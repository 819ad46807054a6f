// Package nodelink renders flowcharts as Graphviz node-link diagrams.
//
// # Overview
//
// [ToDOT] turns a graph into DOT source in which every placed node keeps the
// position the force layout gave it (pos="x,y!"), so neato reproduces the
// editor's arrangement instead of computing its own. Nodes are fixed-size
// rounded boxes matching the editor's node geometry.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// Set [Options].Relayout to drop the positions and let neato lay the graph
// out from scratch.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
// No external Graphviz installation is needed.
package nodelink
