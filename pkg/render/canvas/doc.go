// Package canvas renders an editor scene as SVG.
//
// The drawing matches what the interactive editor shows: links as lines
// ending in an arrowhead marker whose tip touches the target box, nodes as
// rounded boxes with centred labels, the selected node highlighted and, while
// a link is being drawn, a dashed rubber band from the source to the pointer.
//
//	svg := canvas.RenderSVG(ed.Scene(), canvas.WithDetails())
//
// Use [render.ToPNG] or [render.ToPDF] for raster and print output.
//
// [render.ToPNG]: github.com/matzehuels/forcechart/pkg/render.ToPNG
// [render.ToPDF]: github.com/matzehuels/forcechart/pkg/render.ToPDF
package canvas
