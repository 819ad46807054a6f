// Package geometry computes where flowchart edges meet node bodies.
//
// Nodes are drawn as axis-aligned rectangles centred on their position. An
// edge is drawn from the centre of its source node toward the centre of its
// target node, but it must stop at the target's perimeter and leave room for
// the arrowhead marker:
//
//	clip := geometry.EdgeClipPoint(src, dst, 120, 50)
//	end, ok := geometry.ArrowEndpoint(clip, src, 16)
//
// [EdgeSegment] combines both steps and collapses degenerate edges (overlapping
// or adjacent nodes) to a zero-length segment at the source.
//
// All functions are pure and safe for concurrent use.
package geometry
