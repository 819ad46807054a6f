package geometry

import "math"

// Point is a position in canvas coordinates.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Len returns the Euclidean length of p viewed as a vector.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Segment is a drawn line from From to To.
type Segment struct {
	From, To Point
}

// Degenerate reports whether the segment has zero length.
func (s Segment) Degenerate() bool { return s.From == s.To }

// Rect is an axis-aligned rectangle described by its centre and size.
type Rect struct {
	Center Point
	W, H   float64
}

// Contains reports whether p lies inside r or on its border.
func (r Rect) Contains(p Point) bool {
	return math.Abs(p.X-r.Center.X) <= r.W/2 && math.Abs(p.Y-r.Center.Y) <= r.H/2
}

// EdgeClipPoint returns the point where the line from source to target crosses
// the border of the rectW×rectH rectangle centred at target.
//
// When source lies strictly inside that rectangle there is no meaningful
// crossing and target is returned unchanged. A vertical approach (dx == 0) is
// resolved as a top/bottom crossing without dividing by zero.
func EdgeClipPoint(source, target Point, rectW, rectH float64) Point {
	hw, hh := rectW/2, rectH/2
	cx, cy := target.X, target.Y
	dx, dy := source.X-cx, source.Y-cy

	if math.Abs(dx) < hw && math.Abs(dy) < hh {
		return target
	}

	if dx == 0 {
		if dy > 0 {
			return Point{cx, cy + hh}
		}
		return Point{cx, cy - hh}
	}

	slope := dy / dx
	if math.Abs(slope) < hh/hw {
		// left or right side
		if dx > 0 {
			return Point{cx + hw, cy + slope*hw}
		}
		return Point{cx - hw, cy - slope*hw}
	}

	// top or bottom side
	if dy > 0 {
		return Point{cx + hh/slope, cy + hh}
	}
	return Point{cx - hh/slope, cy - hh}
}

// ArrowEndpoint pulls clip back toward source by arrowLength along the
// source→clip direction, so a line ending there leaves room for an arrowhead
// whose tip touches clip.
//
// When source is closer to clip than arrowLength the edge is degenerate and
// ArrowEndpoint returns (source, false).
func ArrowEndpoint(clip, source Point, arrowLength float64) (Point, bool) {
	d := clip.Sub(source)
	dist := d.Len()
	if dist < arrowLength {
		return source, false
	}
	if dist == 0 {
		return clip, true
	}
	return Point{
		X: clip.X - d.X/dist*arrowLength,
		Y: clip.Y - d.Y/dist*arrowLength,
	}, true
}

// EdgeSegment computes the drawn segment for an edge between two node centres.
// Degenerate edges collapse to a zero-length segment at source rather than
// producing a reversed arrow.
func EdgeSegment(source, target Point, rectW, rectH, arrowLength float64) Segment {
	clip := EdgeClipPoint(source, target, rectW, rectH)
	end, ok := ArrowEndpoint(clip, source, arrowLength)
	if !ok {
		return Segment{From: source, To: source}
	}
	return Segment{From: source, To: end}
}
