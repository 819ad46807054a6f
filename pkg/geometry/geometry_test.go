package geometry

import (
	"math"
	"testing"
)

const (
	rectW = 120
	rectH = 50
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEdgeClipPointInside(t *testing.T) {
	target := Point{100, 100}
	tests := []struct {
		name   string
		source Point
	}{
		{"Center", Point{100, 100}},
		{"Offset", Point{110, 105}},
		{"NearCorner", Point{159.9, 124.9}},
		{"NearLeft", Point{40.1, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EdgeClipPoint(tt.source, target, rectW, rectH)
			if got != target {
				t.Errorf("EdgeClipPoint(%v) = %v, want target %v", tt.source, got, target)
			}
		})
	}
}

func TestEdgeClipPointSides(t *testing.T) {
	target := Point{100, 100}
	tests := []struct {
		name   string
		source Point
		want   Point
	}{
		{"Right", Point{400, 100}, Point{160, 100}},
		{"Left", Point{-200, 100}, Point{40, 100}},
		{"Below", Point{100, 300}, Point{100, 125}},
		{"Above", Point{100, -300}, Point{100, 75}},
		{"ShallowRight", Point{400, 160}, Point{160, 112}},
		{"SteepBelow", Point{700, 400}, Point{150, 125}},
		{"SteepAboveLeft", Point{-500, -200}, Point{50, 75}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EdgeClipPoint(tt.source, target, rectW, rectH)
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
				t.Errorf("EdgeClipPoint(%v) = %v, want %v", tt.source, got, tt.want)
			}
		})
	}
}

func TestEdgeClipPointOnBoundary(t *testing.T) {
	target := Point{300, 200}
	hw, hh := rectW/2.0, rectH/2.0

	for deg := 0; deg < 360; deg += 7 {
		rad := float64(deg) * math.Pi / 180
		for _, r := range []float64{61, 100, 500} {
			source := Point{target.X + r*math.Cos(rad), target.Y + r*math.Sin(rad)}
			if math.Abs(source.X-target.X) < hw && math.Abs(source.Y-target.Y) < hh {
				continue
			}
			got := EdgeClipPoint(source, target, rectW, rectH)

			onVertical := approx(math.Abs(got.X-target.X), hw) && math.Abs(got.Y-target.Y) <= hh+1e-9
			onHorizontal := approx(math.Abs(got.Y-target.Y), hh) && math.Abs(got.X-target.X) <= hw+1e-9
			if !onVertical && !onHorizontal {
				t.Errorf("deg=%d r=%v: %v is not on the rectangle boundary", deg, r, got)
			}
		}
	}
}

func TestEdgeClipPointVerticalNoNaN(t *testing.T) {
	got := EdgeClipPoint(Point{50, 0}, Point{50, 500}, rectW, rectH)
	if math.IsNaN(got.X) || math.IsNaN(got.Y) {
		t.Fatalf("vertical approach produced NaN: %v", got)
	}
	if got != (Point{50, 475}) {
		t.Errorf("got %v, want {50 475}", got)
	}
}

func TestArrowEndpoint(t *testing.T) {
	tests := []struct {
		name   string
		clip   Point
		source Point
		length float64
		want   Point
		wantOK bool
	}{
		{"PullBack", Point{160, 100}, Point{400, 100}, 16, Point{176, 100}, true},
		{"Diagonal", Point{30, 40}, Point{0, 0}, 10, Point{24, 32}, true},
		{"ExactLength", Point{16, 0}, Point{0, 0}, 16, Point{0, 0}, true},
		{"TooClose", Point{110, 100}, Point{100, 100}, 16, Point{100, 100}, false},
		{"ZeroLength", Point{5, 5}, Point{5, 5}, 0, Point{5, 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ArrowEndpoint(tt.clip, tt.source, tt.length)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
				t.Errorf("ArrowEndpoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEdgeSegmentDegenerate(t *testing.T) {
	source := Point{100, 100}
	seg := EdgeSegment(source, Point{105, 100}, rectW, rectH, 16)
	if !seg.Degenerate() {
		t.Fatalf("expected degenerate segment, got %v", seg)
	}
	if seg.From != source || seg.To != source {
		t.Errorf("degenerate segment should collapse to source, got %v", seg)
	}
}

func TestEdgeSegment(t *testing.T) {
	seg := EdgeSegment(Point{400, 100}, Point{100, 100}, rectW, rectH, 16)
	want := Segment{From: Point{400, 100}, To: Point{176, 100}}
	if seg != want {
		t.Errorf("EdgeSegment() = %v, want %v", seg, want)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Center: Point{0, 0}, W: 120, H: 50}
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{0, 0}, true},
		{Point{60, 25}, true},
		{Point{61, 0}, false},
		{Point{0, -26}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
