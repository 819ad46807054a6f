package canvas

import (
	"strings"
	"testing"

	"github.com/matzehuels/forcechart/pkg/editor"
	"github.com/matzehuels/forcechart/pkg/geometry"
)

func testScene() editor.Scene {
	return editor.Scene{
		Width: 800, Height: 600,
		NodeWidth: 120, NodeHeight: 50,
		Nodes: []editor.SceneNode{
			{ID: 0, Label: "Start", Pos: geometry.Point{X: 400, Y: 300}, Pinned: true},
			{ID: 1, Label: "A", Pos: geometry.Point{X: 100, Y: 100}, Selected: true},
		},
		Links: []editor.SceneLink{
			{Source: 0, Target: 1, Segment: geometry.Segment{From: geometry.Point{X: 400, Y: 300}, To: geometry.Point{X: 160, Y: 140}}},
		},
		Details:     "first\nsecond",
		DetailsOpen: true,
	}
}

func TestRenderSVG_Structure(t *testing.T) {
	svg := string(RenderSVG(testScene()))

	for _, want := range []string{
		`viewBox="0 0 800.00 600.00" width="800" height="600"`,
		`<marker id="arrowhead" viewBox="-0 -5 10 10" refX="10" refY="0" orient="auto" markerWidth="8" markerHeight="8">`,
		`d="M0,-5L10,0L0,5"`,
		`<line class="link" data-source="0" data-target="1" x1="400.00" y1="300.00" x2="160.00" y2="140.00" marker-end="url(#arrowhead)"/>`,
		`<g class="node" id="node-0" transform="translate(400.00,300.00)">`,
		`<g class="node selected" id="node-1" transform="translate(100.00,100.00)">`,
		`<rect x="-60.00" y="-25.00" width="120.00" height="50.00" rx="5" ry="5"/>`,
		`<text>Start</text>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %s", want)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("RenderSVG() output not closed")
	}
	if strings.Contains(svg, "temp-link\"") || strings.Contains(svg, `class="details"`) {
		t.Error("rubber band and details must be absent by default")
	}
}

func TestRenderSVG_LinksBeforeNodes(t *testing.T) {
	svg := string(RenderSVG(testScene()))
	if strings.Index(svg, `class="links"`) > strings.Index(svg, `class="nodes"`) {
		t.Error("links must be drawn underneath nodes")
	}
}

func TestRenderSVG_DegenerateLinkSkipped(t *testing.T) {
	s := testScene()
	p := geometry.Point{X: 400, Y: 300}
	s.Links = append(s.Links, editor.SceneLink{Source: 1, Target: 0, Segment: geometry.Segment{From: p, To: p}})

	svg := string(RenderSVG(s))
	if got := strings.Count(svg, `<line class="link"`); got != 1 {
		t.Errorf("drawn links = %d, want 1", got)
	}
}

func TestRenderSVG_RubberBand(t *testing.T) {
	s := testScene()
	s.Nodes[1].Source = true
	s.RubberBand = &geometry.Segment{From: geometry.Point{X: 100, Y: 100}, To: geometry.Point{X: 300, Y: 50}}

	svg := string(RenderSVG(s))
	if !strings.Contains(svg, `<line class="temp-link" x1="100.00" y1="100.00" x2="300.00" y2="50.00"/>`) {
		t.Error("rubber band missing")
	}
}

func TestRenderSVG_Options(t *testing.T) {
	tests := []struct {
		name string
		opts []SVGOption
		want []string
	}{
		{"background", []SVGOption{WithBackground("#fff")}, []string{`<rect width="100%" height="100%" fill="#fff"/>`}},
		{"pinned", []SVGOption{WithPinned()}, []string{`class="node pinned" id="node-0"`}},
		{"details", []SVGOption{WithDetails()}, []string{`class="details"`, `<text class="title" x="10.00" y="26.00">A</text>`, ">first<", ">second<"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(RenderSVG(testScene(), tt.opts...))
			for _, want := range tt.want {
				if !strings.Contains(svg, want) {
					t.Errorf("missing %s", want)
				}
			}
		})
	}
}

func TestRenderSVG_EscapesLabels(t *testing.T) {
	s := testScene()
	s.Nodes[0].Label = "<a&b>"

	svg := string(RenderSVG(s))
	if !strings.Contains(svg, "<text>&lt;a&amp;b&gt;</text>") {
		t.Error("label not escaped")
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		label string
		width float64
		want  string
	}{
		{"Start", 120, "Start"},
		{"Check all the inputs", 120, "Check all t.."},
		{"Überprüfungsschritt", 120, "Überprüfung.."},
		{"abcdef", 1, "a.."},
	}

	for _, tt := range tests {
		if got := truncateLabel(tt.label, tt.width); got != tt.want {
			t.Errorf("truncateLabel(%q, %v) = %q, want %q", tt.label, tt.width, got, tt.want)
		}
	}
}

func TestRenderSVG_FromEditor(t *testing.T) {
	e := editor.New(editor.Options{Width: 640, Height: 480})
	if err := e.Restore(t.Context()); err != nil {
		t.Fatal(err)
	}
	svg := string(RenderSVG(e.Scene()))
	if !strings.Contains(svg, `transform="translate(320.00,240.00)"`) {
		t.Error("seed node not drawn at the canvas centre")
	}
}
