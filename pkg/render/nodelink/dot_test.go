package nodelink

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/forcechart/pkg/flow"
	"github.com/matzehuels/forcechart/pkg/geometry"
)

func testGraph(t *testing.T) *flow.Graph {
	t.Helper()
	g := flow.Seed(geometry.Point{X: 400, Y: 300})
	a, err := g.AddNode("A", "checks \"inputs\"", geometry.Point{X: 100, Y: 100})
	if err != nil {
		t.Fatal(err)
	}
	a.Unpin()
	if _, err := g.AddEdge(0, a.ID); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{})

	for _, want := range []string{
		"digraph G",
		"layout=neato;",
		"fixedsize=true, width=1.6667, height=0.6944",
		`"0" [label="Start", tooltip="Right-click the background to add a node.", pos="5.5556,-4.1667!", penwidth=2];`,
		`"1" [label="A", tooltip="checks \"inputs\"", pos="1.3889,-1.3889!"];`,
		`"0" -> "1";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s\n%s", want, dot)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{Detailed: true})

	if !strings.Contains(dot, `label="A\nchecks \"inputs\""`) {
		t.Errorf("ToDOT() detailed output missing details:\n%s", dot)
	}
	if !strings.Contains(dot, "fixedsize=false") {
		t.Error("detailed boxes must grow with their text")
	}
}

func TestToDOT_Relayout(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{Relayout: true})
	if strings.Contains(dot, "pos=") {
		t.Errorf("ToDOT() relayout output has positions:\n%s", dot)
	}
}

func TestToDOT_UnplacedNode(t *testing.T) {
	g := flow.New()
	if err := g.InsertNode(&flow.Node{ID: 3, Label: "loose", X: math.NaN(), Y: math.NaN()}); err != nil {
		t.Fatal(err)
	}
	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, `"3" [label="loose"];`) {
		t.Errorf("unplaced node should have no pos:\n%s", dot)
	}
}

func TestToDOT_NodeSize(t *testing.T) {
	dot := ToDOT(flow.New(), Options{NodeWidth: 144, NodeHeight: 72})
	if !strings.Contains(dot, "width=2.0000, height=1.0000") {
		t.Errorf("custom node size not applied:\n%s", dot)
	}
}

func TestInches(t *testing.T) {
	tests := []struct {
		px   float64
		want string
	}{
		{0, "0.0000"},
		{72, "1.0000"},
		{-36, "-0.5000"},
		{-0.001, "0.0000"},
	}
	for _, tt := range tests {
		if got := inches(tt.px); got != tt.want {
			t.Errorf("inches(%v) = %q, want %q", tt.px, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testGraph(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
	if !strings.Contains(string(svg), "Start") {
		t.Error("RenderSVG() output missing node label")
	}
}

func TestRenderPNG(t *testing.T) {
	png, err := RenderPNG(context.Background(), `digraph G { a -> b; }`)
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("RenderPNG() output is not a PNG")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
