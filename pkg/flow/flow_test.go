package flow

import (
	"errors"
	"math"
	"testing"

	"github.com/matzehuels/forcechart/pkg/geometry"
)

func mustAdd(t *testing.T, g *Graph, label string) *Node {
	t.Helper()
	n, err := g.AddNode(label, "", geometry.Point{X: 10, Y: 10})
	if err != nil {
		t.Fatalf("AddNode(%q): %v", label, err)
	}
	return n
}

func TestNextIDEmpty(t *testing.T) {
	g := New()
	if got := g.NextID(); got != 0 {
		t.Errorf("NextID() on empty graph = %d, want 0", got)
	}
	n := mustAdd(t, g, "first")
	if n.ID != 0 {
		t.Errorf("first node id = %d, want 0", n.ID)
	}
}

func TestNextIDReusesDeletedMax(t *testing.T) {
	g := New()
	mustAdd(t, g, "a")
	mustAdd(t, g, "b")
	c := mustAdd(t, g, "c")
	if c.ID != 2 {
		t.Fatalf("third node id = %d, want 2", c.ID)
	}

	g.RemoveNode(2)
	d := mustAdd(t, g, "d")
	if d.ID != 2 {
		t.Errorf("id after deleting max = %d, want 2 (max+1 over remaining)", d.ID)
	}
}

func TestNextIDWithGaps(t *testing.T) {
	g := New()
	for _, id := range []int{4, 1, 9} {
		if err := g.InsertNode(&Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	if got := g.NextID(); got != 10 {
		t.Errorf("NextID() = %d, want 10", got)
	}
}

func TestAddNodePinsAtPosition(t *testing.T) {
	g := New()
	n, err := g.AddNode("A", "details", geometry.Point{X: 100, Y: 150})
	if err != nil {
		t.Fatal(err)
	}
	if !n.Pinned() || *n.FX != 100 || *n.FY != 150 {
		t.Errorf("node should be pinned at (100,150), got fx=%v fy=%v", n.FX, n.FY)
	}
	if n.X != 100 || n.Y != 150 {
		t.Errorf("position = (%v,%v), want (100,150)", n.X, n.Y)
	}
}

func TestInsertNodeErrors(t *testing.T) {
	g := New()
	if err := g.InsertNode(&Node{ID: 1}); err != nil {
		t.Fatal(err)
	}
	if err := g.InsertNode(&Node{ID: 1}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("duplicate insert err = %v, want ErrDuplicateNodeID", err)
	}
	if err := g.InsertNode(&Node{ID: -1}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("negative id err = %v, want ErrInvalidNodeID", err)
	}
}

func TestAddEdge(t *testing.T) {
	tests := []struct {
		name      string
		source    int
		target    int
		wantAdded bool
		wantErr   error
	}{
		{"New", 0, 1, true, nil},
		{"Reverse", 1, 0, true, nil},
		{"SelfLoop", 0, 0, false, ErrSelfLoop},
		{"UnknownSource", 7, 0, false, ErrUnknownSourceNode},
		{"UnknownTarget", 0, 7, false, ErrUnknownTargetNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			mustAdd(t, g, "a")
			mustAdd(t, g, "b")
			added, err := g.AddEdge(tt.source, tt.target)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if added != tt.wantAdded {
				t.Errorf("added = %v, want %v", added, tt.wantAdded)
			}
			if tt.wantErr != nil && g.EdgeCount() != 0 {
				t.Errorf("failed AddEdge changed the edge set: %v", g.Edges())
			}
		})
	}
}

func TestAddEdgeIdempotent(t *testing.T) {
	g := New()
	mustAdd(t, g, "a")
	mustAdd(t, g, "b")

	if added, err := g.AddEdge(0, 1); err != nil || !added {
		t.Fatalf("first AddEdge = %v, %v", added, err)
	}
	before := g.Edges()

	added, err := g.AddEdge(0, 1)
	if err != nil {
		t.Fatalf("duplicate AddEdge error: %v", err)
	}
	if added {
		t.Error("duplicate AddEdge reported added=true")
	}
	after := g.Edges()
	if len(after) != len(before) || after[0] != before[0] {
		t.Errorf("edge set changed: before %v, after %v", before, after)
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	g := New()
	for _, l := range []string{"a", "b", "c", "d"} {
		mustAdd(t, g, l)
	}
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 1}, {2, 3}, {3, 0}, {0, 2}} {
		if _, err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}

	removed, ok := g.RemoveNode(1)
	if !ok {
		t.Fatal("RemoveNode(1) reported missing node")
	}
	if removed != 3 {
		t.Errorf("removed edges = %d, want 3", removed)
	}

	want := []Edge{{2, 3}, {3, 0}, {0, 2}}
	got := g.Edges()
	if len(got) != len(want) {
		t.Fatalf("edges = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("edge %d = %v, want %v", i, got[i], want[i])
		}
	}
	if _, ok := g.Node(1); ok {
		t.Error("node 1 still present after removal")
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}
}

func TestRemoveNodeMissing(t *testing.T) {
	g := New()
	if _, ok := g.RemoveNode(3); ok {
		t.Error("RemoveNode on empty graph reported ok")
	}
}

func TestSeed(t *testing.T) {
	g := Seed(geometry.Point{X: 400, Y: 300})
	if g.NodeCount() != 1 || g.EdgeCount() != 0 {
		t.Fatalf("seed graph has %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	n, ok := g.Node(0)
	if !ok {
		t.Fatal("seed node 0 missing")
	}
	if n.Label != SeedLabel || n.Details != SeedDetails {
		t.Errorf("seed node = %q/%q", n.Label, n.Details)
	}
	if !n.Pinned() || *n.FX != 400 || *n.FY != 300 {
		t.Error("seed node should be pinned at canvas centre")
	}
}

func TestUnpinAll(t *testing.T) {
	g := New()
	mustAdd(t, g, "a")
	mustAdd(t, g, "b")
	g.UnpinAll()
	for _, n := range g.Nodes() {
		if n.Pinned() {
			t.Errorf("node %d still pinned", n.ID)
		}
	}
}

func TestDegree(t *testing.T) {
	g := New()
	mustAdd(t, g, "a")
	mustAdd(t, g, "b")
	mustAdd(t, g, "c")
	g.AddEdge(0, 1)
	g.AddEdge(2, 0)
	if got := g.Degree(0); got != 2 {
		t.Errorf("Degree(0) = %d, want 2", got)
	}
	if got := g.Degree(1); got != 1 {
		t.Errorf("Degree(1) = %d, want 1", got)
	}
}

func TestPlaced(t *testing.T) {
	n := &Node{}
	if !n.Placed() {
		t.Error("zero position should count as placed")
	}
	n.X = math.NaN()
	if n.Placed() {
		t.Error("NaN position should not count as placed")
	}
}
