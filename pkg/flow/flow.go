package flow

import (
	"errors"
	"math"
	"slices"

	"github.com/matzehuels/forcechart/pkg/geometry"
)

var (
	// ErrDuplicateNodeID is returned by [Graph.InsertNode] when a node with
	// the same id already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidNodeID is returned by [Graph.InsertNode] for negative ids.
	ErrInvalidNodeID = errors.New("node ID must not be negative")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the source
	// node does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the target
	// node does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrSelfLoop is returned by [Graph.AddEdge] when source and target are
	// the same node.
	ErrSelfLoop = errors.New("self-loop edges are not allowed")
)

// SeedLabel and SeedDetails describe the node a fresh canvas starts with.
const (
	SeedLabel   = "Start"
	SeedDetails = "Right-click the background to add a node."
)

// Node is a flowchart box.
//
// X and Y hold the current position; NaN means the node has not been placed
// yet and the layout engine will choose a position. VX and VY are owned by the
// layout engine and are never persisted.
type Node struct {
	ID      int
	Label   string
	Details string

	X, Y   float64
	FX, FY *float64

	VX, VY float64
}

// Pos returns the node's current position.
func (n *Node) Pos() geometry.Point { return geometry.Point{X: n.X, Y: n.Y} }

// Pinned reports whether the node has a fixed position.
func (n *Node) Pinned() bool { return n.FX != nil && n.FY != nil }

// Pin fixes the node at p.
func (n *Node) Pin(p geometry.Point) {
	x, y := p.X, p.Y
	n.FX, n.FY = &x, &y
}

// Unpin releases the node so the layout engine may move it.
func (n *Node) Unpin() { n.FX, n.FY = nil, nil }

// Placed reports whether the node has a finite position.
func (n *Node) Placed() bool {
	return !math.IsNaN(n.X) && !math.IsNaN(n.Y) && !math.IsInf(n.X, 0) && !math.IsInf(n.Y, 0)
}

// Edge is a directed link between two nodes, referenced by id.
type Edge struct {
	Source int
	Target int
}

// Touches reports whether the edge has id as an endpoint.
func (e Edge) Touches(id int) bool { return e.Source == id || e.Target == id }

// Graph is the node and edge collection of a flowchart.
//
// The zero value is not usable; use [New] or [Seed].
type Graph struct {
	nodes []*Node
	index map[int]*Node
	edges []Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{index: make(map[int]*Node)}
}

// Seed creates the graph a fresh canvas starts with: a single pinned "Start"
// node at center.
func Seed(center geometry.Point) *Graph {
	g := New()
	n := &Node{ID: 0, Label: SeedLabel, Details: SeedDetails, X: center.X, Y: center.Y}
	n.Pin(center)
	_ = g.InsertNode(n)
	return g
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns the nodes in insertion order. The slice is a copy but the
// nodes are shared; mutating a node mutates the graph.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Edges returns a copy of the edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Node returns the node with the given id.
func (g *Graph) Node(id int) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// NextID returns the id the next created node will receive: max(ids)+1, or 0
// for an empty graph.
func (g *Graph) NextID() int {
	if len(g.nodes) == 0 {
		return 0
	}
	next := g.nodes[0].ID
	for _, n := range g.nodes[1:] {
		next = max(next, n.ID)
	}
	return next + 1
}

// AddNode creates a node at pos, pinned there, and returns it.
func (g *Graph) AddNode(label, details string, pos geometry.Point) (*Node, error) {
	n := &Node{ID: g.NextID(), Label: label, Details: details, X: pos.X, Y: pos.Y}
	n.Pin(pos)
	if err := g.InsertNode(n); err != nil {
		return nil, err
	}
	return n, nil
}

// InsertNode adds a fully formed node, keeping its id. It is used when
// rebuilding a graph from a stored document.
func (g *Graph) InsertNode(n *Node) error {
	if n.ID < 0 {
		return ErrInvalidNodeID
	}
	if _, exists := g.index[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	g.nodes = append(g.nodes, n)
	g.index[n.ID] = n
	return nil
}

// RemoveNode deletes the node with the given id together with every edge
// where it is source or target. It returns the number of edges removed and
// whether the node existed.
func (g *Graph) RemoveNode(id int) (removedEdges int, ok bool) {
	if _, ok := g.index[id]; !ok {
		return 0, false
	}
	delete(g.index, id)
	g.nodes = slices.DeleteFunc(g.nodes, func(n *Node) bool { return n.ID == id })

	before := len(g.edges)
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool { return e.Touches(id) })
	return before - len(g.edges), true
}

// HasEdge reports whether the ordered edge source→target exists.
func (g *Graph) HasEdge(source, target int) bool {
	return slices.Contains(g.edges, Edge{Source: source, Target: target})
}

// AddEdge appends the edge source→target. Adding an existing edge is a no-op
// and reports added=false with a nil error.
func (g *Graph) AddEdge(source, target int) (added bool, err error) {
	if _, ok := g.index[source]; !ok {
		return false, ErrUnknownSourceNode
	}
	if _, ok := g.index[target]; !ok {
		return false, ErrUnknownTargetNode
	}
	if source == target {
		return false, ErrSelfLoop
	}
	if g.HasEdge(source, target) {
		return false, nil
	}
	g.edges = append(g.edges, Edge{Source: source, Target: target})
	return true, nil
}

// Degree returns the number of edges touching id.
func (g *Graph) Degree(id int) int {
	d := 0
	for _, e := range g.edges {
		if e.Source == id {
			d++
		}
		if e.Target == id {
			d++
		}
	}
	return d
}

// UnpinAll releases every pinned node.
func (g *Graph) UnpinAll() {
	for _, n := range g.nodes {
		n.Unpin()
	}
}
