package editor

import (
	"slices"

	"github.com/matzehuels/forcechart/pkg/geometry"
)

// Scene is an immutable snapshot of everything a renderer needs.
type Scene struct {
	Width, Height         float64
	NodeWidth, NodeHeight float64

	Nodes []SceneNode
	Links []SceneLink

	// RubberBand is the line from the link source to the pointer while
	// linking, nil otherwise.
	RubberBand *geometry.Segment

	Menu    Menu
	MenuPos geometry.Point

	// Details holds the selected node's details when the panel is open.
	Details     string
	DetailsOpen bool

	Mode     Mode
	ReadOnly bool
}

// SceneNode is a node as drawn.
type SceneNode struct {
	ID       int
	Label    string
	Pos      geometry.Point
	Pinned   bool
	Selected bool
	Source   bool // source of the link being drawn
}

// SceneLink is an edge as drawn, already clipped to the target's body and
// shortened for the arrowhead.
type SceneLink struct {
	Source, Target int
	Segment        geometry.Segment
}

// Scene returns a snapshot of the current state.
func (e *Editor) Scene() Scene {
	s := Scene{
		Width:      e.width,
		Height:     e.height,
		NodeWidth:  e.opts.NodeWidth,
		NodeHeight: e.opts.NodeHeight,
		Menu:       e.menu,
		MenuPos:    e.menuPos,
		Mode:       e.mode,
		ReadOnly:   e.readOnly,
	}

	linking := e.mode == ModeLinking
	for _, n := range e.graph.Nodes() {
		s.Nodes = append(s.Nodes, SceneNode{
			ID:       n.ID,
			Label:    n.Label,
			Pos:      n.Pos(),
			Pinned:   n.Pinned(),
			Selected: n.ID == e.selected,
			Source:   linking && n.ID == e.linkSource,
		})
	}

	if len(e.segments) != e.graph.EdgeCount() {
		e.refreshSegments()
	}
	segments := slices.Clone(e.segments)
	for i, edge := range e.graph.Edges() {
		s.Links = append(s.Links, SceneLink{Source: edge.Source, Target: edge.Target, Segment: segments[i]})
	}

	if linking {
		if src, ok := e.graph.Node(e.linkSource); ok {
			s.RubberBand = &geometry.Segment{From: src.Pos(), To: e.pointer}
		}
	}
	if e.detailsOpen {
		if n, ok := e.graph.Node(e.selected); ok {
			s.Details = n.Details
			s.DetailsOpen = true
		}
	}
	return s
}
