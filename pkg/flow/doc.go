// Package flow provides the flowchart graph model.
//
// A [Graph] owns an ordered sequence of [Node] values and a set of directed
// [Edge] values. Edges refer to their endpoints by integer id and are resolved
// through the graph's id index, so deleting a node can never leave a dangling
// pointer behind: [Graph.RemoveNode] cascades to every edge touching the node.
//
// # Identity
//
// Node ids are assigned as max(existing ids)+1, or 0 for an empty graph. The
// scheme depends only on current membership, so deleting the highest-id node
// and adding a new one reuses that id:
//
//	g := flow.New()
//	a, _ := g.AddNode("A", "", geometry.Point{})   // id 0
//	b, _ := g.AddNode("B", "", geometry.Point{})   // id 1
//	g.RemoveNode(b.ID)
//	c, _ := g.AddNode("C", "", geometry.Point{})   // id 1 again
//
// # Edges
//
// Self-loops are rejected with [ErrSelfLoop]. Adding an edge that already
// exists is a no-op: [Graph.AddEdge] reports added=false without an error.
//
// # Pinning
//
// A node whose FX/FY are non-nil is pinned; the force layout keeps it at that
// position while it still exerts forces on its neighbours.
//
// # Concurrency
//
// Graph is not safe for concurrent use. The editor mutates it from a single
// event loop.
package flow
