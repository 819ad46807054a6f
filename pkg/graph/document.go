package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/matzehuels/forcechart/pkg/errors"
	"github.com/matzehuels/forcechart/pkg/flow"
)

// =============================================================================
// Constants
// =============================================================================

// StorageKey is the key under which the editor persists its document.
const StorageKey = "d3-flowchart-data"

// DefaultExportName is the file name used by export when none is given.
const DefaultExportName = "flowchart-data.json"

// =============================================================================
// Document - Flowchart Serialization
// =============================================================================

// Document is the canonical serialization format for flowcharts.
type Document struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Node is a serialized flowchart node. Nil coordinates mean "not placed"
// (X, Y) or "not pinned" (FX, FY).
type Node struct {
	ID      int      `json:"id"`
	Label   string   `json:"label"`
	Details string   `json:"details"`
	X       *float64 `json:"x"`
	Y       *float64 `json:"y"`
	FX      *float64 `json:"fx,omitempty"`
	FY      *float64 `json:"fy,omitempty"`
}

// Link is a serialized directed edge between two node ids.
type Link struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// =============================================================================
// flow.Graph ↔ Document Conversion
// =============================================================================

// Serialize converts g to its wire form, preserving node and edge order.
func Serialize(g *flow.Graph) Document {
	nodes := g.Nodes()
	edges := g.Edges()

	doc := Document{
		Nodes: make([]Node, len(nodes)),
		Links: make([]Link, len(edges)),
	}
	for i, n := range nodes {
		doc.Nodes[i] = Node{
			ID:      n.ID,
			Label:   n.Label,
			Details: n.Details,
			X:       finite(n.X),
			Y:       finite(n.Y),
			FX:      clone(n.FX),
			FY:      clone(n.FY),
		}
	}
	for i, e := range edges {
		doc.Links[i] = Link{Source: e.Source, Target: e.Target}
	}
	return doc
}

// Deserialize builds a fresh graph from doc. On any violation it returns an
// ErrCodeInvalidDocument error and no graph.
func Deserialize(doc Document) (*flow.Graph, error) {
	g := flow.New()
	for _, nd := range doc.Nodes {
		n := &flow.Node{
			ID:      nd.ID,
			Label:   nd.Label,
			Details: nd.Details,
			X:       orNaN(nd.X),
			Y:       orNaN(nd.Y),
			FX:      clone(nd.FX),
			FY:      clone(nd.FY),
		}
		if err := g.InsertNode(n); err != nil {
			return nil, errors.InvalidDocument(fmt.Errorf("node %d: %w", nd.ID, err))
		}
	}
	for _, l := range doc.Links {
		added, err := g.AddEdge(l.Source, l.Target)
		if err != nil {
			return nil, errors.InvalidDocument(fmt.Errorf("invalid link found: %d -> %d: %w", l.Source, l.Target, err))
		}
		if !added {
			return nil, errors.InvalidDocument(fmt.Errorf("duplicate link: %d -> %d", l.Source, l.Target))
		}
	}
	return g, nil
}

// =============================================================================
// Structural Validation
// =============================================================================

// rawDocument defers decoding so that missing and non-array members can be
// told apart from empty arrays.
type rawDocument struct {
	Nodes json.RawMessage `json:"nodes"`
	Links json.RawMessage `json:"links"`
}

// wireNode mirrors Node with a nullable id so that a missing id is an error
// instead of a silent zero.
type wireNode struct {
	ID      *int     `json:"id"`
	Label   string   `json:"label"`
	Details string   `json:"details"`
	X       *float64 `json:"x"`
	Y       *float64 `json:"y"`
	FX      *float64 `json:"fx"`
	FY      *float64 `json:"fy"`
}

// Parse decodes data into a Document, checking that both members are arrays
// and every node carries an id. It does not resolve links; see [Deserialize].
func Parse(data []byte) (Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, errors.InvalidDocument(fmt.Errorf("decode: %w", err))
	}
	if !isArray(raw.Nodes) {
		return Document{}, errors.InvalidDocument(fmt.Errorf("invalid data structure: \"nodes\" must be an array"))
	}
	if !isArray(raw.Links) {
		return Document{}, errors.InvalidDocument(fmt.Errorf("invalid data structure: \"links\" must be an array"))
	}

	var nodes []wireNode
	if err := json.Unmarshal(raw.Nodes, &nodes); err != nil {
		return Document{}, errors.InvalidDocument(fmt.Errorf("decode nodes: %w", err))
	}
	var links []Link
	if err := json.Unmarshal(raw.Links, &links); err != nil {
		return Document{}, errors.InvalidDocument(fmt.Errorf("decode links: %w", err))
	}

	doc := Document{Nodes: make([]Node, len(nodes)), Links: links}
	for i, wn := range nodes {
		if wn.ID == nil {
			return Document{}, errors.InvalidDocument(fmt.Errorf("node at index %d has no id", i))
		}
		doc.Nodes[i] = Node{
			ID:      *wn.ID,
			Label:   wn.Label,
			Details: wn.Details,
			X:       wn.X,
			Y:       wn.Y,
			FX:      wn.FX,
			FY:      wn.FY,
		}
	}
	if doc.Links == nil {
		doc.Links = []Link{}
	}
	return doc, nil
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// =============================================================================
// Internal Helpers
// =============================================================================

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func orNaN(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func clone(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
