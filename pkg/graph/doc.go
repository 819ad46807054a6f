// Package graph provides the wire format for flowcharts.
//
// This package defines the canonical JSON document used for persisted editor
// state, exported files and read-only remote boards. It sits at the
// serialization boundary between the in-memory [flow.Graph] and bytes:
//
//   - [Document], [Node], [Link]: serialization types (this package)
//   - pkg/flow.Graph: internal representation with an id index
//
// Use [Serialize]/[Deserialize] to convert between them, and [Marshal],
// [MarshalIndent] and [Unmarshal] to go to and from bytes.
//
// # Format
//
//	{
//	  "nodes": [
//	    {"id": 0, "label": "Start", "details": "...", "x": 400, "y": 300, "fx": 400, "fy": 300},
//	    {"id": 1, "label": "A", "details": "No details provided.", "x": 512.3, "y": 288.1}
//	  ],
//	  "links": [{"source": 0, "target": 1}]
//	}
//
// Positions are nullable: a node that has never been laid out serializes
// "x": null. "fx"/"fy" are present only for pinned nodes.
//
// # Validation
//
// [Unmarshal] and [Deserialize] are all-or-nothing. A document is rejected
// with an ErrCodeInvalidDocument error when "nodes" or "links" is missing or
// not an array, a node has no id, two nodes share an id, or a link names an
// unknown node, points at its own source, or repeats another link.
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct graphs.
package graph
