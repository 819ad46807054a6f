// Package editor implements the interactive flowchart editor independent of
// any UI toolkit.
//
// An [Editor] owns the flowchart graph, the force simulation laid over it and
// the transient interaction state (mode, selection, open menu, details panel).
// Hosts translate their native input into [Event] values and feed them to
// [Editor.Dispatch]; they call [Editor.Tick] from their frame or timer loop
// while [Editor.Active] is true, and draw whatever [Editor.Scene] returns.
//
// # Modes
//
//	Idle ──pointer-down on node──▶ Dragging ──pointer-up──▶ Idle
//	Idle ──StartLink()──────────▶ Linking  ──click node / click canvas / esc──▶ Idle
//
// Dragging pins the held node at the pointer, clamped to a padding margin on
// the top and left, and grows the canvas when the node nears the right or
// bottom edge. Released nodes stay pinned until [Editor.ResetLayout].
//
// Linking ends on the next click. Clicking a different node adds the edge
// unless it already exists; clicking the source node or the empty canvas adds
// nothing.
//
// # Graph changes
//
// Every structural change goes through a single internal notification that
// rebinds the simulation, reheats it, recomputes edge segments and writes the
// document to the store. In read-only mode mutating events and commands
// return an ErrCodeReadOnly error and nothing is ever written to the store;
// selecting nodes and reading their details still works.
//
// # Concurrency
//
// An Editor is not safe for concurrent use. All calls, including Tick, must
// come from one goroutine, normally the host's event loop.
package editor
