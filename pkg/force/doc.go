// Package force implements the iterative physics solver that lays out a
// flowchart.
//
// The model follows the velocity-Verlet scheme popularised by d3-force. Each
// [Simulation.Tick]:
//
//  1. moves the temperature alpha toward alphaTarget by alphaDecay,
//  2. applies every registered [Force], which add velocity impulses scaled
//     by alpha,
//  3. integrates: free nodes decay their velocity and move; pinned nodes are
//     reset to their fixed coordinates.
//
// Three forces are registered by [New]: a [Link] spring along every edge, a
// [ManyBody] charge repelling every node pair and a [Center] force biasing the
// layout toward the canvas centre.
//
// # Restart policy
//
// Structural changes call [Simulation.Kick] which reheats alpha to 1. A drag
// holds [Simulation.SetAlphaTarget] at a moderate value so the layout keeps
// reacting while the pointer moves, and releases it to 0 on drop so the
// system cools to rest. The simulation is at rest once alpha falls below
// alphaMin; [Simulation.Active] reports whether the host should keep ticking.
//
// The simulation never starts goroutines. Hosts schedule ticks on their own
// event loop, or call [Simulation.Settle] to run to rest synchronously.
package force
