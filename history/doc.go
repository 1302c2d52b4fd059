// Package history records reversible network commands with bounded undo
// and redo stacks.
//
// Each Command carries a Change that can move the network in either
// direction without re-running the operation that produced it:
//
//   - EdgeSetChange: edge set before/after (edge create/delete, auto-connect).
//   - MoveChange:    one node's position before/after (move gesture).
//   - StateChange:   full snapshot before/after (waypoint delete, road
//     drawing, load).
//
// Manager is not safe for concurrent use; roadnet.Session owns one and
// serialises access together with the network.
package history
