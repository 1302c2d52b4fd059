// Package autoconnect generates roads automatically from node positions.
//
// Operations (each returns the number of edges it added):
//
//   - ConnectCitiesToNearestWaypoint: every city to its single nearest waypoint.
//   - ConnectKNearest: every node passing a Filter to its k closest peers
//     passing the same Filter.
//   - BuildSpanningTree: minimum spanning forest over a candidate set,
//     restricted to pairs closer than a cutoff (see prim_kruskal).
//   - ConnectNearbyCities: every pair of cities closer than a threshold.
//   - SmartGenerate: the four above in sequence with Params thresholds.
//
// Waypoints laid down by drawing a road (network.Node.Drawn) keep the
// route the user drew: the SkipDrawn option, on by default in Params,
// keeps the first three passes away from them.
//
// All operations only add edges that do not exist yet, never move or delete
// anything, and are deterministic: candidates are visited in ID order and
// distance ties break by ID. Running any of them twice on an unchanged
// network adds nothing the second time.
//
// The functions mutate the *network.Network directly and record no history;
// roadnet.Session wraps each call as one undoable command.
package autoconnect
