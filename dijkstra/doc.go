// Package dijkstra finds shortest routes on the road network.
//
// Overview:
//
//   - ShortestPath returns the minimum-total-weight node sequence between two
//     nodes. Weights are the live Euclidean edge lengths reported by the
//     graph, so a search always reflects the latest node positions.
//   - PathLength sums the weights along any node sequence and rejects hops
//     that are not edges.
//   - Route combines both and adds the cities passed through plus a scaled
//     length (map units → kilometres).
//
// Determinism:
//
//   - The frontier heap orders equal distances by node ID ascending, so equal
//     inputs give equal paths. Among several optimal paths, which one is
//     returned is otherwise unspecified.
//
// Options:
//
//   - WithMaxDistance(d): do not explore beyond d map units; a target farther
//     than d is reported as ErrNoPath.
//   - WithScale(f): Result.Scaled = Result.Length * f (Route only).
//
// Errors (sentinel):
//
//   - ErrNilGraph, ErrUnknownNode, ErrNoPath, ErrNegativeWeight,
//     ErrBadMaxDistance, ErrBadScale.
//
// Complexity:
//
//   - Time:  O((V + E) log V), early exit once the target is finalised.
//   - Space: O(V + E) with lazy decrease-key.
package dijkstra
