// Package prim_kruskal computes minimum spanning forests over candidate
// road pairs, for the spanning-tree step of automatic road generation.
//
// What & Why
//
//   - Input is an explicit vertex list plus candidate edges with lengths,
//     not a stored graph: the caller builds the complete graph of node pairs
//     closer than a cutoff and asks for the cheapest way to connect them.
//
//   - The candidate graph is often disconnected (clusters of waypoints farther
//     apart than the cutoff). Both algorithms therefore return a forest: one
//     minimum spanning tree per component. Forest.Components reports how many.
//
// Algorithms Provided
//
//   - Kruskal(vertices, edges) (Forest, error)
//
//   - Strategy: sort candidates by (Weight, A, B) and merge components with
//     a disjoint-set (path halving, union by rank).
//
//   - Complexity: O(E log E + α(V)·E) time, O(V + E) space.
//
//   - Prim(vertices, edges, root) (Forest, error)
//
//   - Strategy: grow a tree from root with a min-heap of frontier edges; when
//     the heap drains, restart from the smallest unvisited vertex.
//
//   - Complexity: O(E log V) time, O(V + E) space.
//
//   - Compute(vertices, edges, opts...) dispatches on MSTOptions.Method
//     (Kruskal by default).
//
// Determinism
//
//   - Ties in weight break by canonical (A, B), so equal inputs give equal
//     forests. Totals of Kruskal and Prim always match; edge sets may differ
//     only between equal-weight alternatives.
//
// Error Conditions
//
//   - ErrUnknownVertex  – an edge endpoint (or Prim root) is not in vertices.
//   - ErrNegativeWeight – a candidate weight is negative or NaN.
//   - ErrUnknownMethod  – Compute with an unrecognised method.
//
// Self-loops are dropped silently; duplicate vertices are ignored.
package prim_kruskal
