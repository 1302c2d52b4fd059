// Package network is the road-network data model: cities and waypoints
// placed in map space, joined by undirected roads.
//
// What:
//
//   - Node catalog keyed by unique string ID. A node is a City (fixed, from
//     the startup dataset) or a Waypoint (created and removed at runtime).
//   - Edge set of unordered pairs. At most one edge per pair, no self-loops,
//     both endpoints must exist.
//   - Edge weight is the Euclidean distance between the current endpoint
//     positions. It is never cached, so moving a node immediately changes
//     every incident weight.
//
// Determinism:
//
//   - Nodes(), Edges(), Neighbors() and IncidentEdges() return sorted slices,
//     so algorithms built on top produce stable results for equal inputs.
//
// Concurrency:
//
//   - Network holds no lock. The roadnet.Session wrapper serialises access.
//
// Errors:
//
//   - ErrEmptyNodeID, ErrInvalidKind, ErrDuplicateNode    (node creation)
//   - ErrNodeNotFound                                      (remove / move / queries)
//   - ErrSelfLoop, ErrUnknownNode, ErrDuplicateEdge        (edge creation)
//   - ErrEdgeNotFound                                      (edge removal / weight)
//
// Example:
//
//	n := network.New()
//	_ = n.AddNode("A", network.City, geom.Pt(0, 0))
//	_ = n.AddNode("B", network.City, geom.Pt(3, 4))
//	_ = n.AddEdge("A", "B")
//	w, _ := n.EdgeWeight("B", "A") // 5
package network
