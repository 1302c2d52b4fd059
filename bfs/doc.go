// Package bfs provides breadth-first search over the road network.
//
// What
//
//   - BFS explores nodes in non-decreasing hop count from a start node and
//     returns a Result (Order, Hops, Parent). PathTo gives the fewest-roads
//     path to any visited node; Within lists the visited nodes by distance
//     in roads.
//   - Reachable lists every node connected to a start node.
//   - Components partitions a node set into connected components; the
//     session statistics report how many islands the network has.
//
// Options
//
//   - WithMaxHops bounds the search radius in roads.
//   - WithAvoid keeps the search out of closed nodes.
//
// Determinism
//
//	network.Network returns neighbours sorted by ID and BFS enqueues them in
//	that order, so the visit sequence is reproducible.
//
// Complexity
//
//	O(V + E) time and space for each call.
package bfs
