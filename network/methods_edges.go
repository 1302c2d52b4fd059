// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle, derived weights and neighborhood queries.
// Determinism:
//   - Edges() is sorted by (A, B) of the canonical form.
//   - Neighbors() is sorted lexicographically.

package network

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/roadnet/geom"
)

// AddEdge links a and b with an undirected edge.
//
// Errors (checked in this order):
//   - ErrSelfLoop if a == b.
//   - ErrUnknownNode if either endpoint is missing.
//   - ErrDuplicateEdge if {a,b} already has an edge, in either orientation.
//
// Complexity: O(1).
func (n *Network) AddEdge(a, b string) error {
	if a == b {
		return fmt.Errorf("%w: %q", ErrSelfLoop, a)
	}
	if _, ok := n.nodes[a]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, a)
	}
	if _, ok := n.nodes[b]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, b)
	}
	if _, ok := n.adj[a][b]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateEdge, NewEdge(a, b))
	}
	n.adj[a][b] = struct{}{}
	n.adj[b][a] = struct{}{}
	n.edges++

	return nil
}

// RemoveEdge deletes the edge {a,b}; orientation does not matter.
//
// Errors: ErrEdgeNotFound.
// Complexity: O(1).
func (n *Network) RemoveEdge(a, b string) error {
	if _, ok := n.adj[a][b]; !ok {
		return fmt.Errorf("%w: %s", ErrEdgeNotFound, NewEdge(a, b))
	}
	delete(n.adj[a], b)
	delete(n.adj[b], a)
	n.edges--

	return nil
}

// HasEdge reports whether {a,b} has an edge, in either orientation.
// Complexity: O(1).
func (n *Network) HasEdge(a, b string) bool {
	_, ok := n.adj[a][b]
	return ok
}

// EdgeWeight returns the Euclidean distance between the current positions
// of a and b. It is computed on every call, so it always reflects the
// latest MoveNode.
//
// Errors:
//   - ErrUnknownNode if either endpoint is missing.
//   - ErrEdgeNotFound if the nodes exist but are not linked.
//
// Complexity: O(1).
func (n *Network) EdgeWeight(a, b string) (float64, error) {
	na, ok := n.nodes[a]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNode, a)
	}
	nb, ok := n.nodes[b]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNode, b)
	}
	if _, ok = n.adj[a][b]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrEdgeNotFound, NewEdge(a, b))
	}

	return geom.Distance(na.Pos, nb.Pos), nil
}

// Neighbors returns the IDs adjacent to id, sorted ascending.
//
// Errors: ErrNodeNotFound.
// Complexity: O(d log d).
func (n *Network) Neighbors(id string) ([]string, error) {
	if _, ok := n.nodes[id]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	out := make([]string, 0, len(n.adj[id]))
	for other := range n.adj[id] {
		out = append(out, other)
	}
	sort.Strings(out)

	return out, nil
}

// IncidentEdges returns the canonical edges touching id, sorted.
//
// Errors: ErrNodeNotFound.
func (n *Network) IncidentEdges(id string) ([]Edge, error) {
	if _, ok := n.nodes[id]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	out := make([]Edge, 0, len(n.adj[id]))
	for other := range n.adj[id] {
		out = append(out, NewEdge(id, other))
	}
	sortEdges(out)

	return out, nil
}

// Edges returns every edge once, in canonical form, sorted by (A, B).
// Complexity: O(E log E).
func (n *Network) Edges() []Edge {
	out := make([]Edge, 0, n.edges)
	for a, set := range n.adj {
		for b := range set {
			if a < b {
				out = append(out, Edge{A: a, B: b})
			}
		}
	}
	sortEdges(out)

	return out
}

// EdgeCount returns the number of edges. O(1).
func (n *Network) EdgeCount() int { return n.edges }

// Stats summarises node kinds, edge count and total road length.
// Complexity: O(V + E).
func (n *Network) Stats() Stats {
	s := Stats{Nodes: len(n.nodes), Edges: n.edges}
	for _, node := range n.nodes {
		switch node.Kind {
		case City:
			s.Cities++
		case Waypoint:
			s.Waypoints++
		}
	}
	for a, set := range n.adj {
		for b := range set {
			if a < b {
				s.TotalLength += geom.Distance(n.nodes[a].Pos, n.nodes[b].Pos)
			}
		}
	}

	return s
}

// sortEdges orders canonical edges by (A, B).
func sortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
}
