// SPDX-License-Identifier: MIT
//
// File: methods_nodes.go
// Role: Node lifecycle and queries.
// Determinism:
//   - Nodes() and NodesOfKind() return nodes sorted by ID ascending.

package network

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/roadnet/geom"
)

// AddNode inserts a node.
//
// Errors:
//   - ErrEmptyNodeID if id == "".
//   - ErrInvalidKind if kind is neither City nor Waypoint.
//   - ErrDuplicateNode if id already exists (IDs are unique across kinds).
//   - ErrInvalidPosition if pos has a NaN or infinite coordinate.
//
// Complexity: O(1) amortized.
func (n *Network) AddNode(id string, kind Kind, pos geom.Point) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidKind, kind)
	}
	if _, exists := n.nodes[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, id)
	}
	if !pos.Finite() {
		return fmt.Errorf("%w: %q at (%g, %g)", ErrInvalidPosition, id, pos.X, pos.Y)
	}
	n.nodes[id] = &Node{ID: id, Kind: kind, Pos: pos}
	n.adj[id] = make(map[string]struct{})

	return nil
}

// RemoveNode deletes the node and every incident edge, returning the
// removed edges sorted canonically. Either everything goes or nothing does.
//
// Errors: ErrNodeNotFound.
// Complexity: O(deg(id)·log deg(id)).
func (n *Network) RemoveNode(id string) ([]Edge, error) {
	if _, ok := n.nodes[id]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}

	removed := make([]Edge, 0, len(n.adj[id]))
	for other := range n.adj[id] {
		delete(n.adj[other], id)
		removed = append(removed, NewEdge(id, other))
	}
	n.edges -= len(removed)
	delete(n.adj, id)
	delete(n.nodes, id)
	sortEdges(removed)

	return removed, nil
}

// MoveNode updates the position of id. Weights of incident edges change
// implicitly because they are derived on read.
//
// Errors: ErrNodeNotFound, ErrInvalidPosition.
// Complexity: O(1).
func (n *Network) MoveNode(id string, pos geom.Point) error {
	node, ok := n.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	if !pos.Finite() {
		return fmt.Errorf("%w: %q to (%g, %g)", ErrInvalidPosition, id, pos.X, pos.Y)
	}
	node.Pos = pos

	return nil
}

// HasNode reports whether id exists.
func (n *Network) HasNode(id string) bool {
	_, ok := n.nodes[id]
	return ok
}

// Node returns a copy of the node with the given id.
func (n *Network) Node(id string) (Node, bool) {
	node, ok := n.nodes[id]
	if !ok {
		return Node{}, false
	}

	return *node, true
}

// Position returns the current position of id.
//
// Errors: ErrNodeNotFound.
func (n *Network) Position(id string) (geom.Point, error) {
	node, ok := n.nodes[id]
	if !ok {
		return geom.Point{}, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}

	return node.Pos, nil
}

// Nodes returns copies of all nodes sorted by ID.
// Complexity: O(V log V).
func (n *Network) Nodes() []Node {
	out := make([]Node, 0, len(n.nodes))
	for _, node := range n.nodes {
		out = append(out, *node)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// NodesOfKind returns copies of the nodes of the given kind sorted by ID.
// Complexity: O(V log V).
func (n *Network) NodesOfKind(kind Kind) []Node {
	out := make([]Node, 0, len(n.nodes))
	for _, node := range n.nodes {
		if node.Kind == kind {
			out = append(out, *node)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// NodeCount returns the number of nodes. O(1).
func (n *Network) NodeCount() int { return len(n.nodes) }
