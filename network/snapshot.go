// File: snapshot.go
// Role: Whole-state and edge-set capture and restoration.
// Atomicity:
//   - Restore and ReplaceEdges validate the full input before touching state;
//     on error the network is unchanged.

package network

import (
	"fmt"
)

// Snapshot is a value copy of the network: every node and every canonical
// edge, both sorted. It shares no memory with the Network it came from.
type Snapshot struct {
	Nodes []Node
	Edges []Edge
}

// Snapshot captures the current state.
// Complexity: O(V log V + E log E).
func (n *Network) Snapshot() Snapshot {
	return Snapshot{Nodes: n.Nodes(), Edges: n.Edges()}
}

// Restore replaces the entire state with s.
//
// Errors: any structural violation in s (ErrEmptyNodeID, ErrInvalidKind,
// ErrDuplicateNode, ErrInvalidPosition, ErrSelfLoop, ErrUnknownNode,
// ErrDuplicateEdge).
// The network is left untouched when an error is returned.
func (n *Network) Restore(s Snapshot) error {
	fresh := New()
	for _, node := range s.Nodes {
		if err := fresh.AddNode(node.ID, node.Kind, node.Pos); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
	}
	for _, e := range s.Edges {
		if err := fresh.AddEdge(e.A, e.B); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
	}
	*n = *fresh

	return nil
}

// EdgeSet returns a copy of the current edges. It is the undo payload for
// every command that only adds or removes edges.
func (n *Network) EdgeSet() []Edge { return n.Edges() }

// ReplaceEdges swaps the edge set for edges, keeping nodes untouched.
// Duplicate pairs in edges (in either orientation) are rejected.
//
// Errors: ErrSelfLoop, ErrUnknownNode, ErrDuplicateEdge.
// The network is left untouched when an error is returned.
func (n *Network) ReplaceEdges(edges []Edge) error {
	adj := make(map[string]map[string]struct{}, len(n.nodes))
	for id := range n.nodes {
		adj[id] = make(map[string]struct{})
	}
	for _, e := range edges {
		switch {
		case e.A == e.B:
			return fmt.Errorf("replace edges: %w: %q", ErrSelfLoop, e.A)
		case adj[e.A] == nil:
			return fmt.Errorf("replace edges: %w: %q", ErrUnknownNode, e.A)
		case adj[e.B] == nil:
			return fmt.Errorf("replace edges: %w: %q", ErrUnknownNode, e.B)
		}
		if _, dup := adj[e.A][e.B]; dup {
			return fmt.Errorf("replace edges: %w: %s", ErrDuplicateEdge, NewEdge(e.A, e.B))
		}
		adj[e.A][e.B] = struct{}{}
		adj[e.B][e.A] = struct{}{}
	}
	n.adj = adj
	n.edges = len(edges)

	return nil
}

// Clone returns a deep copy that shares no state with n.
// Complexity: O(V + E).
func (n *Network) Clone() *Network {
	c := &Network{
		nodes: make(map[string]*Node, len(n.nodes)),
		adj:   make(map[string]map[string]struct{}, len(n.adj)),
		edges: n.edges,
	}
	for id, node := range n.nodes {
		cp := *node
		c.nodes[id] = &cp
	}
	for id, set := range n.adj {
		inner := make(map[string]struct{}, len(set))
		for other := range set {
			inner[other] = struct{}{}
		}
		c.adj[id] = inner
	}

	return c
}
