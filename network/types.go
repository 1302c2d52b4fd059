// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Node, Edge, Kind, sentinel errors and the Network constructor.
// Policy:
//   - Edge weight is never stored; it is derived from live positions on read.
//   - Edges are undirected and stored once, canonical order A < B.

package network

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/roadnet/geom"
)

// Sentinel errors for network operations. Callers match them with errors.Is;
// returned errors wrap them with the offending identifiers.
var (
	// ErrEmptyNodeID indicates a node identifier was the empty string.
	ErrEmptyNodeID = errors.New("network: node ID is empty")

	// ErrDuplicateNode indicates AddNode was called with an existing ID.
	ErrDuplicateNode = errors.New("network: duplicate node")

	// ErrNodeNotFound indicates RemoveNode/MoveNode referenced a missing node.
	ErrNodeNotFound = errors.New("network: node not found")

	// ErrUnknownNode indicates an edge operation referenced a missing endpoint.
	ErrUnknownNode = errors.New("network: unknown node")

	// ErrSelfLoop indicates an edge from a node to itself.
	ErrSelfLoop = errors.New("network: self-loop not allowed")

	// ErrDuplicateEdge indicates the unordered pair already has an edge.
	ErrDuplicateEdge = errors.New("network: duplicate edge")

	// ErrEdgeNotFound indicates the unordered pair has no edge.
	ErrEdgeNotFound = errors.New("network: edge not found")

	// ErrInvalidKind indicates an unrecognised node kind.
	ErrInvalidKind = errors.New("network: invalid node kind")

	// ErrInvalidPosition indicates a coordinate that is NaN or infinite.
	ErrInvalidPosition = errors.New("network: position is not finite")
)

// Kind classifies a node.
type Kind uint8

const (
	// City is a fixed, named place from the startup dataset.
	City Kind = iota + 1
	// Waypoint is a dynamically created routing point.
	Waypoint
)

// String returns the lower-case wire name of k ("city", "waypoint").
func (k Kind) String() string {
	switch k {
	case City:
		return "city"
	case Waypoint:
		return "waypoint"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Valid reports whether k is City or Waypoint.
func (k Kind) Valid() bool { return k == City || k == Waypoint }

// ParseKind converts a wire name back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "city":
		return City, nil
	case "waypoint":
		return Waypoint, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// DrawnPrefix starts the ID of every waypoint created by drawing a road.
// The prefix is the only record of that origin, so it survives any store.
const DrawnPrefix = "drawn_wp_"

// Node is a city or waypoint at a map-space position.
// ID and Kind are immutable for the life of the node; Pos changes via MoveNode.
type Node struct {
	ID   string
	Kind Kind
	Pos  geom.Point
}

// Drawn reports whether the node is a waypoint laid down along a drawn road.
func (n Node) Drawn() bool {
	return n.Kind == Waypoint && strings.HasPrefix(n.ID, DrawnPrefix)
}

// Edge is an undirected road between two nodes.
// Values built with NewEdge are canonical (A < B), so two Edges describing
// the same unordered pair compare equal with ==.
type Edge struct {
	A string
	B string
}

// NewEdge returns the canonical Edge for the unordered pair {a, b}.
func NewEdge(a, b string) Edge {
	if b < a {
		a, b = b, a
	}

	return Edge{A: a, B: b}
}

// Has reports whether id is one of the endpoints.
func (e Edge) Has(id string) bool { return e.A == id || e.B == id }

// Other returns the endpoint opposite id, or "" if id is not an endpoint.
func (e Edge) Other(id string) string {
	switch id {
	case e.A:
		return e.B
	case e.B:
		return e.A
	default:
		return ""
	}
}

// String renders the edge as "A-B".
func (e Edge) String() string { return e.A + "-" + e.B }

// Stats is a read-only summary of the network.
type Stats struct {
	Nodes       int     `json:"nodes"`
	Cities      int     `json:"cities"`
	Waypoints   int     `json:"waypoints"`
	Edges       int     `json:"edges"`
	TotalLength float64 `json:"total_length"` // sum of all edge weights
}

// Network is the canonical road graph: a node catalog plus a symmetric
// adjacency set. It enforces the structural invariants (endpoints exist,
// no self-loops, one edge per unordered pair) and never records history.
//
// A Network is not safe for concurrent use; callers serialise access.
type Network struct {
	nodes map[string]*Node
	// adj[a][b] exists iff adj[b][a] exists iff edge {a,b} is present.
	adj   map[string]map[string]struct{}
	edges int
}

// New returns an empty Network.
// Complexity: O(1).
func New() *Network {
	return &Network{
		nodes: make(map[string]*Node),
		adj:   make(map[string]map[string]struct{}),
	}
}
