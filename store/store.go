// Package store defines the persistence boundary of the road network: a
// Document holding node positions and road pairs, and the Gateway that
// loads and saves it. Adapters live in the jsonfile, yamlfile and sqlite
// subpackages.
package store

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/katalvlaran/roadnet/geom"
	"github.com/katalvlaran/roadnet/network"
)

var (
	// ErrNotFound is returned by Gateway.Load when nothing was saved yet.
	ErrNotFound = errors.New("store: nothing saved")

	// ErrInvalidDocument is returned when a Document cannot be turned into
	// a consistent network (unknown kind, non-finite position, dangling or
	// duplicate road).
	ErrInvalidDocument = errors.New("store: invalid document")
)

// Gateway loads and saves whole Documents.
type Gateway interface {
	// Load returns the saved document or ErrNotFound.
	Load(ctx context.Context) (*Document, error)
	// Save replaces whatever was saved before.
	Save(ctx context.Context, doc *Document) error
}

// NodeRecord is the persisted form of one node.
type NodeRecord struct {
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Kind string  `json:"type" yaml:"type"`
}

// Document is the persisted network: node positions keyed by ID and road
// pairs. IDs round-trip verbatim.
type Document struct {
	Nodes map[string]NodeRecord `json:"nodes" yaml:"nodes"`
	Edges [][2]string           `json:"roads" yaml:"roads"`
}

// FromNetwork captures n. Edges are canonical and sorted.
func FromNetwork(n *network.Network) *Document {
	doc := &Document{Nodes: make(map[string]NodeRecord, n.NodeCount())}
	for _, node := range n.Nodes() {
		doc.Nodes[node.ID] = NodeRecord{X: node.Pos.X, Y: node.Pos.Y, Kind: node.Kind.String()}
	}
	for _, e := range n.Edges() {
		doc.Edges = append(doc.Edges, [2]string{e.A, e.B})
	}

	return doc
}

// Snapshot converts the document into a network snapshot on top of fixed.
//
// Nodes in fixed (the startup cities) are always present; the document may
// move them. Every other node comes from the document. Roads must reference
// known nodes and may not repeat a pair.
func (d *Document) Snapshot(fixed []network.Node) (network.Snapshot, error) {
	merged := make(map[string]network.Node, len(fixed)+len(d.Nodes))
	for _, node := range fixed {
		merged[node.ID] = node
	}
	for id, rec := range d.Nodes {
		kind, err := network.ParseKind(rec.Kind)
		if err != nil {
			return network.Snapshot{}, errors.Wrapf(ErrInvalidDocument, "node %q: %v", id, err)
		}
		if prev, ok := merged[id]; ok && prev.Kind != kind {
			return network.Snapshot{}, errors.Wrapf(ErrInvalidDocument, "node %q: kind %s conflicts with %s", id, kind, prev.Kind)
		}
		pos := geom.Pt(rec.X, rec.Y)
		if !pos.Finite() {
			return network.Snapshot{}, errors.Wrapf(ErrInvalidDocument, "node %q: position (%g, %g) is not finite", id, rec.X, rec.Y)
		}
		merged[id] = network.Node{ID: id, Kind: kind, Pos: pos}
	}

	snap := network.Snapshot{Nodes: make([]network.Node, 0, len(merged))}
	for _, node := range merged {
		snap.Nodes = append(snap.Nodes, node)
	}
	sort.Slice(snap.Nodes, func(i, j int) bool { return snap.Nodes[i].ID < snap.Nodes[j].ID })

	seen := make(map[network.Edge]bool, len(d.Edges))
	for i, pair := range d.Edges {
		e := network.NewEdge(pair[0], pair[1])
		switch {
		case e.A == e.B:
			return network.Snapshot{}, errors.Wrapf(ErrInvalidDocument, "road %d: self-loop %q", i, e.A)
		case !hasNode(merged, e.A):
			return network.Snapshot{}, errors.Wrapf(ErrInvalidDocument, "road %d: unknown node %q", i, e.A)
		case !hasNode(merged, e.B):
			return network.Snapshot{}, errors.Wrapf(ErrInvalidDocument, "road %d: unknown node %q", i, e.B)
		case seen[e]:
			return network.Snapshot{}, errors.Wrapf(ErrInvalidDocument, "road %d: duplicate %s", i, e)
		}
		seen[e] = true
		snap.Edges = append(snap.Edges, e)
	}

	return snap, nil
}

func hasNode(m map[string]network.Node, id string) bool {
	_, ok := m[id]
	return ok
}
