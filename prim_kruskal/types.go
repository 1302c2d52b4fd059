// Package prim_kruskal defines configuration options and sentinel errors for
// minimum spanning forest computation over candidate road pairs.
// It supports selecting between Kruskal and Prim via MSTOptions.
package prim_kruskal

import (
	"errors"
	"sort"
)

// ErrUnknownVertex indicates that a candidate edge references a vertex that
// was not listed in the vertex set.
var ErrUnknownVertex = errors.New("prim_kruskal: edge endpoint not in vertex set")

// ErrUnknownMethod indicates that MSTOptions.Method is neither MethodPrim
// nor MethodKruskal.
var ErrUnknownMethod = errors.New("prim_kruskal: unknown method")

// ErrNegativeWeight indicates a candidate edge with a negative or NaN weight.
var ErrNegativeWeight = errors.New("prim_kruskal: negative edge weight")

// MethodPrim selects Prim's algorithm (grow trees from roots using a min-heap).
const MethodPrim = "prim"

// MethodKruskal selects Kruskal's algorithm (sort all edges and union-find).
const MethodKruskal = "kruskal"

// WeightedEdge is an undirected candidate pair with its length.
type WeightedEdge struct {
	A      string
	B      string
	Weight float64
}

// canonical returns e with A < B.
func (e WeightedEdge) canonical() WeightedEdge {
	if e.B < e.A {
		e.A, e.B = e.B, e.A
	}
	return e
}

// Forest is a minimum spanning forest: one minimum spanning tree per
// connected component of the candidate graph.
//
//	Edges      – chosen edges in canonical form (A < B), in selection order.
//	Total      – sum of their weights.
//	Components – number of trees, isolated vertices included.
type Forest struct {
	Edges      []WeightedEdge
	Total      float64
	Components int
}

// MSTOptions configures which algorithm to run.
//
//	Method string: one of MethodPrim or MethodKruskal.
//
// Compute grows Prim's trees from the smallest vertex ID of each component,
// so both methods return the same edge set on distinct weights.
//
// Complexity: O(E log V) for Prim, O(E log E + α(V)·E) for Kruskal.
type MSTOptions struct {
	Method string
}

// Option configures MSTOptions.
type Option func(*MSTOptions)

// WithMethod returns an Option that sets the algorithm Method.
func WithMethod(m string) Option {
	return func(opts *MSTOptions) {
		opts.Method = m
	}
}

// DefaultOptions returns MSTOptions initialized for Kruskal.
func DefaultOptions() MSTOptions {
	return MSTOptions{Method: MethodKruskal}
}

// Compute selects and runs the algorithm named by opts.Method.
//
// Errors: ErrUnknownMethod, plus whatever the selected algorithm returns.
func Compute(vertices []string, edges []WeightedEdge, opts ...Option) (Forest, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	switch cfg.Method {
	case MethodKruskal:
		return Kruskal(vertices, edges)
	case MethodPrim:
		return Prim(vertices, edges, "")
	default:
		return Forest{}, ErrUnknownMethod
	}
}

// validate checks endpoints and weights, drops self-loops and returns the
// canonical candidate list sorted by (Weight, A, B) together with the sorted,
// de-duplicated vertex list.
func validate(vertices []string, edges []WeightedEdge) ([]string, []WeightedEdge, error) {
	seen := make(map[string]struct{}, len(vertices))
	vs := make([]string, 0, len(vertices))
	for _, v := range vertices {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		vs = append(vs, v)
	}
	sort.Strings(vs)

	out := make([]WeightedEdge, 0, len(edges))
	for _, e := range edges {
		if _, ok := seen[e.A]; !ok {
			return nil, nil, errUnknown(e.A)
		}
		if _, ok := seen[e.B]; !ok {
			return nil, nil, errUnknown(e.B)
		}
		if !(e.Weight >= 0) {
			return nil, nil, ErrNegativeWeight
		}
		if e.A == e.B {
			continue
		}
		out = append(out, e.canonical())
	}
	sortEdges(out)

	return vs, out, nil
}

func sortEdges(edges []WeightedEdge) {
	sort.SliceStable(edges, func(i, j int) bool {
		return lessEdge(edges[i], edges[j])
	})
}

// lessEdge orders by (Weight, A, B): equal-length candidates resolve by ID.
func lessEdge(x, y WeightedEdge) bool {
	if x.Weight != y.Weight {
		return x.Weight < y.Weight
	}
	if x.A != y.A {
		return x.A < y.A
	}
	return x.B < y.B
}
