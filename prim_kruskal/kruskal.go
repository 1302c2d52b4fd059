// Package prim_kruskal provides an implementation of Kruskal's minimum
// spanning forest algorithm over an explicit candidate edge list.
package prim_kruskal

import "fmt"

func errUnknown(id string) error {
	return fmt.Errorf("%w: %q", ErrUnknownVertex, id)
}

// Kruskal computes the minimum spanning forest of the undirected graph
// (vertices, edges) using a disjoint-set (union-find) with path compression
// and union by rank.
//
// A disconnected candidate graph is not an error: the result holds one tree
// per component. Self-loops are ignored.
//
// Error Conditions:
//   - ErrUnknownVertex  : an edge endpoint is missing from vertices.
//   - ErrNegativeWeight : an edge weight is negative or NaN.
//
// Steps:
//  1. Validate and sort candidates by (Weight, A, B).
//  2. Initialize DSU parent[] and rank[] for each vertex.
//  3. For each edge (u,v) in order, if find(u) != find(v), union and keep it.
//  4. Stop early once |V|-1 edges are kept (single tree).
//
// Complexity: O(E log E + α(V)·E). Memory: O(E + V).
func Kruskal(vertices []string, edges []WeightedEdge) (Forest, error) {
	// 1) Validate and sort candidates by (Weight, A, B).
	vs, sorted, err := validate(vertices, edges)
	if err != nil {
		return Forest{}, err
	}
	if len(vs) == 0 {
		return Forest{}, nil
	}

	// 2) Every vertex starts as its own set.
	parent := make(map[string]string, len(vs))
	rank := make(map[string]int, len(vs))
	for _, v := range vs {
		parent[v] = v
	}

	// Iterative find with path halving.
	find := func(u string) string {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}

		return u
	}

	union := func(ru, rv string) {
		switch {
		case rank[ru] < rank[rv]:
			parent[ru] = rv
		case rank[ru] > rank[rv]:
			parent[rv] = ru
		default:
			parent[rv] = ru
			rank[ru]++
		}
	}

	// 3) Keep each edge that joins two sets; it merges two trees.
	f := Forest{Components: len(vs)}
	for _, e := range sorted {
		ru, rv := find(e.A), find(e.B)
		if ru == rv {
			continue
		}
		union(ru, rv)
		f.Edges = append(f.Edges, e)
		f.Total += e.Weight
		f.Components--
		// 4) A single tree cannot grow further.
		if f.Components == 1 {
			break
		}
	}

	return f, nil
}
