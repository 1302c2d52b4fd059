// Package prim_kruskal provides an implementation of Prim's minimum spanning
// forest algorithm. Each tree grows from a root using a min-heap; when the
// heap drains, the next unvisited vertex (by ID) starts a new tree.
package prim_kruskal

import (
	"container/heap"
	"fmt"
	"sort"
)

// Prim computes the minimum spanning forest of (vertices, edges).
//
// root names the vertex that grows the first tree; "" selects the smallest
// vertex ID. Remaining components are grown from their smallest unvisited ID.
//
// Error Conditions:
//   - ErrUnknownVertex  : root or an edge endpoint is missing from vertices.
//   - ErrNegativeWeight : an edge weight is negative or NaN.
//
// Complexity: O(E log V) time, O(V + E) memory.
func Prim(vertices []string, edges []WeightedEdge, root string) (Forest, error) {
	// 1) Validate and sort candidates by (Weight, A, B).
	vs, sorted, err := validate(vertices, edges)
	if err != nil {
		return Forest{}, err
	}
	if len(vs) == 0 {
		if root != "" {
			return Forest{}, errUnknown(root)
		}
		return Forest{}, nil
	}

	// 2) Adjacency lists inherit the sorted order.
	adj := make(map[string][]WeightedEdge, len(vs))
	for _, e := range sorted {
		adj[e.A] = append(adj[e.A], e)
		adj[e.B] = append(adj[e.B], e)
	}

	// 3) The requested root goes first, then every vertex in ID order.
	roots := vs
	if root != "" {
		if !contains(vs, root) {
			return Forest{}, fmt.Errorf("root: %w", errUnknown(root))
		}
		roots = append([]string{root}, vs...)
	}

	visited := make(map[string]bool, len(vs))
	var f Forest
	pq := &edgePQ{}
	for _, r := range roots {
		if visited[r] {
			continue
		}
		// 4) An unvisited root opens a new tree; grow it until the
		// frontier drains.
		f.Components++
		visited[r] = true
		pushFrontier(pq, adj[r], visited)

		for pq.Len() > 0 {
			it := heap.Pop(pq).(primItem)
			if visited[it.to] {
				continue
			}
			visited[it.to] = true
			f.Edges = append(f.Edges, it.edge)
			f.Total += it.edge.Weight
			pushFrontier(pq, adj[it.to], visited)
		}
	}

	return f, nil
}

// pushFrontier queues every edge leading to an unvisited vertex.
func pushFrontier(pq *edgePQ, edges []WeightedEdge, visited map[string]bool) {
	for _, e := range edges {
		switch {
		case !visited[e.A]:
			heap.Push(pq, primItem{edge: e, to: e.A})
		case !visited[e.B]:
			heap.Push(pq, primItem{edge: e, to: e.B})
		}
	}
}

func contains(sorted []string, id string) bool {
	i := sort.SearchStrings(sorted, id)
	return i < len(sorted) && sorted[i] == id
}

// primItem is a candidate edge plus the vertex it would add.
type primItem struct {
	edge WeightedEdge
	to   string
}

// edgePQ implements heap.Interface for a min-heap of primItem ordered by
// (Weight, A, B).
type edgePQ []primItem

func (pq edgePQ) Len() int { return len(pq) }

func (pq edgePQ) Less(i, j int) bool { return lessEdge(pq[i].edge, pq[j].edge) }

func (pq edgePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *edgePQ) Push(x interface{}) { *pq = append(*pq, x.(primItem)) }

func (pq *edgePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
