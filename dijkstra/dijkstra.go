// SPDX-License-Identifier: MIT
//
// File: dijkstra.go
// Role: Single-pair shortest path over non-negative Euclidean weights.
// Implementation:
//   - Binary min-heap keyed by (distance, node ID) with lazy decrease-key:
//     improved distances push a fresh entry; stale entries are skipped on pop.
//   - The search stops as soon as the target is finalised.

package dijkstra

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/roadnet/network"
)

// ShortestPath returns the minimum-total-weight node sequence from start to
// end, both inclusive. start == end yields [start].
//
// Errors:
//   - ErrNilGraph if g is nil.
//   - ErrUnknownNode if start or end is missing.
//   - ErrNoPath if end is unreachable (or farther than MaxDistance).
//   - ErrBadMaxDistance for an invalid option.
//
// Complexity: O((V + E) log V) time, O(V + E) space.
func ShortestPath(g Graph, start, end string, opts ...Option) ([]string, error) {
	// 1) Build and validate Options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// 2) Run the search.
	return shortestPath(g, start, end, cfg)
}

func shortestPath(g Graph, start, end string, cfg Options) ([]string, error) {
	// 1) Validate the graph and both endpoints.
	if g == nil {
		return nil, ErrNilGraph
	}
	if _, ok := g.Node(start); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, start)
	}
	if _, ok := g.Node(end); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, end)
	}
	if start == end {
		return []string{start}, nil
	}

	// 2) Seed the heap with start at distance 0 and drain it.
	r := &runner{
		g:    g,
		opts: cfg,
		dist: make(map[string]float64),
		prev: make(map[string]string),
		done: make(map[string]bool),
	}
	r.init(start)
	if err := r.process(end); err != nil {
		return nil, err
	}
	// 3) An unsettled target is in another component or beyond the cap.
	if !r.done[end] {
		return nil, fmt.Errorf("%w: %q → %q", ErrNoPath, start, end)
	}

	return r.path(start, end), nil
}

// PathLength sums EdgeWeight over consecutive pairs of path.
// An empty or single-node path has length 0.
//
// Errors: the EdgeWeight error (ErrEdgeNotFound, ErrUnknownNode) of the
// first hop that is not an edge.
func PathLength(g Graph, path []string) (float64, error) {
	if g == nil {
		return 0, ErrNilGraph
	}
	var total float64
	for i := 1; i < len(path); i++ {
		w, err := g.EdgeWeight(path[i-1], path[i])
		if err != nil {
			return 0, fmt.Errorf("dijkstra: hop %d: %w", i, err)
		}
		total += w
	}

	return total, nil
}

// Route runs ShortestPath and summarises the result: total length, one
// Segment per road travelled, the cities passed through, the number of
// intermediate waypoints and the scaled length.
//
// Errors: as ShortestPath, plus ErrBadScale.
func Route(g Graph, start, end string, opts ...Option) (*Result, error) {
	// 1) Build and validate Options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// 2) Find the node sequence.
	path, err := shortestPath(g, start, end, cfg)
	if err != nil {
		return nil, err
	}

	// 3) Re-read each hop's weight so segments match the live positions.
	res := &Result{Path: path, Segments: make([]Segment, 0, len(path)-1)}
	for i := 1; i < len(path); i++ {
		w, err := g.EdgeWeight(path[i-1], path[i])
		if err != nil {
			return nil, fmt.Errorf("dijkstra: hop %d: %w", i, err)
		}
		res.Segments = append(res.Segments, Segment{From: path[i-1], To: path[i], Length: w, Scaled: w * cfg.Scale})
		res.Length += w
	}
	res.Scaled = res.Length * cfg.Scale

	// 4) Classify the nodes passed through; endpoints never count as
	// intermediate waypoints.
	for i, id := range path {
		node, ok := g.Node(id)
		if !ok {
			continue
		}
		switch {
		case node.Kind == network.City:
			res.Cities = append(res.Cities, id)
		case i > 0 && i < len(path)-1:
			res.Waypoints++
		}
	}

	return res, nil
}

// runner holds the mutable state for a single search.
type runner struct {
	g    Graph
	opts Options
	dist map[string]float64 // best known distance; absent = +Inf
	prev map[string]string  // predecessor on the best known path
	done map[string]bool    // finalised nodes
	pq   nodePQ
}

func (r *runner) init(start string) {
	r.dist[start] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: start, dist: 0})
}

// process pops nodes in (distance, ID) order until target is finalised,
// the frontier exceeds MaxDistance or the heap drains.
func (r *runner) process(target string) error {
	for r.pq.Len() > 0 {
		// 1) Pop the closest tentative node; stale duplicates are skipped.
		item := heap.Pop(&r.pq).(*nodeItem)
		if r.done[item.id] {
			continue
		}
		// 2) Everything left in the heap is at least this far away.
		if item.dist > r.opts.MaxDistance {
			break
		}
		// 3) Finalise it and stop early once the target is settled.
		r.done[item.id] = true
		if item.id == target {
			return nil
		}
		// 4) Offer shorter paths to its neighbours.
		if err := r.relax(item.id); err != nil {
			return err
		}
	}

	return nil
}

// relax improves the neighbours of the finalised node u.
func (r *runner) relax(u string) error {
	neighbors, err := r.g.Neighbors(u)
	if err != nil {
		return fmt.Errorf("dijkstra: neighbors of %q: %w", u, err)
	}
	for _, v := range neighbors {
		if r.done[v] {
			continue
		}
		// 1) Weight is derived from positions on every read.
		w, err := r.g.EdgeWeight(u, v)
		if err != nil {
			return fmt.Errorf("dijkstra: weight %q→%q: %w", u, v, err)
		}
		// 2) NaN fails every comparison below, so reject it with negatives.
		if !(w >= 0) {
			return fmt.Errorf("%w: %q→%q weight=%g", ErrNegativeWeight, u, v, w)
		}
		// 3) Prune beyond the cap and keep only strict improvements, so
		// the first path found at a given distance wins.
		nd := r.dist[u] + w
		if nd > r.opts.MaxDistance {
			continue
		}
		if old, seen := r.dist[v]; seen && nd >= old {
			continue
		}
		// 4) Record and push; the old heap entry goes stale.
		r.dist[v] = nd
		r.prev[v] = u
		heap.Push(&r.pq, &nodeItem{id: v, dist: nd})
	}

	return nil
}

// path walks prev back from end and returns the forward sequence.
func (r *runner) path(start, end string) []string {
	var rev []string
	for at := end; ; at = r.prev[at] {
		rev = append(rev, at)
		if at == start {
			break
		}
	}
	out := make([]string, len(rev))
	for i, id := range rev {
		out[len(rev)-1-i] = id
	}

	return out
}

// nodeItem is a heap entry: a node and its tentative distance.
type nodeItem struct {
	id   string
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by (dist, id).
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
