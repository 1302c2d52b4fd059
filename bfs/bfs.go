// Package bfs provides breadth-first search over the road network,
// returning hop counts, parent links, visit order and connected components.
//
// BFS ignores edge lengths: it answers "how many roads" and "is it reachable",
// while dijkstra answers "how far".
package bfs

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNeighbors is returned when fetching neighbors from the graph fails.
var ErrNeighbors = errors.New("bfs: neighbor iteration error")

// walker holds the queue and the tree being built.
type walker struct {
	graph Graph
	opts  Options
	queue []string
	res   *Result
}

// BFS runs breadth-first search on g starting from start.
// Neighbors are expanded in the order the graph returns them (sorted for
// *network.Network), so Order is deterministic.
//
// Errors: ErrGraphNil, ErrStartNotFound, ErrBadHops, ErrNeighbors.
func BFS(g Graph, start string, opts ...Option) (*Result, error) {
	// 1) Build and validate Options.
	if g == nil {
		return nil, ErrGraphNil
	}
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasNode(start) {
		return nil, fmt.Errorf("%w: %q", ErrStartNotFound, start)
	}

	// 2) Seed the queue with the start at hop 0.
	w := &walker{
		graph: g,
		opts:  o,
		res: &Result{
			Start:  start,
			Hops:   map[string]int{start: 0},
			Parent: make(map[string]string),
		},
	}
	w.queue = append(w.queue, start)

	// 3) Drain it layer by layer.
	return w.res, w.loop()
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		id := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, id)
		if err := w.expand(id); err != nil {
			return err
		}
	}
	return nil
}

// expand enqueues every unseen, unavoided neighbour of id within MaxHops.
func (w *walker) expand(id string) error {
	next := w.res.Hops[id] + 1
	if w.opts.MaxHops > 0 && next > w.opts.MaxHops {
		return nil
	}
	neighbors, err := w.graph.Neighbors(id)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrNeighbors, id, err)
	}
	for _, nb := range neighbors {
		if _, seen := w.res.Hops[nb]; seen {
			continue
		}
		if w.opts.Avoid != nil && w.opts.Avoid(nb) {
			continue
		}
		w.res.Hops[nb] = next
		w.res.Parent[nb] = id
		w.queue = append(w.queue, nb)
	}
	return nil
}

// Reachable returns every vertex reachable from start, start included,
// sorted by ID.
func Reachable(g Graph, start string) ([]string, error) {
	res, err := BFS(g, start)
	if err != nil {
		return nil, err
	}
	out := append([]string(nil), res.Order...)
	sort.Strings(out)

	return out, nil
}

// Components partitions ids into connected components. Each component is
// sorted; components are ordered by their smallest ID. Isolated vertices
// form singleton components.
//
// Complexity: O(V + E).
func Components(g Graph, ids []string) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	seen := make(map[string]bool, len(sorted))
	var out [][]string
	for _, id := range sorted {
		if seen[id] {
			continue
		}
		comp, err := Reachable(g, id)
		if err != nil {
			return nil, err
		}
		for _, v := range comp {
			seen[v] = true
		}
		out = append(out, comp)
	}

	return out, nil
}
