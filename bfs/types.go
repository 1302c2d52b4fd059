package bfs

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartNotFound is returned when the start ID is absent.
	ErrStartNotFound = errors.New("bfs: start node not found")

	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrBadHops is returned for a negative hop limit.
	ErrBadHops = errors.New("bfs: hop limit cannot be negative")

	// ErrNotReached is returned by PathTo for a node the search never saw.
	ErrNotReached = errors.New("bfs: node not reached")
)

// Graph is the adjacency view BFS walks. *network.Network satisfies it.
type Graph interface {
	HasNode(id string) bool
	Neighbors(id string) ([]string, error)
}

// Options bound a search. The zero value explores the whole component.
type Options struct {
	// MaxHops, if > 0, leaves nodes more than MaxHops roads away unvisited.
	MaxHops int

	// Avoid, if set, keeps the search out of every node it returns true
	// for. The start node is always entered.
	Avoid func(id string) bool

	err error
}

// Option configures a search.
type Option func(*Options)

// WithMaxHops limits the search to nodes at most h roads from the start.
// h == 0 removes the limit; h < 0 surfaces as ErrBadHops.
func WithMaxHops(h int) Option {
	return func(o *Options) {
		if h < 0 {
			o.err = fmt.Errorf("%w: %d", ErrBadHops, h)
			return
		}
		o.MaxHops = h
	}
}

// WithAvoid routes the search around the listed nodes.
func WithAvoid(ids ...string) Option {
	skip := make(map[string]bool, len(ids))
	for _, id := range ids {
		skip[id] = true
	}
	return func(o *Options) {
		if len(skip) > 0 {
			o.Avoid = func(id string) bool { return skip[id] }
		}
	}
}

// Hop is a node and its road count from the start.
type Hop struct {
	ID   string `json:"id"`
	Hops int    `json:"hops"`
}

// Result is the BFS tree:
//   - Order: nodes in visit sequence.
//   - Hops: road count from the start per visited node.
//   - Parent: predecessor in the BFS tree; the start has none.
type Result struct {
	Start  string
	Order  []string
	Hops   map[string]int
	Parent map[string]string
}

// PathTo returns the fewest-roads path from the start to dest, both
// inclusive. Ties resolve toward the smaller neighbour ID because the
// search expands neighbours in ID order.
//
// Errors: ErrNotReached.
func (r *Result) PathTo(dest string) ([]string, error) {
	if _, ok := r.Hops[dest]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotReached, dest)
	}
	var path []string
	for cur, ok := dest, true; ok; cur, ok = r.Parent[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// Within lists every visited node except the start, ordered by
// (hops, ID).
func (r *Result) Within() []Hop {
	out := make([]Hop, 0, len(r.Order))
	for _, id := range r.Order {
		if id != r.Start {
			out = append(out, Hop{ID: id, Hops: r.Hops[id]})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hops != out[j].Hops {
			return out[i].Hops < out[j].Hops
		}
		return out[i].ID < out[j].ID
	})

	return out
}
