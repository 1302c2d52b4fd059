// SPDX-License-Identifier: MIT
//
// File: autoconnect.go
// Role: Distance-driven edge generation over a live network.
// Policy:
//   - Never moves nodes, never removes edges; only adds missing ones.
//   - SkipDrawn keeps waypoints of hand-drawn roads out of every pass.
//   - Every distance threshold is strict: a pair at exactly the threshold
//     is out of range.
//   - Ranking ties break by node ID ascending.

package autoconnect

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/roadnet/geom"
	"github.com/katalvlaran/roadnet/network"
	"github.com/katalvlaran/roadnet/prim_kruskal"
)

// ErrInvalidParam indicates a negative or NaN distance, or a negative k.
var ErrInvalidParam = errors.New("autoconnect: invalid parameter")

// ErrInvalidFilter indicates an unrecognised Filter value or name.
var ErrInvalidFilter = errors.New("autoconnect: invalid filter")

// Filter restricts which nodes take part in k-nearest linking and spanning
// tree construction.
type Filter uint8

const (
	// Any selects cities and waypoints.
	Any Filter = iota
	// CitiesOnly selects cities.
	CitiesOnly
	// WaypointsOnly selects waypoints.
	WaypointsOnly
)

// String returns "all", "city" or "waypoint".
func (f Filter) String() string {
	switch f {
	case Any:
		return "all"
	case CitiesOnly:
		return "city"
	case WaypointsOnly:
		return "waypoint"
	default:
		return fmt.Sprintf("filter(%d)", uint8(f))
	}
}

// ParseFilter converts "all", "city" or "waypoint" to a Filter.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "all", "any", "":
		return Any, nil
	case "city", "cities":
		return CitiesOnly, nil
	case "waypoint", "waypoints":
		return WaypointsOnly, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
}

// Match reports whether a node of kind k passes the filter.
func (f Filter) Match(k network.Kind) bool {
	switch f {
	case Any:
		return true
	case CitiesOnly:
		return k == network.City
	case WaypointsOnly:
		return k == network.Waypoint
	default:
		return false
	}
}

func (f Filter) valid() bool { return f <= WaypointsOnly }

// Option tunes a connection pass.
type Option func(*passOptions)

type passOptions struct {
	skipDrawn bool
	mst       []prim_kruskal.Option
}

// SkipDrawn leaves waypoints laid down by drawing a road out of the pass:
// they are neither linked from nor linked to.
func SkipDrawn() Option {
	return func(o *passOptions) { o.skipDrawn = true }
}

// WithMethod selects the spanning tree algorithm (prim_kruskal.MethodKruskal
// by default). Other passes ignore it.
func WithMethod(method string) Option {
	return func(o *passOptions) {
		o.mst = append(o.mst, prim_kruskal.WithMethod(method))
	}
}

func buildOptions(opts []Option) passOptions {
	var o passOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// takes reports whether node may be linked by this pass.
func (o passOptions) takes(node network.Node) bool {
	return !o.skipDrawn || !node.Drawn()
}

// Candidates returns the IDs of nodes passing f, sorted.
func Candidates(n *network.Network, f Filter, opts ...Option) []string {
	o := buildOptions(opts)
	var ids []string
	for _, node := range n.Nodes() {
		if f.Match(node.Kind) && o.takes(node) {
			ids = append(ids, node.ID)
		}
	}
	return ids
}

func checkDistance(name string, d float64) error {
	if math.IsNaN(d) || d < 0 {
		return fmt.Errorf("%w: %s=%g", ErrInvalidParam, name, d)
	}
	return nil
}

// link adds {a,b} unless it already exists and reports whether it did.
func link(n *network.Network, a, b string) (bool, error) {
	if n.HasEdge(a, b) {
		return false, nil
	}
	if err := n.AddEdge(a, b); err != nil {
		return false, err
	}
	return true, nil
}

// ConnectCitiesToNearestWaypoint links every city to its single nearest
// waypoint closer than maxDistance, unless that edge already exists.
// Cities with no waypoint in range are skipped. Returns edges added.
//
// Complexity: O(C·W).
func ConnectCitiesToNearestWaypoint(n *network.Network, maxDistance float64, opts ...Option) (int, error) {
	if err := checkDistance("maxDistance", maxDistance); err != nil {
		return 0, err
	}
	o := buildOptions(opts)

	// 1) Collect the eligible waypoints once, sorted by ID.
	var waypoints []network.Node
	for _, wp := range n.NodesOfKind(network.Waypoint) {
		if o.takes(wp) {
			waypoints = append(waypoints, wp)
		}
	}

	added := 0
	for _, city := range n.NodesOfKind(network.City) {
		// 2) Scan for the closest one in range; strict < keeps the
		// smaller ID on ties.
		best, bestDist := "", math.Inf(1)
		for _, wp := range waypoints {
			d := geom.Distance(city.Pos, wp.Pos)
			if d < maxDistance && d < bestDist {
				best, bestDist = wp.ID, d
			}
		}
		if best == "" {
			continue
		}
		// 3) Link unless the road is already there.
		ok, err := link(n, city.ID, best)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}

	return added, nil
}

// neighbor is a ranked candidate.
type neighbor struct {
	id   string
	dist float64
}

// KNearest ranks the other nodes passing f within maxDistance of id by
// (distance, ID) and returns at most k of them.
//
// Errors: network.ErrNodeNotFound, ErrInvalidParam, ErrInvalidFilter.
func KNearest(n *network.Network, id string, f Filter, k int, maxDistance float64, opts ...Option) ([]string, error) {
	if err := checkKNN(f, k, maxDistance); err != nil {
		return nil, err
	}
	node, ok := n.Node(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", network.ErrNodeNotFound, id)
	}
	ranked := rank(node, n.Nodes(), f, buildOptions(opts), k, maxDistance)
	out := make([]string, len(ranked))
	for i, nb := range ranked {
		out[i] = nb.id
	}

	return out, nil
}

func checkKNN(f Filter, k int, maxDistance float64) error {
	if !f.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidFilter, f)
	}
	if k < 0 {
		return fmt.Errorf("%w: k=%d", ErrInvalidParam, k)
	}
	return checkDistance("maxDistance", maxDistance)
}

func rank(node network.Node, all []network.Node, f Filter, o passOptions, k int, maxDistance float64) []neighbor {
	// 1) Keep the eligible peers strictly inside the radius.
	var cands []neighbor
	for _, other := range all {
		if other.ID == node.ID || !f.Match(other.Kind) || !o.takes(other) {
			continue
		}
		if d := geom.Distance(node.Pos, other.Pos); d < maxDistance {
			cands = append(cands, neighbor{id: other.ID, dist: d})
		}
	}
	// 2) Order by (distance, ID) and cut at k.
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].id < cands[j].id
	})
	if len(cands) > k {
		cands = cands[:k]
	}
	return cands
}

// ConnectKNearest visits every node passing f in ID order, ranks the other
// nodes passing f within maxDistance by (distance, ID), and links it to
// those of its k closest that are not already linked. Ranking ignores
// existing edges, so a second run adds nothing. Returns edges added.
//
// Complexity: O(V² log V).
func ConnectKNearest(n *network.Network, f Filter, k int, maxDistance float64, opts ...Option) (int, error) {
	if err := checkKNN(f, k, maxDistance); err != nil {
		return 0, err
	}
	o := buildOptions(opts)
	all := n.Nodes()
	added := 0
	for _, node := range all {
		if !f.Match(node.Kind) || !o.takes(node) {
			continue
		}
		for _, nb := range rank(node, all, f, o, k, maxDistance) {
			ok, err := link(n, node.ID, nb.id)
			if err != nil {
				return added, err
			}
			if ok {
				added++
			}
		}
	}

	return added, nil
}

// BuildSpanningTree builds the complete graph over candidates restricted to
// pairs closer than cutoff, computes its minimum spanning forest and adds
// every forest edge not already present. Fewer than two candidates add
// nothing. WithMethod selects the algorithm; SkipDrawn drops drawn
// waypoints from candidates.
//
// Errors: network.ErrUnknownNode for an unknown candidate, ErrInvalidParam.
// Complexity: O(C² log C).
func BuildSpanningTree(n *network.Network, candidates []string, cutoff float64, opts ...Option) (int, error) {
	if err := checkDistance("cutoff", cutoff); err != nil {
		return 0, err
	}
	o := buildOptions(opts)

	// 1) Resolve candidates, dropping repeats and excluded nodes.
	nodes := make([]network.Node, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, id := range candidates {
		node, ok := n.Node(id)
		if !ok {
			return 0, fmt.Errorf("%w: %q", network.ErrUnknownNode, id)
		}
		if !seen[id] && o.takes(node) {
			seen[id] = true
			nodes = append(nodes, node)
		}
	}
	if len(nodes) < 2 {
		return 0, nil
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	// 2) Every pair under the cutoff is a weighted candidate.
	ids := make([]string, len(nodes))
	var pairs []prim_kruskal.WeightedEdge
	for i := range nodes {
		ids[i] = nodes[i].ID
		for j := i + 1; j < len(nodes); j++ {
			if d := geom.Distance(nodes[i].Pos, nodes[j].Pos); d < cutoff {
				pairs = append(pairs, prim_kruskal.WeightedEdge{A: nodes[i].ID, B: nodes[j].ID, Weight: d})
			}
		}
	}

	// 3) Compute the forest and add what is missing.
	forest, err := prim_kruskal.Compute(ids, pairs, o.mst...)
	if err != nil {
		return 0, fmt.Errorf("autoconnect: spanning forest: %w", err)
	}
	added := 0
	for _, e := range forest.Edges {
		ok, err := link(n, e.A, e.B)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}

	return added, nil
}

// ConnectNearbyCities links every pair of cities closer than maxDistance
// that is not already linked.
//
// Complexity: O(C²).
func ConnectNearbyCities(n *network.Network, maxDistance float64) (int, error) {
	if err := checkDistance("maxDistance", maxDistance); err != nil {
		return 0, err
	}
	cities := n.NodesOfKind(network.City)
	added := 0
	for i := range cities {
		for j := i + 1; j < len(cities); j++ {
			if geom.Distance(cities[i].Pos, cities[j].Pos) >= maxDistance {
				continue
			}
			ok, err := link(n, cities[i].ID, cities[j].ID)
			if err != nil {
				return added, err
			}
			if ok {
				added++
			}
		}
	}

	return added, nil
}
