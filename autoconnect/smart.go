package autoconnect

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/roadnet/network"
	"github.com/katalvlaran/roadnet/prim_kruskal"
)

// Params holds the thresholds of the smart generation pipeline.
type Params struct {
	NearestWaypoint float64 // step 1: city → nearest waypoint radius
	K               int     // step 2: neighbours per waypoint
	KNNRadius       float64 // step 2: neighbour radius
	TreeCutoff      float64 // step 3: spanning tree pair cutoff
	CityLink        float64 // step 4: city ↔ city radius
	Method          string  // step 3: prim_kruskal.MethodKruskal or MethodPrim
	ProtectDrawn    bool    // steps 1-3: leave drawn waypoints alone
}

// Options returns the pass options p implies.
func (p Params) Options() []Option {
	method := p.Method
	if method == "" {
		method = prim_kruskal.MethodKruskal
	}
	opts := []Option{WithMethod(method)}
	if p.ProtectDrawn {
		opts = append(opts, SkipDrawn())
	}
	return opts
}

// DefaultParams returns the thresholds the road editor has always used.
func DefaultParams() Params {
	return Params{
		NearestWaypoint: 100,
		K:               3,
		KNNRadius:       150,
		TreeCutoff:      200,
		CityLink:        80,
		Method:          prim_kruskal.MethodKruskal,
		ProtectDrawn:    true,
	}
}

// Report counts the edges each step added.
type Report struct {
	NearestWaypoint int `json:"nearest_waypoint"`
	KNearest        int `json:"k_nearest"`
	SpanningTree    int `json:"spanning_tree"`
	CityLinks       int `json:"city_links"`
}

// Total is the sum over all steps.
func (r Report) Total() int {
	return r.NearestWaypoint + r.KNearest + r.SpanningTree + r.CityLinks
}

// SmartGenerate runs, in order:
//  1. ConnectCitiesToNearestWaypoint(p.NearestWaypoint)
//  2. ConnectKNearest over waypoints (p.K, p.KNNRadius)
//  3. BuildSpanningTree over waypoints (p.TreeCutoff)
//  4. ConnectNearbyCities(p.CityLink)
//
// With p.ProtectDrawn, steps 1 to 3 leave drawn waypoints untouched.
//
// Steps are independent: a failing step is recorded and the next one still
// runs. The returned error joins every step failure; the Report holds what
// each step did add.
func SmartGenerate(n *network.Network, p Params) (Report, error) {
	var (
		r    Report
		errs []error
		err  error
	)

	opts := p.Options()
	if r.NearestWaypoint, err = ConnectCitiesToNearestWaypoint(n, p.NearestWaypoint, opts...); err != nil {
		errs = append(errs, fmt.Errorf("nearest waypoint: %w", err))
	}
	if r.KNearest, err = ConnectKNearest(n, WaypointsOnly, p.K, p.KNNRadius, opts...); err != nil {
		errs = append(errs, fmt.Errorf("k-nearest: %w", err))
	}
	if r.SpanningTree, err = BuildSpanningTree(n, Candidates(n, WaypointsOnly, opts...), p.TreeCutoff, opts...); err != nil {
		errs = append(errs, fmt.Errorf("spanning tree: %w", err))
	}
	if r.CityLinks, err = ConnectNearbyCities(n, p.CityLink); err != nil {
		errs = append(errs, fmt.Errorf("city links: %w", err))
	}

	return r, errors.Join(errs...)
}
