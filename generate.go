package roadnet

import (
	"fmt"

	"github.com/katalvlaran/roadnet/autoconnect"
	"github.com/katalvlaran/roadnet/history"
	"github.com/katalvlaran/roadnet/network"
	"github.com/katalvlaran/roadnet/prim_kruskal"
)

// generate runs fn on a copy of the network. When fn adds at least one
// edge the copy becomes the live network and one command is recorded.
// A failing fn discards the copy unless keepPartial is set and edges were
// added, in which case the partial result is committed and the error is
// still returned. Callers hold mu.
func (s *Session) generate(kind history.Kind, desc string, keepPartial bool,
	fn func(n *network.Network) (int, error)) (Result, error) {
	s.endGesture()

	before := s.net.EdgeSet()
	work := s.net.Clone()
	added, err := fn(work)
	if err != nil && (!keepPartial || added == 0) {
		return Result{}, s.fail(string(kind), err)
	}
	if added == 0 {
		return s.publish(Result{Kind: kind, Message: "No new roads"}), nil
	}

	s.net = work
	cmd := history.NewCommand(kind, fmt.Sprintf("%s (+%d)", desc, added), added,
		history.EdgeSetChange{Before: before, After: s.net.EdgeSet()})
	res := s.record(cmd, fmt.Sprintf("Added %d roads", added))
	if err != nil {
		return res, s.fail(string(kind), err)
	}

	return res, nil
}

// ConnectCitiesToNearestWaypoint links every city to its nearest waypoint
// closer than maxDistance. Drawn waypoints are skipped while
// Params.ProtectDrawn is set, here and in the other generators.
func (s *Session) ConnectCitiesToNearestWaypoint(maxDistance float64) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.generate(history.KindConnectCities, "connect cities to nearest waypoint", false,
		func(n *network.Network) (int, error) {
			return autoconnect.ConnectCitiesToNearestWaypoint(n, maxDistance, s.opts.Params.Options()...)
		})
}

// ConnectKNearest links each node matching f to its k nearest peers within
// maxDistance.
func (s *Session) ConnectKNearest(f autoconnect.Filter, k int, maxDistance float64) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.generate(history.KindConnectKNearest, fmt.Sprintf("connect %d nearest (%s)", k, f), false,
		func(n *network.Network) (int, error) {
			return autoconnect.ConnectKNearest(n, f, k, maxDistance, s.opts.Params.Options()...)
		})
}

// BuildSpanningTree adds the missing edges of a minimum spanning forest
// over candidates, considering only pairs closer than cutoff. A nil
// candidates slice means every waypoint.
func (s *Session) BuildSpanningTree(candidates []string, cutoff float64) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opts := s.opts.Params.Options()
	if candidates == nil {
		candidates = autoconnect.Candidates(s.net, autoconnect.WaypointsOnly, opts...)
	}
	method := s.opts.Params.Method
	if method == "" {
		method = prim_kruskal.MethodKruskal
	}

	return s.generate(history.KindSpanningTree, "spanning tree ("+method+")", false,
		func(n *network.Network) (int, error) {
			return autoconnect.BuildSpanningTree(n, candidates, cutoff, opts...)
		})
}

// SmartGenerate runs the full generation pipeline with the configured
// thresholds. Steps that succeed are kept even when a later one fails;
// the error then joins every step failure.
func (s *Session) SmartGenerate() (autoconnect.Report, Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var report autoconnect.Report
	res, err := s.generate(history.KindSmartGenerate, "smart generation", true,
		func(n *network.Network) (int, error) {
			r, err := autoconnect.SmartGenerate(n, s.opts.Params)
			report = r
			return r.Total(), err
		})

	return report, res, err
}
