package roadnet

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/roadnet/autoconnect"
	"github.com/katalvlaran/roadnet/bfs"
	"github.com/katalvlaran/roadnet/dijkstra"
	"github.com/katalvlaran/roadnet/history"
	"github.com/katalvlaran/roadnet/network"
)

// Stats extends network.Stats with connectivity and history depth.
type Stats struct {
	network.Stats
	Components   int `json:"components"`
	UndoDepth    int `json:"undo_depth"`
	RedoDepth    int `json:"redo_depth"`
	HistoryLimit int `json:"history_limit"`
}

// Undo reverts the most recent command.
//
// Errors: history.ErrNothingToUndo.
func (s *Session) Undo() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()

	cmd, err := s.hist.Undo(s.net)
	if err != nil {
		return Result{}, err
	}
	s.log.Debug("undo", slog.String("kind", string(cmd.Kind)), slog.String("id", cmd.ID.String()))

	return s.publish(Result{Kind: cmd.Kind, Count: cmd.Count, Message: "Undone: " + cmd.Description}), nil
}

// Redo re-applies the most recently undone command.
//
// Errors: history.ErrNothingToRedo.
func (s *Session) Redo() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()

	cmd, err := s.hist.Redo(s.net)
	if err != nil {
		return Result{}, err
	}
	s.log.Debug("redo", slog.String("kind", string(cmd.Kind)), slog.String("id", cmd.ID.String()))

	return s.publish(Result{Kind: cmd.Kind, Count: cmd.Count, Message: "Redone: " + cmd.Description}), nil
}

// ClearHistory empties both stacks; the network is untouched.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()
	s.hist.Clear()
}

// CanUndo reports whether Undo would succeed.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.CanUndo()
}

// CanRedo reports whether Redo would succeed.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.CanRedo()
}

// HistoryEntries lists the undo stack, newest first.
func (s *Session) HistoryEntries() []history.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.Entries()
}

// ShortestPath returns the shortest road sequence from start to end.
//
// Errors: dijkstra.ErrUnknownNode, dijkstra.ErrNoPath.
func (s *Session) ShortestPath(start, end string, opts ...dijkstra.Option) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return dijkstra.ShortestPath(s.net, start, end, opts...)
}

// Route is ShortestPath with per-road segments, cities passed and the
// length scaled by the session scale. opts may cap the distance with
// dijkstra.WithMaxDistance or override the scale.
func (s *Session) Route(start, end string, opts ...dijkstra.Option) (*dijkstra.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	opts = append([]dijkstra.Option{dijkstra.WithScale(s.opts.Scale)}, opts...)
	return dijkstra.Route(s.net, start, end, opts...)
}

// FewestRoads returns the path from start to end that uses the fewest
// roads, ignoring length, and never passes through a node in avoid.
//
// Errors: network.ErrNodeNotFound, bfs.ErrNotReached.
func (s *Session) FewestRoads(start, end string, avoid ...string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.net.HasNode(end) {
		return nil, fmt.Errorf("%w: %q", network.ErrNodeNotFound, end)
	}
	res, err := bfs.BFS(s.net, start, bfs.WithAvoid(avoid...))
	if err != nil {
		return nil, notFound(err)
	}
	return res.PathTo(end)
}

// Within lists the nodes at most hops roads away from id, nearest first.
// hops == 0 lists the whole component.
//
// Errors: network.ErrNodeNotFound, bfs.ErrBadHops.
func (s *Session) Within(id string, hops int) ([]bfs.Hop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := bfs.BFS(s.net, id, bfs.WithMaxHops(hops))
	if err != nil {
		return nil, notFound(err)
	}
	return res.Within(), nil
}

// Nearest ranks up to k nodes matching f closer than maxDistance to id,
// linked or not. Drawn waypoints are left out while Params.ProtectDrawn
// is set, matching what auto-connection would consider.
//
// Errors: network.ErrNodeNotFound, autoconnect.ErrInvalidParam,
// autoconnect.ErrInvalidFilter.
func (s *Session) Nearest(id string, f autoconnect.Filter, k int, maxDistance float64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return autoconnect.KNearest(s.net, id, f, k, maxDistance, s.opts.Params.Options()...)
}

// Neighbors lists the nodes directly connected to id, sorted.
func (s *Session) Neighbors(id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.Neighbors(id)
}

// EdgeWeight is the current length of road a-b.
func (s *Session) EdgeWeight(a, b string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.EdgeWeight(a, b)
}

// Reachable lists every node connected to id by roads, id included.
func (s *Session) Reachable(id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids, err := bfs.Reachable(s.net, id)
	return ids, notFound(err)
}

// Components partitions every node into connected groups.
func (s *Session) Components() ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return bfs.Components(s.net, nodeIDs(s.net))
}

// Stats summarises the network and the history.
func (s *Session) Stats() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comps, err := bfs.Components(s.net, nodeIDs(s.net))
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Stats:        s.net.Stats(),
		Components:   len(comps),
		UndoDepth:    s.hist.Len(),
		RedoDepth:    s.hist.RedoLen(),
		HistoryLimit: s.hist.MaxSize(),
	}, nil
}

// Snapshot returns a value copy of the network.
func (s *Session) Snapshot() network.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.Snapshot()
}

// Node looks up one node.
func (s *Session) Node(id string) (network.Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.Node(id)
}

// notFound reports a missing BFS start as network.ErrNodeNotFound.
func notFound(err error) error {
	if errors.Is(err, bfs.ErrStartNotFound) {
		return fmt.Errorf("%w: %v", network.ErrNodeNotFound, err)
	}
	return err
}

func nodeIDs(n *network.Network) []string {
	nodes := n.Nodes()
	ids := make([]string, len(nodes))
	for i, node := range nodes {
		ids[i] = node.ID
	}
	return ids
}
