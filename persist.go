package roadnet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/roadnet/history"
	"github.com/katalvlaran/roadnet/network"
	"github.com/katalvlaran/roadnet/store"
)

// Load replaces waypoints and roads with the saved document. Cities stay:
// the document may move them but cannot remove them. The load is one
// undoable command. When nothing was saved the network is kept and a
// zero Result is returned.
func (s *Session) Load(ctx context.Context, gw store.Gateway) (Result, error) {
	doc, err := gw.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		s.log.Info("no saved network, keeping current state")
		return Result{Kind: history.KindLoad, Message: "Nothing saved yet"}, nil
	}
	if err != nil {
		return Result{}, s.fail("load", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()

	snap, err := doc.Snapshot(s.net.NodesOfKind(network.City))
	if err != nil {
		return Result{}, s.fail("load", err)
	}
	before := s.net.Snapshot()
	loaded := network.New()
	if err := loaded.Restore(snap); err != nil {
		return Result{}, s.fail("load", fmt.Errorf("%w: %v", store.ErrInvalidDocument, err))
	}
	s.net = loaded

	st := s.net.Stats()
	s.log.Info("network loaded",
		slog.Int("waypoints", st.Waypoints),
		slog.Int("roads", st.Edges))
	cmd := history.NewCommand(history.KindLoad,
		fmt.Sprintf("load %d waypoints, %d roads", st.Waypoints, st.Edges), st.Edges,
		history.StateChange{Before: before, After: s.net.Snapshot()})

	return s.record(cmd, fmt.Sprintf("Loaded %d waypoints and %d roads", st.Waypoints, st.Edges)), nil
}

// Save writes the current network through gw. Saving is not recorded.
func (s *Session) Save(ctx context.Context, gw store.Gateway) error {
	s.mu.Lock()
	doc := store.FromNetwork(s.net)
	s.mu.Unlock()

	if err := gw.Save(ctx, doc); err != nil {
		return s.fail("save", err)
	}
	s.log.Info("network saved", slog.Int("nodes", len(doc.Nodes)), slog.Int("roads", len(doc.Edges)))

	return nil
}
