package roadnet

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/roadnet/geom"
	"github.com/katalvlaran/roadnet/history"
	"github.com/katalvlaran/roadnet/network"
)

// freeID returns the first prefix<n> from *next on that n does not hold
// and advances *next past it. Callers hold mu.
func freeID(n *network.Network, prefix string, next *int) string {
	for {
		id := prefix + strconv.Itoa(*next)
		*next++
		if !n.HasNode(id) {
			return id
		}
	}
}

// AddWaypoint creates an auto-named waypoint at pos and returns its ID.
func (s *Session) AddWaypoint(pos geom.Point) (string, Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()

	before := s.net.Snapshot()
	saved := s.nextWaypoint
	id := freeID(s.net, "wp_", &s.nextWaypoint)
	if err := s.net.AddNode(id, network.Waypoint, pos); err != nil {
		s.nextWaypoint = saved
		return "", Result{}, s.fail("add-waypoint", err)
	}
	cmd := history.NewCommand(history.KindAddWaypoint, "add "+id, 1,
		history.StateChange{Before: before, After: s.net.Snapshot()})

	return id, s.record(cmd, fmt.Sprintf("Added waypoint %s", id)), nil
}

// AddNode creates a node with an explicit ID.
//
// Errors: network.ErrEmptyNodeID, network.ErrDuplicateNode, network.ErrInvalidKind.
func (s *Session) AddNode(id string, kind network.Kind, pos geom.Point) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()

	before := s.net.Snapshot()
	if err := s.net.AddNode(id, kind, pos); err != nil {
		return Result{}, s.fail("add-node", err)
	}
	cmd := history.NewCommand(history.KindAddNode, fmt.Sprintf("add %s %s", kind, id), 1,
		history.StateChange{Before: before, After: s.net.Snapshot()})

	return s.record(cmd, fmt.Sprintf("Added %s %s", kind, id)), nil
}

// CreateEdge adds the road a-b.
//
// Errors: network.ErrSelfLoop, network.ErrUnknownNode, network.ErrDuplicateEdge.
func (s *Session) CreateEdge(a, b string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()

	before := s.net.EdgeSet()
	if err := s.net.AddEdge(a, b); err != nil {
		return Result{}, s.fail("create-edge", err)
	}
	e := network.NewEdge(a, b)
	cmd := history.NewCommand(history.KindCreateEdge, "connect "+e.String(), 1,
		history.EdgeSetChange{Before: before, After: s.net.EdgeSet()})

	return s.record(cmd, "Connected "+e.String()), nil
}

// DeleteEdge removes the road a-b.
//
// Errors: network.ErrEdgeNotFound.
func (s *Session) DeleteEdge(a, b string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()

	before := s.net.EdgeSet()
	if err := s.net.RemoveEdge(a, b); err != nil {
		return Result{}, s.fail("delete-edge", err)
	}
	e := network.NewEdge(a, b)
	cmd := history.NewCommand(history.KindDeleteEdge, "disconnect "+e.String(), 1,
		history.EdgeSetChange{Before: before, After: s.net.EdgeSet()})

	return s.record(cmd, "Disconnected "+e.String()), nil
}

// MoveNode moves id to pos. Consecutive moves of the same node form one
// gesture and share a single history entry until EndMove or any other
// mutation. Moving a node to where it already is does nothing.
//
// Errors: network.ErrNodeNotFound, network.ErrInvalidPosition.
func (s *Session) MoveNode(id string, pos geom.Point) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, err := s.net.Position(id)
	if err != nil {
		return Result{}, s.fail("move-node", err)
	}
	if from == pos {
		return s.publish(Result{Kind: history.KindMoveNode, Message: "No movement"}), nil
	}

	if s.moving == id {
		if top, ok := s.hist.Peek(); ok {
			if mc, ok := top.Change.(history.MoveChange); ok && mc.ID == id {
				if err := s.net.MoveNode(id, pos); err != nil {
					return Result{}, s.fail("move-node", err)
				}
				mc.To = pos
				top.Change = mc
				// Peek succeeded, Amend cannot fail.
				_ = s.hist.Amend(top)
				return s.publish(Result{Kind: history.KindMoveNode, Count: 1, Message: "Moved " + id}), nil
			}
		}
	}

	if err := s.net.MoveNode(id, pos); err != nil {
		return Result{}, s.fail("move-node", err)
	}
	s.moving = id
	cmd := history.NewCommand(history.KindMoveNode, "move "+id, 1,
		history.MoveChange{ID: id, From: from, To: pos})

	return s.record(cmd, "Moved "+id), nil
}

// EndMove closes the current move gesture; the next MoveNode starts a new
// history entry.
func (s *Session) EndMove() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()
}

// DeleteWaypoint removes a waypoint and every road touching it as one
// command.
//
// Errors: network.ErrNodeNotFound, ErrNotWaypoint.
func (s *Session) DeleteWaypoint(id string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()

	node, ok := s.net.Node(id)
	if !ok {
		return Result{}, s.fail("delete-waypoint", fmt.Errorf("%w: %q", network.ErrNodeNotFound, id))
	}
	if node.Kind != network.Waypoint {
		return Result{}, s.fail("delete-waypoint", fmt.Errorf("%w: %q", ErrNotWaypoint, id))
	}

	before := s.net.Snapshot()
	removed, err := s.net.RemoveNode(id)
	if err != nil {
		return Result{}, s.fail("delete-waypoint", err)
	}
	cmd := history.NewCommand(history.KindDeleteWaypoint,
		fmt.Sprintf("delete %s (%d roads)", id, len(removed)), len(removed)+1,
		history.StateChange{Before: before, After: s.net.Snapshot()})

	return s.record(cmd, fmt.Sprintf("Deleted %s and %d roads", id, len(removed))), nil
}

// ClearConnections removes every road touching id and keeps the node.
// A node without roads yields a zero Result and no history entry.
//
// Errors: network.ErrNodeNotFound.
func (s *Session) ClearConnections(id string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()

	incident, err := s.net.IncidentEdges(id)
	if err != nil {
		return Result{}, s.fail("clear-connections", err)
	}
	if len(incident) == 0 {
		return s.publish(Result{Kind: history.KindClearConnections, Message: id + " has no roads"}), nil
	}

	before := s.net.EdgeSet()
	for _, e := range incident {
		if err := s.net.RemoveEdge(e.A, e.B); err != nil {
			// undo the partial removal
			_ = s.net.ReplaceEdges(before)
			return Result{}, s.fail("clear-connections", err)
		}
	}
	cmd := history.NewCommand(history.KindClearConnections,
		fmt.Sprintf("clear %s (%d roads)", id, len(incident)), len(incident),
		history.EdgeSetChange{Before: before, After: s.net.EdgeSet()})

	return s.record(cmd, fmt.Sprintf("Removed %d roads from %s", len(incident), id)), nil
}

// DrawRoad turns a freehand stroke into waypoints chained by roads.
//
// The stroke starts at node from; points are resampled every Spacing
// units, a drawn_wp_<n> waypoint is created per sample and the chain
// from → drawn_wp… → to is connected. With to == "" the chain ends at the
// last waypoint. The whole road is one command. Auto-connection leaves
// these waypoints alone while Params.ProtectDrawn is set.
//
// Errors: network.ErrNodeNotFound for from or to, ErrEmptyRoad,
// network.ErrInvalidPosition for a non-finite stroke point.
func (s *Session) DrawRoad(from string, points []geom.Point, to string) ([]string, Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endGesture()

	start, err := s.net.Position(from)
	if err != nil {
		return nil, Result{}, s.fail("draw-road", err)
	}
	for i, p := range points {
		if !p.Finite() {
			return nil, Result{}, s.fail("draw-road",
				fmt.Errorf("%w: stroke point %d (%g, %g)", network.ErrInvalidPosition, i, p.X, p.Y))
		}
	}
	stroke := append([]geom.Point{start}, points...)
	if to != "" {
		end, err := s.net.Position(to)
		if err != nil {
			return nil, Result{}, s.fail("draw-road", err)
		}
		stroke = append(stroke, end)
	}
	samples := geom.Resample(stroke, s.opts.Spacing)
	if to != "" && len(samples) > 0 {
		// the final sample is to itself
		samples = samples[:len(samples)-1]
	}
	if len(samples) == 0 && (to == "" || to == from) {
		return nil, Result{}, s.fail("draw-road", ErrEmptyRoad)
	}

	before := s.net.Snapshot()
	work := s.net.Clone()
	saved := s.nextDrawn
	created := make([]string, 0, len(samples))
	prev, added := from, 0
	chain := func(a, b string) error {
		if work.HasEdge(a, b) {
			return nil
		}
		if err := work.AddEdge(a, b); err != nil {
			return err
		}
		added++
		return nil
	}
	for _, p := range samples {
		id := freeID(work, network.DrawnPrefix, &s.nextDrawn)
		if err := work.AddNode(id, network.Waypoint, p); err != nil {
			s.nextDrawn = saved
			return nil, Result{}, s.fail("draw-road", err)
		}
		if err := chain(prev, id); err != nil {
			s.nextDrawn = saved
			return nil, Result{}, s.fail("draw-road", err)
		}
		created = append(created, id)
		prev = id
	}
	if to != "" {
		if err := chain(prev, to); err != nil {
			s.nextDrawn = saved
			return nil, Result{}, s.fail("draw-road", err)
		}
	}
	if len(created) == 0 && added == 0 {
		return nil, s.publish(Result{Kind: history.KindDrawRoad, Message: "Road already exists"}), nil
	}

	s.net = work
	desc := fmt.Sprintf("road from %s (%d waypoints)", from, len(created))
	if to != "" {
		desc = fmt.Sprintf("road %s to %s (%d waypoints)", from, to, len(created))
	}
	cmd := history.NewCommand(history.KindDrawRoad, desc, len(created),
		history.StateChange{Before: before, After: s.net.Snapshot()})

	return created, s.record(cmd, fmt.Sprintf("Drew road with %d waypoints", len(created))), nil
}
