// SPDX-License-Identifier: MIT
//
// File: command.go
// Role: Reversible commands and the three change payloads.
// Policy:
//   - Payloads are stored by value; undo and redo never re-run algorithms.

package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/roadnet/geom"
	"github.com/katalvlaran/roadnet/network"
)

// Kind names the user-level operation a command records.
type Kind string

// Recorded operation kinds.
const (
	KindAddNode          Kind = "add-node"
	KindAddWaypoint      Kind = "add-waypoint"
	KindCreateEdge       Kind = "create-edge"
	KindDeleteEdge       Kind = "delete-edge"
	KindMoveNode         Kind = "move-node"
	KindDeleteWaypoint   Kind = "delete-waypoint"
	KindClearConnections Kind = "clear-connections"
	KindDrawRoad         Kind = "draw-road"
	KindConnectCities    Kind = "auto-connect-cities"
	KindConnectKNearest  Kind = "auto-connect-k-nearest"
	KindSpanningTree     Kind = "build-spanning-tree"
	KindSmartGenerate    Kind = "smart-generation"
	KindLoad             Kind = "load-config"
)

// Change is the reversible payload of a command.
// Apply moves the network from the before-state to the after-state;
// Revert does the opposite. Both are atomic: on error the network is
// unchanged.
type Change interface {
	Apply(n *network.Network) error
	Revert(n *network.Network) error
}

// EdgeSetChange records the full edge set before and after a command that
// only added or removed edges.
type EdgeSetChange struct {
	Before []network.Edge
	After  []network.Edge
}

// Apply installs After.
func (c EdgeSetChange) Apply(n *network.Network) error { return n.ReplaceEdges(c.After) }

// Revert installs Before.
func (c EdgeSetChange) Revert(n *network.Network) error { return n.ReplaceEdges(c.Before) }

// MoveChange records one node's position before and after a move gesture.
type MoveChange struct {
	ID   string
	From geom.Point
	To   geom.Point
}

// Apply moves the node to To.
func (c MoveChange) Apply(n *network.Network) error { return n.MoveNode(c.ID, c.To) }

// Revert moves the node back to From.
func (c MoveChange) Revert(n *network.Network) error { return n.MoveNode(c.ID, c.From) }

// StateChange records the whole network before and after a command that
// created or removed nodes.
type StateChange struct {
	Before network.Snapshot
	After  network.Snapshot
}

// Apply restores After.
func (c StateChange) Apply(n *network.Network) error { return n.Restore(c.After) }

// Revert restores Before.
func (c StateChange) Revert(n *network.Network) error { return n.Restore(c.Before) }

// Command is one undoable history entry.
type Command struct {
	ID          uuid.UUID
	Kind        Kind
	Description string
	Count       int // entities affected (edges added, nodes created, ...)
	CreatedAt   time.Time
	Change      Change
}

// NewCommand stamps a fresh ID and creation time.
func NewCommand(kind Kind, description string, count int, change Change) Command {
	return Command{
		ID:          uuid.New(),
		Kind:        kind,
		Description: description,
		Count:       count,
		CreatedAt:   time.Now(),
		Change:      change,
	}
}

// String renders "kind: description".
func (c Command) String() string {
	return fmt.Sprintf("%s: %s", c.Kind, c.Description)
}
