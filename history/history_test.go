package history_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadnet/geom"
	"github.com/katalvlaran/roadnet/history"
	"github.com/katalvlaran/roadnet/network"
)

func base(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	require.NoError(t, n.AddNode("A", network.City, geom.Pt(0, 0)))
	require.NoError(t, n.AddNode("B", network.Waypoint, geom.Pt(10, 0)))
	require.NoError(t, n.AddNode("C", network.City, geom.Pt(10, 10)))
	return n
}

// addEdge performs and records one edge insertion.
func addEdge(t *testing.T, n *network.Network, m *history.Manager, a, b string) {
	t.Helper()
	before := n.EdgeSet()
	require.NoError(t, n.AddEdge(a, b))
	m.Record(history.NewCommand(history.KindCreateEdge, a+"-"+b, 1,
		history.EdgeSetChange{Before: before, After: n.EdgeSet()}))
}

func TestEmptyStacks(t *testing.T) {
	m := history.NewManager(0)
	assert.Equal(t, history.DefaultMaxSize, m.MaxSize())

	_, err := m.Undo(network.New())
	assert.ErrorIs(t, err, history.ErrNothingToUndo)
	_, err = m.Redo(network.New())
	assert.ErrorIs(t, err, history.ErrNothingToRedo)
	assert.ErrorIs(t, m.Amend(history.Command{}), history.ErrNothingToUndo)

	_, ok := m.Peek()
	assert.False(t, ok)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	n := base(t)
	m := history.NewManager(10)
	pre := n.Snapshot()

	addEdge(t, n, m, "A", "B")
	addEdge(t, n, m, "B", "C")
	before := n.EdgeSet()
	require.NoError(t, n.MoveNode("B", geom.Pt(5, 5)))
	m.Record(history.NewCommand(history.KindMoveNode, "B", 1,
		history.MoveChange{ID: "B", From: geom.Pt(10, 0), To: geom.Pt(5, 5)}))
	preDelete := n.Snapshot()
	_, err := n.RemoveNode("C")
	require.NoError(t, err)
	m.Record(history.NewCommand(history.KindDeleteWaypoint, "C", 1,
		history.StateChange{Before: preDelete, After: n.Snapshot()}))
	post := n.Snapshot()
	assert.NotEqual(t, before, n.EdgeSet())

	for i := 0; i < 4; i++ {
		_, err := m.Undo(n)
		require.NoError(t, err, "undo %d", i)
	}
	assert.Equal(t, pre, n.Snapshot())
	assert.False(t, m.CanUndo())
	assert.Equal(t, 4, m.RedoLen())

	for i := 0; i < 4; i++ {
		_, err := m.Redo(n)
		require.NoError(t, err, "redo %d", i)
	}
	assert.Equal(t, post, n.Snapshot())
	assert.False(t, m.CanRedo())
}

func TestRecordClearsRedo(t *testing.T) {
	n := base(t)
	m := history.NewManager(10)

	addEdge(t, n, m, "A", "B")
	_, err := m.Undo(n)
	require.NoError(t, err)
	require.True(t, m.CanRedo())

	addEdge(t, n, m, "B", "C")
	assert.False(t, m.CanRedo())
	_, err = m.Redo(n)
	assert.ErrorIs(t, err, history.ErrNothingToRedo)
}

func TestBoundedDepth(t *testing.T) {
	m := history.NewManager(3)
	for i := 0; i < 5; i++ {
		m.Record(history.NewCommand(history.KindAddNode, fmt.Sprint(i), 1, history.EdgeSetChange{}))
	}
	require.Equal(t, 3, m.Len())

	entries := m.Entries()
	assert.Equal(t, "4", entries[0].Description, "newest first")
	assert.Equal(t, "2", entries[2].Description, "oldest two evicted")
}

func TestFailedUndoKeepsStacks(t *testing.T) {
	n := base(t)
	m := history.NewManager(10)
	m.Record(history.NewCommand(history.KindMoveNode, "ghost", 1,
		history.MoveChange{ID: "ghost", From: geom.Pt(1, 1), To: geom.Pt(2, 2)}))

	_, err := m.Undo(n)
	assert.ErrorIs(t, err, network.ErrNodeNotFound)
	assert.Equal(t, 1, m.Len())
	assert.False(t, m.CanRedo())
}

func TestAmendAndPeek(t *testing.T) {
	m := history.NewManager(10)
	cmd := history.NewCommand(history.KindMoveNode, "B", 1,
		history.MoveChange{ID: "B", From: geom.Pt(0, 0), To: geom.Pt(1, 1)})
	m.Record(cmd)

	cmd.Change = history.MoveChange{ID: "B", From: geom.Pt(0, 0), To: geom.Pt(9, 9)}
	require.NoError(t, m.Amend(cmd))

	top, ok := m.Peek()
	require.True(t, ok)
	assert.Equal(t, cmd.ID, top.ID)
	assert.Equal(t, geom.Pt(9, 9), top.Change.(history.MoveChange).To)
	assert.Equal(t, 1, m.Len())
}

func TestNewCommand(t *testing.T) {
	a := history.NewCommand(history.KindDrawRoad, "x", 3, history.EdgeSetChange{})
	b := history.NewCommand(history.KindDrawRoad, "x", 3, history.EdgeSetChange{})
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, "draw-road: x", a.String())
}

func TestClear(t *testing.T) {
	n := base(t)
	m := history.NewManager(10)
	addEdge(t, n, m, "A", "B")
	_, err := m.Undo(n)
	require.NoError(t, err)
	addEdge(t, n, m, "A", "C")

	m.Clear()
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
	assert.True(t, n.HasEdge("A", "C"), "network untouched")
}
