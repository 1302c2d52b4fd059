// SPDX-License-Identifier: MIT

package history

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/roadnet/network"
)

// DefaultMaxSize is the undo depth used when none is configured.
const DefaultMaxSize = 100

var (
	// ErrNothingToUndo is returned by Undo on an empty undo stack.
	ErrNothingToUndo = errors.New("history: nothing to undo")

	// ErrNothingToRedo is returned by Redo on an empty redo stack.
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// Manager holds bounded undo and redo stacks.
//
// Recording a command clears the redo stack; once the undo stack exceeds
// its bound, the oldest entry is evicted. Manager holds no lock.
type Manager struct {
	undo []Command
	redo []Command
	max  int
}

// NewManager returns a Manager bounded to maxSize entries.
// maxSize <= 0 selects DefaultMaxSize.
func NewManager(maxSize int) *Manager {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Manager{max: maxSize}
}

// MaxSize returns the undo bound.
func (m *Manager) MaxSize() int { return m.max }

// Record pushes cmd, clears redo and evicts beyond MaxSize.
func (m *Manager) Record(cmd Command) {
	m.undo = append(m.undo, cmd)
	m.redo = nil
	if over := len(m.undo) - m.max; over > 0 {
		m.undo = append([]Command(nil), m.undo[over:]...)
	}
}

// Undo reverts the most recent command against n and moves it to the redo
// stack. When the revert fails, both stacks are left as they were.
func (m *Manager) Undo(n *network.Network) (Command, error) {
	if len(m.undo) == 0 {
		return Command{}, ErrNothingToUndo
	}
	cmd := m.undo[len(m.undo)-1]
	if err := cmd.Change.Revert(n); err != nil {
		return Command{}, fmt.Errorf("history: undo %s: %w", cmd.Kind, err)
	}
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, cmd)

	return cmd, nil
}

// Redo re-applies the most recently undone command and moves it back to
// the undo stack.
func (m *Manager) Redo(n *network.Network) (Command, error) {
	if len(m.redo) == 0 {
		return Command{}, ErrNothingToRedo
	}
	cmd := m.redo[len(m.redo)-1]
	if err := cmd.Change.Apply(n); err != nil {
		return Command{}, fmt.Errorf("history: redo %s: %w", cmd.Kind, err)
	}
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, cmd)

	return cmd, nil
}

// Clear empties both stacks. The network is not touched.
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
}

// CanUndo reports whether Undo would succeed on a consistent network.
func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo reports whether Redo would succeed on a consistent network.
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Len returns the undo stack depth.
func (m *Manager) Len() int { return len(m.undo) }

// RedoLen returns the redo stack depth.
func (m *Manager) RedoLen() int { return len(m.redo) }

// Peek returns the next command Undo would revert.
func (m *Manager) Peek() (Command, bool) {
	if len(m.undo) == 0 {
		return Command{}, false
	}
	return m.undo[len(m.undo)-1], true
}

// Amend replaces the top undo entry. It is used to fold a continuing
// gesture into the command that opened it. The redo stack is untouched.
func (m *Manager) Amend(cmd Command) error {
	if len(m.undo) == 0 {
		return ErrNothingToUndo
	}
	m.undo[len(m.undo)-1] = cmd
	return nil
}

// Entries returns the undo stack newest first.
func (m *Manager) Entries() []Command {
	out := make([]Command, len(m.undo))
	for i, cmd := range m.undo {
		out[len(m.undo)-1-i] = cmd
	}
	return out
}
