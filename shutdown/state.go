package shutdown

import (
	"fmt"
	"sync"
)

// State represents the coordinator's position in the shutdown sequence.
type State string

const (
	// StateIdle is the initial state before any termination trigger.
	StateIdle State = "idle"

	// StateDraining is the state while the optional server drains in-flight connections.
	StateDraining State = "draining"

	// StateRunningHandlers is the state while registered handlers run against the timeout.
	StateRunningHandlers State = "running-handlers"

	// StateFinalizing is the state while the finalizer runs.
	StateFinalizing State = "finalizing"

	// StateTerminated is the final, absorbing state.
	StateTerminated State = "terminated"
)

// stateRank orders the states; transitions only move to a higher rank.
var stateRank = map[State]int{
	StateIdle:            0,
	StateDraining:        1,
	StateRunningHandlers: 2,
	StateFinalizing:      3,
	StateTerminated:      4,
}

// stateMachine tracks the shutdown state with thread-safe, forward-only transitions.
type stateMachine struct {
	mu    sync.RWMutex
	state State
}

func newStateMachine() *stateMachine {
	return &stateMachine{state: StateIdle}
}

// current returns the current state.
func (m *stateMachine) current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state
}

// transition moves to the next state. Moving backwards is rejected and
// StateTerminated is absorbing.
func (m *stateMachine) transition(next State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateTerminated {
		return fmt.Errorf("transition to %s: %w", next, ErrAlreadyTerminated)
	}

	if stateRank[next] <= stateRank[m.state] {
		return fmt.Errorf("transition %s -> %s: %w", m.state, next, ErrInvalidStateTransition)
	}

	m.state = next

	return nil
}
