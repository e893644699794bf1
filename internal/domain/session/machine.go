package session

import (
	"errors"
	"fmt"
	"sync"
)

// State is a step of the sign-in lifecycle.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAwaitingProfile State = "awaiting_profile"
	StateReady           State = "ready"
	StateError           State = "error"
	StateSignedOut       State = "signed_out"
)

var ErrInvalidTransition = errors.New("invalid session transition")

var allowed = map[State][]State{
	StateUnauthenticated: {StateAuthenticating},
	StateAuthenticating:  {StateAwaitingProfile, StateError, StateSignedOut},
	StateAwaitingProfile: {StateReady, StateError, StateSignedOut},
	StateReady:           {StateSignedOut, StateAwaitingProfile},
	StateError:           {StateAuthenticating, StateSignedOut},
	StateSignedOut:       {StateUnauthenticated},
}

// Transition is published for every state change.
type Transition struct {
	From  State
	To    State
	Cause error
}

// Machine tracks one session's state. It is safe for concurrent use.
type Machine struct {
	mu     sync.Mutex
	state  State
	err    error
	events chan<- Transition
}

// NewMachine starts in StateUnauthenticated. events may be nil; sends never block.
func NewMachine(events chan<- Transition) *Machine {
	return &Machine{state: StateUnauthenticated, events: events}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns the cause recorded by the last move to StateError.
func (m *Machine) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *Machine) BeginAuth() error       { return m.move(StateAuthenticating, nil) }
func (m *Machine) Authenticated() error   { return m.move(StateAwaitingProfile, nil) }
func (m *Machine) ProfileLoaded() error   { return m.move(StateReady, nil) }
func (m *Machine) Fail(cause error) error { return m.move(StateError, cause) }
func (m *Machine) RefreshProfile() error  { return m.move(StateAwaitingProfile, nil) }

// SignOut moves to StateSignedOut and then back to StateUnauthenticated.
func (m *Machine) SignOut() error {
	if err := m.move(StateSignedOut, nil); err != nil {
		return err
	}
	return m.move(StateUnauthenticated, nil)
}

func (m *Machine) move(to State, cause error) error {
	m.mu.Lock()
	from := m.state
	ok := false
	for _, next := range allowed[from] {
		if next == to {
			ok = true
			break
		}
	}
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	m.state = to
	if to == StateError {
		m.err = cause
	} else {
		m.err = nil
	}
	events := m.events
	m.mu.Unlock()

	if events != nil {
		select {
		case events <- Transition{From: from, To: to, Cause: cause}:
		default:
		}
	}
	return nil
}
