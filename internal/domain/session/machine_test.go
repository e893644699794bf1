package session

import (
	"errors"
	"testing"
)

func TestMachine_HappyPath(t *testing.T) {
	t.Parallel()

	events := make(chan Transition, 8)
	m := NewMachine(events)

	steps := []func() error{m.BeginAuth, m.Authenticated, m.ProfileLoaded}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if m.State() != StateReady {
		t.Fatalf("unexpected state: %s", m.State())
	}

	if err := m.SignOut(); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if m.State() != StateUnauthenticated {
		t.Fatalf("unexpected state after sign out: %s", m.State())
	}

	close(events)
	var got []State
	for ev := range events {
		got = append(got, ev.To)
	}
	want := []State{StateAuthenticating, StateAwaitingProfile, StateReady, StateSignedOut, StateUnauthenticated}
	if len(got) != len(want) {
		t.Fatalf("unexpected events: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: got=%s want=%s", i, got[i], want[i])
		}
	}
}

func TestMachine_InvalidTransition(t *testing.T) {
	t.Parallel()

	m := NewMachine(nil)
	if err := m.ProfileLoaded(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if m.State() != StateUnauthenticated {
		t.Fatalf("state changed after invalid transition: %s", m.State())
	}
}

func TestMachine_FailRecordsCause(t *testing.T) {
	t.Parallel()

	m := NewMachine(nil)
	cause := errors.New("profile missing")
	if err := m.BeginAuth(); err != nil {
		t.Fatalf("begin auth: %v", err)
	}
	if err := m.Fail(cause); err != nil {
		t.Fatalf("fail: %v", err)
	}
	if m.State() != StateError || !errors.Is(m.Err(), cause) {
		t.Fatalf("unexpected state=%s err=%v", m.State(), m.Err())
	}
	if err := m.BeginAuth(); err != nil {
		t.Fatalf("retry from error: %v", err)
	}
	if m.Err() != nil {
		t.Fatalf("expected cause cleared on retry")
	}
}
