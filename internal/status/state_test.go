package status

import (
	"errors"
	"testing"

	"github.com/matheus3301/wppsim/internal/bus"
)

func TestInitialState(t *testing.T) {
	m := NewMachine(nil)
	if m.Current() != Booting {
		t.Errorf("initial state = %s, want BOOTING", m.Current())
	}
}

func TestValidTransitions(t *testing.T) {
	tests := []struct {
		from State
		to   State
	}{
		{Booting, Restoring},
		{Booting, Error},
		{Restoring, Ready},
		{Restoring, Error},
		{Ready, Stopping},
		{Stopping, Stopped},
		{Error, Stopping},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			m := NewMachine(nil)
			walkTo(t, m, tt.from)
			if err := m.Transition(tt.to); err != nil {
				t.Errorf("Transition(%s -> %s) error = %v", tt.from, tt.to, err)
			}
			if m.Current() != tt.to {
				t.Errorf("state = %s, want %s", m.Current(), tt.to)
			}
		})
	}
}

func TestInvalidTransition(t *testing.T) {
	tests := []struct {
		from State
		to   State
	}{
		{Booting, Ready},
		{Restoring, Stopped},
		{Ready, Restoring},
		{Stopped, Booting},
		{Error, Ready},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			m := NewMachine(nil)
			walkTo(t, m, tt.from)
			if err := m.Transition(tt.to); err == nil {
				t.Errorf("Transition(%s -> %s) should fail", tt.from, tt.to)
			}
			if m.Current() != tt.from {
				t.Errorf("state = %s, want %s (unchanged)", m.Current(), tt.from)
			}
		})
	}
}

func TestTransitionEmitsEvent(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe(bus.TopicSession, 10)
	defer unsub()

	m := NewMachine(b)
	if err := m.Transition(Restoring); err != nil {
		t.Fatal(err)
	}

	evt := <-ch
	if evt.Kind != EventChanged {
		t.Errorf("event kind = %q, want %s", evt.Kind, EventChanged)
	}
	change, ok := evt.Payload.(StatusChange)
	if !ok {
		t.Fatalf("payload type = %T, want StatusChange", evt.Payload)
	}
	if change.From != Booting || change.To != Restoring {
		t.Errorf("change = %v -> %v, want BOOTING -> RESTORING", change.From, change.To)
	}
}

func TestFailRecordsCause(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe(bus.TopicSession, 10)
	defer unsub()

	m := NewMachine(b)
	if err := m.Fail(errors.New("disk full")); err != nil {
		t.Fatal(err)
	}
	change := (<-ch).Payload.(StatusChange)
	if change.To != Error || change.Detail != "disk full" {
		t.Errorf("change = %+v, want ERROR with detail", change)
	}
	if err := m.Fail(errors.New("again")); err == nil {
		t.Error("Fail from ERROR should be rejected")
	}
}

// TestSessionLifecycle walks a normal run:
// BOOTING → RESTORING → READY → STOPPING → STOPPED
func TestSessionLifecycle(t *testing.T) {
	m := NewMachine(nil)
	before := m.Since()

	for _, s := range []State{Restoring, Ready, Stopping, Stopped} {
		if err := m.Transition(s); err != nil {
			t.Fatalf("Transition to %s: %v (current: %s)", s, err, m.Current())
		}
	}
	if m.Current() != Stopped {
		t.Errorf("final state = %s, want STOPPED", m.Current())
	}
	if m.Since().Before(before) {
		t.Error("Since moved backwards")
	}
}

// walkTo is a helper that transitions the machine to a target state.
func walkTo(t *testing.T, m *Machine, target State) {
	t.Helper()
	paths := map[State][]State{
		Booting:   {},
		Restoring: {Restoring},
		Ready:     {Restoring, Ready},
		Stopping:  {Restoring, Ready, Stopping},
		Stopped:   {Restoring, Ready, Stopping, Stopped},
		Error:     {Error},
	}
	for _, s := range paths[target] {
		if err := m.Transition(s); err != nil {
			t.Fatalf("walkTo(%s): %v", target, err)
		}
	}
}
