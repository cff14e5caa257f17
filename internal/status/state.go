package status

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/matheus3301/wppsim/internal/bus"
)

// EventChanged is published on every successful transition.
const EventChanged = bus.TopicSession + "status_changed"

// State represents a session runtime state.
type State string

const (
	Booting   State = "BOOTING"
	Restoring State = "RESTORING"
	Ready     State = "READY"
	Stopping  State = "STOPPING"
	Stopped   State = "STOPPED"
	Error     State = "ERROR"
)

// validTransitions defines allowed state transitions.
var validTransitions = map[State][]State{
	Booting:   {Restoring, Error},
	Restoring: {Ready, Error},
	Ready:     {Stopping, Error},
	Stopping:  {Stopped, Error},
	Error:     {Stopping},
	Stopped:   {},
}

// Machine tracks and enforces session runtime state transitions.
type Machine struct {
	mu      sync.RWMutex
	current State
	since   time.Time
	bus     *bus.Bus
}

// NewMachine creates a new state machine starting in Booting state.
func NewMachine(b *bus.Bus) *Machine {
	return &Machine{
		current: Booting,
		since:   time.Now(),
		bus:     b,
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Since returns when the current state was entered.
func (m *Machine) Since() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.since
}

// Transition attempts to move to a new state. Returns error if transition is invalid.
func (m *Machine) Transition(to State) error {
	return m.transition(to, "")
}

// Fail moves the machine to Error, recording cause in the published change.
func (m *Machine) Fail(cause error) error {
	return m.transition(Error, cause.Error())
}

func (m *Machine) transition(to State, detail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !slices.Contains(validTransitions[m.current], to) {
		return fmt.Errorf("invalid transition from %s to %s", m.current, to)
	}
	from := m.current
	m.current = to
	m.since = time.Now()
	if m.bus != nil {
		m.bus.Publish(bus.Event{
			Kind:      EventChanged,
			Timestamp: m.since,
			Payload: StatusChange{
				From:   from,
				To:     to,
				Detail: detail,
			},
		})
	}
	return nil
}

// StatusChange is the payload for status change events.
type StatusChange struct {
	From   State
	To     State
	Detail string
}
