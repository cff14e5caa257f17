package conversation

import (
	"sync"

	"github.com/matheus3301/wppsim/internal/bus"
)

// EventStateChanged is published on the bus after every dispatch.
const EventStateChanged = bus.TopicState + "changed"

// Change is the payload of EventStateChanged.
type Change struct {
	Action Action
	State  State
}

// Store owns the current conversation state and serialises every transition.
type Store struct {
	mu    sync.Mutex
	state State
	bus   *bus.Bus
}

// NewStore creates a store holding initial. b may be nil.
func NewStore(initial State, b *bus.Bus) *Store {
	return &Store{state: initial, bus: b}
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a and returns the resulting state.
func (s *Store) Dispatch(a Action) State {
	return s.DispatchFunc(func(State) Action { return a })
}

// DispatchFunc builds an action from the current state and applies it
// without letting another dispatch run in between. A nil action is a no-op.
func (s *Store) DispatchFunc(build func(State) Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := build(s.state)
	if a == nil {
		return s.state
	}
	s.state = Apply(s.state, a)
	if s.bus != nil {
		s.bus.Publish(bus.NewEvent(EventStateChanged, Change{Action: a, State: s.state}))
	}
	return s.state
}
