package persist

import (
	"context"

	"github.com/matheus3301/wppsim/internal/bus"
	"github.com/matheus3301/wppsim/internal/conversation"
	"go.uber.org/zap"
)

// EventSaved is published after each snapshot write.
const EventSaved = bus.TopicPersist + "saved"

// StateSource provides the state written on every save.
type StateSource interface {
	State() conversation.State
}

// Mirror keeps the persisted snapshot in step with the store by saving on
// every state change published on the bus.
type Mirror struct {
	adapter *Adapter
	source  StateSource
	bus     *bus.Bus
	logger  *zap.Logger
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewMirror creates a mirror. Start must be called to begin saving.
func NewMirror(adapter *Adapter, source StateSource, b *bus.Bus, logger *zap.Logger) *Mirror {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mirror{
		adapter: adapter,
		source:  source,
		bus:     b,
		logger:  logger,
	}
}

// Start subscribes to state changes. An event only wakes the mirror; it
// saves the source's current state, so a change whose event was dropped by
// the bus still reaches the snapshot with the next write.
func (m *Mirror) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	ch, unsub := m.bus.Subscribe(bus.TopicState, 64)

	go func() {
		defer close(m.done)
		defer unsub()
		for {
			select {
			case <-ch:
				drain(ch)
				m.save(m.source.State())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// drain discards events already queued; one write covers all of them.
func drain(ch <-chan bus.Event) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

func (m *Mirror) save(s conversation.State) {
	if !m.adapter.Save(s) {
		return
	}
	m.bus.Publish(bus.NewEvent(EventSaved, len(s.Chats)))
}

// Stop stops listening and writes the source's current state one last time.
func (m *Mirror) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.cancel = nil
	m.save(m.source.State())
	m.logger.Info("state mirror stopped")
}
