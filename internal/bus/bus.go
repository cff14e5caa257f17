package bus

import (
	"strings"
	"sync"
	"sync/atomic"
)

// Bus fans events out to in-process subscribers. Publish never blocks;
// a subscriber with a full buffer misses the event and the miss is counted.
type Bus struct {
	mu      sync.RWMutex
	subs    map[*subscriber]struct{}
	dropped atomic.Uint64
}

type subscriber struct {
	prefix string
	ch     chan Event
}

func New() *Bus {
	return &Bus{subs: make(map[*subscriber]struct{})}
}

// Publish delivers evt to every subscriber whose prefix matches evt.Kind.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for s := range b.subs {
		if !strings.HasPrefix(evt.Kind, s.prefix) {
			continue
		}
		select {
		case s.ch <- evt:
		default:
			b.dropped.Add(1)
		}
	}
}

// Subscribe registers for events whose kind starts with prefix, usually one
// of the Topic constants. The returned cancel func is idempotent and does
// not close the channel.
func (b *Bus) Subscribe(prefix string, bufSize int) (<-chan Event, func()) {
	s := &subscriber{prefix: prefix, ch: make(chan Event, bufSize)}
	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()

	return s.ch, sync.OnceFunc(func() {
		b.mu.Lock()
		delete(b.subs, s)
		b.mu.Unlock()
	})
}

func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped counts deliveries skipped because a subscriber was full.
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}
