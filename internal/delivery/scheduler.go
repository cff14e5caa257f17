package delivery

import (
	"sync"
	"time"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or the timer was already stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Rand is the random source used for reply delays and reply selection.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type wallScheduler struct{}

func (wallScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// WallClock schedules callbacks on real timers.
func WallClock() Scheduler { return wallScheduler{} }

// ManualScheduler is a Scheduler driven by Advance instead of the wall clock.
// Callbacks run synchronously on the goroutine calling Advance, in due order.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	s       *ManualScheduler
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewManualScheduler creates a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc registers f to run once the clock has advanced by d.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{s: s, at: s.now + d, seq: s.seq, fn: f}
	s.pending = append(s.pending, t)
	return t
}

// Elapsed returns how far the clock has advanced.
func (s *ManualScheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Advance moves the clock forward by d, running every callback that falls due.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.at
		next.fired = true
		s.mu.Unlock()

		next.fn()
	}
}

// nextDue returns the earliest live timer due at or before target. Callers hold s.mu.
func (s *ManualScheduler) nextDue(target time.Duration) *manualTimer {
	var next *manualTimer
	live := s.pending[:0]
	for _, t := range s.pending {
		if t.stopped || t.fired {
			continue
		}
		live = append(live, t)
		if t.at > target {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	s.pending = live
	return next
}
