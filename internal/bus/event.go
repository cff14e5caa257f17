package bus

import (
	"strings"
	"time"
)

// Topics group event kinds. A kind is its topic followed by a name, such as
// "state.changed"; subscribers select events by topic prefix.
const (
	TopicState   = "state."
	TopicSession = "session."
	TopicPersist = "persist."
)

// Event is one notification. Payload type depends on Kind.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}

// NewEvent stamps an event of the given kind with the current time.
func NewEvent(kind string, payload any) Event {
	return Event{Kind: kind, Timestamp: time.Now(), Payload: payload}
}

// Topic returns the prefix of Kind up to and including the first dot.
func (e Event) Topic() string {
	if i := strings.IndexByte(e.Kind, '.'); i >= 0 {
		return e.Kind[:i+1]
	}
	return e.Kind
}
