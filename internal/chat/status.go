package chat

import "slices"

// Status is the delivery state of a message.
type Status string

const (
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
	StatusFailed    Status = "failed"
)

// advances defines the allowed forward transitions between statuses.
var advances = map[Status][]Status{
	StatusSent:      {StatusDelivered, StatusRead, StatusFailed},
	StatusDelivered: {StatusRead},
	StatusRead:      {},
	StatusFailed:    {},
}

// CanAdvance reports whether a message in status s may move to status to.
func (s Status) CanAdvance(to Status) bool {
	return slices.Contains(advances[s], to)
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := advances[s]
	return ok
}
