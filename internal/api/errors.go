package api

import "errors"

var (
	// ErrChatNotFound is returned for operations on an unknown chat id.
	ErrChatNotFound = errors.New("chat not found")
	// ErrContactNotFound is returned when a contact id is not in the address book.
	ErrContactNotFound = errors.New("contact not found")
	// ErrEmptyMessage is returned when a draft is empty after trimming.
	ErrEmptyMessage = errors.New("message is empty")
)
