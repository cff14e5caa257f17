package conversation

import "github.com/matheus3301/wppsim/internal/chat"

// Action is a state transition command. The set of actions is closed.
type Action interface {
	Kind() string
	isAction()
}

// SetActiveChat selects a chat (or clears the selection with an empty id)
// and resets the selected chat's unread counter.
type SetActiveChat struct{ ChatID string }

// SetSearchTerm replaces the free-text search term.
type SetSearchTerm struct{ Term string }

// SetFilter replaces the chat list filter.
type SetFilter struct{ Filter chat.Filter }

// SendMessage appends a locally written message.
type SendMessage struct {
	ChatID  string
	Message chat.Message
}

// ReceiveMessage appends an incoming message. IsActive keeps the unread
// counter at zero when the chat is open.
type ReceiveMessage struct {
	ChatID   string
	Message  chat.Message
	IsActive bool
}

// UpdateMessageStatus advances the delivery status of one message.
type UpdateMessageStatus struct {
	ChatID    string
	MessageID string
	Status    chat.Status
}

// CreateChat adds a new chat and makes it active.
type CreateChat struct{ Chat chat.Chat }

// TogglePinned flips the pinned flag.
type TogglePinned struct{ ChatID string }

// ToggleMute flips the muted flag.
type ToggleMute struct{ ChatID string }

// ArchiveChat sets the archived flag.
type ArchiveChat struct {
	ChatID   string
	Archived bool
}

// MarkChatRead resets the unread counter.
type MarkChatRead struct{ ChatID string }

func (SetActiveChat) Kind() string       { return "set_active_chat" }
func (SetSearchTerm) Kind() string       { return "set_search_term" }
func (SetFilter) Kind() string           { return "set_filter" }
func (SendMessage) Kind() string         { return "send_message" }
func (ReceiveMessage) Kind() string      { return "receive_message" }
func (UpdateMessageStatus) Kind() string { return "update_message_status" }
func (CreateChat) Kind() string          { return "create_chat" }
func (TogglePinned) Kind() string        { return "toggle_pinned" }
func (ToggleMute) Kind() string          { return "toggle_mute" }
func (ArchiveChat) Kind() string         { return "archive_chat" }
func (MarkChatRead) Kind() string        { return "mark_chat_read" }

func (SetActiveChat) isAction()       {}
func (SetSearchTerm) isAction()       {}
func (SetFilter) isAction()           {}
func (SendMessage) isAction()         {}
func (ReceiveMessage) isAction()      {}
func (UpdateMessageStatus) isAction() {}
func (CreateChat) isAction()          {}
func (TogglePinned) isAction()        {}
func (ToggleMute) isAction()          {}
func (ArchiveChat) isAction()         {}
func (MarkChatRead) isAction()        {}
