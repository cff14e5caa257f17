package conversation

import "github.com/matheus3301/wppsim/internal/chat"

// State is the root of the conversation state tree.
// A State is treated as immutable: Apply always returns a new value and
// never writes through the slices of its input.
type State struct {
	Chats        []chat.Chat
	ActiveChatID string // empty means no chat selected
	Filter       chat.Filter
	SearchTerm   string
}

// FindChat returns the index of the chat with the given id, or -1.
func (s State) FindChat(id string) int {
	for i := range s.Chats {
		if s.Chats[i].ID == id {
			return i
		}
	}
	return -1
}

// Chat returns a copy of the chat with the given id.
func (s State) Chat(id string) (chat.Chat, bool) {
	i := s.FindChat(id)
	if i < 0 {
		return chat.Chat{}, false
	}
	return s.Chats[i], true
}
