package conversation

import (
	"slices"

	"github.com/matheus3301/wppsim/internal/chat"
)

// Apply returns the state that results from applying a to s.
// Actions that reference unknown chats or messages leave the state unchanged.
func Apply(s State, a Action) State {
	switch a := a.(type) {
	case SetActiveChat:
		s.ActiveChatID = a.ChatID
		if a.ChatID != "" {
			s.Chats = updateChat(s.Chats, a.ChatID, func(c *chat.Chat) { c.UnreadCount = 0 })
		}
		return s

	case SetSearchTerm:
		s.SearchTerm = a.Term
		return s

	case SetFilter:
		s.Filter = a.Filter
		return s

	case SendMessage:
		if s.FindChat(a.ChatID) < 0 {
			return s
		}
		s.Chats = SortChats(updateChat(s.Chats, a.ChatID, func(c *chat.Chat) {
			appendMessage(c, a.Message)
			c.UnreadCount = 0
		}))
		return s

	case ReceiveMessage:
		if s.FindChat(a.ChatID) < 0 {
			return s
		}
		s.Chats = SortChats(updateChat(s.Chats, a.ChatID, func(c *chat.Chat) {
			appendMessage(c, a.Message)
			if a.IsActive {
				c.UnreadCount = 0
			} else {
				c.UnreadCount++
			}
		}))
		return s

	case UpdateMessageStatus:
		i := s.FindChat(a.ChatID)
		if i < 0 {
			return s
		}
		j := slices.IndexFunc(s.Chats[i].Messages, func(m chat.Message) bool { return m.ID == a.MessageID })
		if j < 0 || !s.Chats[i].Messages[j].Status.CanAdvance(a.Status) {
			return s
		}
		s.Chats = updateChat(s.Chats, a.ChatID, func(c *chat.Chat) {
			c.Messages = slices.Clone(c.Messages)
			c.Messages[j].Status = a.Status
		})
		return s

	case CreateChat:
		if s.FindChat(a.Chat.ID) >= 0 {
			return s
		}
		created := a.Chat
		created.UnreadCount = 0
		s.Chats = SortChats(append([]chat.Chat{created}, s.Chats...))
		s.ActiveChatID = created.ID
		return s

	case TogglePinned:
		if s.FindChat(a.ChatID) < 0 {
			return s
		}
		s.Chats = SortChats(updateChat(s.Chats, a.ChatID, func(c *chat.Chat) { c.Pinned = !c.Pinned }))
		return s

	case ToggleMute:
		s.Chats = updateChat(s.Chats, a.ChatID, func(c *chat.Chat) { c.Muted = !c.Muted })
		return s

	case ArchiveChat:
		s.Chats = updateChat(s.Chats, a.ChatID, func(c *chat.Chat) { c.Archived = a.Archived })
		return s

	case MarkChatRead:
		s.Chats = updateChat(s.Chats, a.ChatID, func(c *chat.Chat) { c.UnreadCount = 0 })
		return s
	}
	return s
}

// updateChat returns a copy of chats with fn applied to the chat matching id.
// The input slice is returned as is when no chat matches.
func updateChat(chats []chat.Chat, id string, fn func(c *chat.Chat)) []chat.Chat {
	i := slices.IndexFunc(chats, func(c chat.Chat) bool { return c.ID == id })
	if i < 0 {
		return chats
	}
	out := slices.Clone(chats)
	fn(&out[i])
	return out
}

func appendMessage(c *chat.Chat, m chat.Message) {
	msgs := make([]chat.Message, len(c.Messages), len(c.Messages)+1)
	copy(msgs, c.Messages)
	c.Messages = append(msgs, m)
	c.LastActivity = m.Timestamp
	c.LastMessagePreview = m.Content
}
