package conversation

import (
	"slices"
	"strings"
	"time"

	"github.com/matheus3301/wppsim/internal/chat"
)

// groupWindow is the longest gap between two same-direction messages that
// still renders them as one visual group.
const groupWindow = 5 * time.Minute

// SortChats returns chats ordered pinned first, then by most recent activity.
// The sort is stable and the input slice is left untouched.
func SortChats(chats []chat.Chat) []chat.Chat {
	out := slices.Clone(chats)
	slices.SortStableFunc(out, func(a, b chat.Chat) int {
		if a.Pinned != b.Pinned {
			if a.Pinned {
				return -1
			}
			return 1
		}
		return b.LastActivity.Compare(a.LastActivity)
	})
	return out
}

// VisibleChats returns the chats the chat list should show for the current
// filter and search term, in backing order.
func VisibleChats(s State) []chat.Chat {
	term := strings.ToLower(s.SearchTerm)
	var out []chat.Chat
	for _, c := range s.Chats {
		if s.Filter == chat.FilterArchived {
			if c.Archived {
				out = append(out, c)
			}
			continue
		}
		if c.Archived {
			continue
		}
		switch s.Filter {
		case chat.FilterUnread:
			if c.UnreadCount == 0 {
				continue
			}
		case chat.FilterGroups:
			if !c.IsGroup {
				continue
			}
		case chat.FilterPinned:
			if !c.Pinned {
				continue
			}
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(c.Title), term) &&
			!strings.Contains(strings.ToLower(c.LastMessagePreview), term) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ActiveChat returns the selected chat, if any.
func ActiveChat(s State) (chat.Chat, bool) {
	if s.ActiveChatID == "" {
		return chat.Chat{}, false
	}
	return s.Chat(s.ActiveChatID)
}

// ArchivedCount returns the number of archived chats.
func ArchivedCount(s State) int {
	n := 0
	for _, c := range s.Chats {
		if c.Archived {
			n++
		}
	}
	return n
}

// UnreadChats returns the number of non-archived chats with unread messages.
func UnreadChats(s State) int {
	n := 0
	for _, c := range s.Chats {
		if !c.Archived && c.UnreadCount > 0 {
			n++
		}
	}
	return n
}

// MessageHit is a message matched by SearchMessages.
type MessageHit struct {
	ChatID    string
	ChatTitle string
	Message   chat.Message
}

// SearchMessages returns every message whose content contains query
// (case-insensitive), newest first.
func SearchMessages(s State, query string) []MessageHit {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var hits []MessageHit
	for _, c := range s.Chats {
		for _, m := range c.Messages {
			if strings.Contains(strings.ToLower(m.Content), q) {
				hits = append(hits, MessageHit{ChatID: c.ID, ChatTitle: c.Title, Message: m})
			}
		}
	}
	slices.SortStableFunc(hits, func(a, b MessageHit) int {
		return b.Message.Timestamp.Compare(a.Message.Timestamp)
	})
	return hits
}

// DayGroup is a run of messages sent on the same calendar day.
type DayGroup struct {
	Day      time.Time
	Messages []chat.Message
}

// GroupByDay splits chronologically ordered messages into per-day runs,
// using the location of each message's timestamp.
func GroupByDay(msgs []chat.Message) []DayGroup {
	var groups []DayGroup
	for _, m := range msgs {
		y, mo, d := m.Timestamp.Date()
		day := time.Date(y, mo, d, 0, 0, 0, 0, m.Timestamp.Location())
		if n := len(groups); n > 0 && groups[n-1].Day.Equal(day) {
			groups[n-1].Messages = append(groups[n-1].Messages, m)
			continue
		}
		groups = append(groups, DayGroup{Day: day, Messages: []chat.Message{m}})
	}
	return groups
}

// GroupedWithPrevious reports whether cur continues the visual group of prev:
// same direction and at most five minutes apart.
func GroupedWithPrevious(prev *chat.Message, cur chat.Message) bool {
	if prev == nil || prev.Direction != cur.Direction {
		return false
	}
	return cur.Timestamp.Sub(prev.Timestamp) <= groupWindow
}
