package conversation

import (
	"testing"
	"time"

	"github.com/matheus3301/wppsim/internal/chat"
)

func TestSortChatsPinnedFirst(t *testing.T) {
	t1 := t0.Add(time.Hour)
	chats := []chat.Chat{
		{ID: "A", Pinned: false, LastActivity: t1},
		{ID: "B", Pinned: true, LastActivity: t0},
	}
	got := SortChats(chats)
	if !equalIDs(ids(got), "B", "A") {
		t.Errorf("SortChats = %v, want [B A]", ids(got))
	}
	if chats[0].ID != "A" {
		t.Error("SortChats mutated its input")
	}
}

func TestSortChatsStable(t *testing.T) {
	chats := []chat.Chat{
		{ID: "x", LastActivity: t0},
		{ID: "y", LastActivity: t0},
		{ID: "z", LastActivity: t0.Add(time.Second)},
	}
	if got := ids(SortChats(chats)); !equalIDs(got, "z", "x", "y") {
		t.Errorf("SortChats = %v, want [z x y]", got)
	}
}

func filterState() State {
	return State{
		Chats: []chat.Chat{
			{ID: "p", Title: "Pinned Pal", Pinned: true, LastMessagePreview: "hi"},
			{ID: "u", Title: "Unread Uma", UnreadCount: 2, LastMessagePreview: "call me"},
			{ID: "g", Title: "Team", IsGroup: true, UnreadCount: 1, LastMessagePreview: "Standup moved"},
			{ID: "a", Title: "Old Archive", Archived: true, UnreadCount: 5, IsGroup: true},
			{ID: "q", Title: "Quiet", LastMessagePreview: "ok"},
		},
		Filter: chat.FilterAll,
	}
}

func TestVisibleChatsFilters(t *testing.T) {
	tests := []struct {
		filter chat.Filter
		search string
		want   []string
	}{
		{chat.FilterAll, "", []string{"p", "u", "g", "q"}},
		{chat.FilterUnread, "", []string{"u", "g"}},
		{chat.FilterGroups, "", []string{"g"}},
		{chat.FilterPinned, "", []string{"p"}},
		{chat.FilterArchived, "", []string{"a"}},
		{chat.FilterArchived, "no match at all", []string{"a"}},
		{chat.FilterAll, "STANDUP", []string{"g"}},
		{chat.FilterAll, "uma", []string{"u"}},
		{chat.FilterUnread, "team", []string{"g"}},
		{chat.FilterAll, "archive", nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter)+"/"+tt.search, func(t *testing.T) {
			s := filterState()
			s.Filter = tt.filter
			s.SearchTerm = tt.search
			if got := ids(VisibleChats(s)); !equalIDs(got, tt.want...) {
				t.Errorf("VisibleChats = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCounts(t *testing.T) {
	s := filterState()
	if n := ArchivedCount(s); n != 1 {
		t.Errorf("ArchivedCount = %d, want 1", n)
	}
	if n := UnreadChats(s); n != 2 {
		t.Errorf("UnreadChats = %d, want 2", n)
	}
}

func TestSearchMessagesNewestFirst(t *testing.T) {
	s := State{Chats: []chat.Chat{
		{ID: "c1", Title: "One", Messages: []chat.Message{
			{ID: "m1", Content: "Lunch today?", Timestamp: t0},
			{ID: "m2", Content: "nope", Timestamp: t0.Add(time.Minute)},
		}},
		{ID: "c2", Title: "Two", Messages: []chat.Message{
			{ID: "m3", Content: "LUNCH is ready", Timestamp: t0.Add(time.Hour)},
		}},
	}}
	hits := SearchMessages(s, "lunch")
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Message.ID != "m3" || hits[0].ChatTitle != "Two" {
		t.Errorf("first hit = %+v, want m3 in Two", hits[0])
	}
	if SearchMessages(s, "   ") != nil {
		t.Error("blank query should return no hits")
	}
}

func TestGroupByDay(t *testing.T) {
	msgs := []chat.Message{
		{ID: "1", Timestamp: t0},
		{ID: "2", Timestamp: t0.Add(3 * time.Hour)},
		{ID: "3", Timestamp: t0.Add(24 * time.Hour)},
	}
	groups := GroupByDay(msgs)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if len(groups[0].Messages) != 2 || len(groups[1].Messages) != 1 {
		t.Errorf("group sizes = %d,%d, want 2,1", len(groups[0].Messages), len(groups[1].Messages))
	}
}

func TestGroupedWithPrevious(t *testing.T) {
	prev := chat.Message{Direction: chat.Outgoing, Timestamp: t0}
	tests := []struct {
		name string
		prev *chat.Message
		cur  chat.Message
		want bool
	}{
		{"no previous", nil, chat.Message{Direction: chat.Outgoing, Timestamp: t0}, false},
		{"same direction close", &prev, chat.Message{Direction: chat.Outgoing, Timestamp: t0.Add(5 * time.Minute)}, true},
		{"same direction far", &prev, chat.Message{Direction: chat.Outgoing, Timestamp: t0.Add(6 * time.Minute)}, false},
		{"other direction", &prev, chat.Message{Direction: chat.Incoming, Timestamp: t0.Add(time.Second)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GroupedWithPrevious(tt.prev, tt.cur); got != tt.want {
				t.Errorf("GroupedWithPrevious = %v, want %v", got, tt.want)
			}
		})
	}
}
