package conversation

import (
	"testing"
	"time"

	"github.com/matheus3301/wppsim/internal/chat"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testState() State {
	return State{
		Chats: SortChats([]chat.Chat{
			{ID: "chat-ana", Title: "Ana", LastActivity: t0.Add(2 * time.Minute), UnreadCount: 3, LastMessagePreview: "see you"},
			{ID: "chat-bo", Title: "Bo", LastActivity: t0.Add(time.Minute), UnreadCount: 0, LastMessagePreview: "ok"},
			{ID: "group-studio", Title: "Product Studio", IsGroup: true, LastActivity: t0, UnreadCount: 1, LastMessagePreview: "roadmap"},
		}),
		Filter: chat.FilterAll,
	}
}

func ids(chats []chat.Chat) []string {
	out := make([]string, len(chats))
	for i, c := range chats {
		out[i] = c.ID
	}
	return out
}

func equalIDs(got []string, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func outgoing(id, text string, ts time.Time) chat.Message {
	return chat.Message{ID: id, Direction: chat.Outgoing, Type: chat.TypeText, Content: text, Timestamp: ts, Status: chat.StatusSent}
}

func TestSetActiveChatResetsUnread(t *testing.T) {
	s := Apply(testState(), SetActiveChat{ChatID: "chat-ana"})
	if s.ActiveChatID != "chat-ana" {
		t.Errorf("ActiveChatID = %q, want chat-ana", s.ActiveChatID)
	}
	c, _ := s.Chat("chat-ana")
	if c.UnreadCount != 0 {
		t.Errorf("UnreadCount = %d, want 0", c.UnreadCount)
	}
}

func TestSetActiveChatNilClearsSelection(t *testing.T) {
	s := Apply(testState(), SetActiveChat{ChatID: "chat-ana"})
	s = Apply(s, SetActiveChat{ChatID: ""})
	if s.ActiveChatID != "" {
		t.Errorf("ActiveChatID = %q, want empty", s.ActiveChatID)
	}
	if _, ok := ActiveChat(s); ok {
		t.Error("ActiveChat should report no chat")
	}
}

func TestSendMessageMovesChatToTop(t *testing.T) {
	now := t0.Add(time.Hour)
	s := Apply(testState(), SendMessage{ChatID: "group-studio", Message: outgoing("m1", "Hello?", now)})

	if !equalIDs(ids(s.Chats), "group-studio", "chat-ana", "chat-bo") {
		t.Fatalf("order = %v, want studio first", ids(s.Chats))
	}
	c := s.Chats[0]
	if !c.LastActivity.Equal(now) {
		t.Errorf("LastActivity = %v, want %v", c.LastActivity, now)
	}
	if c.LastMessagePreview != "Hello?" {
		t.Errorf("LastMessagePreview = %q, want Hello?", c.LastMessagePreview)
	}
	if c.UnreadCount != 0 {
		t.Errorf("UnreadCount = %d, want 0", c.UnreadCount)
	}
	if len(c.Messages) != 1 || c.Messages[0].Status != chat.StatusSent {
		t.Errorf("messages = %+v, want one sent message", c.Messages)
	}
}

func TestReceiveMessageUnread(t *testing.T) {
	msg := chat.Message{ID: "r1", Direction: chat.Incoming, Content: "hey", Timestamp: t0.Add(time.Hour), Status: chat.StatusDelivered}

	s := Apply(testState(), ReceiveMessage{ChatID: "chat-bo", Message: msg})
	c, _ := s.Chat("chat-bo")
	if c.UnreadCount != 1 {
		t.Errorf("inactive: UnreadCount = %d, want 1", c.UnreadCount)
	}
	if s.Chats[0].ID != "chat-bo" {
		t.Errorf("order = %v, want chat-bo first", ids(s.Chats))
	}

	s = Apply(testState(), ReceiveMessage{ChatID: "chat-ana", Message: msg, IsActive: true})
	c, _ = s.Chat("chat-ana")
	if c.UnreadCount != 0 {
		t.Errorf("active: UnreadCount = %d, want 0", c.UnreadCount)
	}
}

func TestUpdateMessageStatusMonotonic(t *testing.T) {
	s := Apply(testState(), SendMessage{ChatID: "chat-bo", Message: outgoing("m1", "one", t0.Add(time.Hour))})
	s = Apply(s, SendMessage{ChatID: "chat-bo", Message: outgoing("m2", "two", t0.Add(2*time.Hour))})
	order := ids(s.Chats)

	s = Apply(s, UpdateMessageStatus{ChatID: "chat-bo", MessageID: "m1", Status: chat.StatusDelivered})
	s = Apply(s, UpdateMessageStatus{ChatID: "chat-bo", MessageID: "m1", Status: chat.StatusRead})
	s = Apply(s, UpdateMessageStatus{ChatID: "chat-bo", MessageID: "m1", Status: chat.StatusDelivered})

	c, _ := s.Chat("chat-bo")
	if c.Messages[0].Status != chat.StatusRead {
		t.Errorf("m1 status = %s, want read (no regression)", c.Messages[0].Status)
	}
	if c.Messages[1].Status != chat.StatusSent {
		t.Errorf("m2 status = %s, want sent (untouched)", c.Messages[1].Status)
	}
	if !equalIDs(ids(s.Chats), order...) {
		t.Errorf("status update reordered chats: %v, want %v", ids(s.Chats), order)
	}
}

func TestCreateChatBecomesActive(t *testing.T) {
	nc := chat.Chat{ID: "chat-cy", Title: "Cy", LastActivity: t0.Add(time.Hour), UnreadCount: 4, LastMessagePreview: "Say hi 👋"}
	s := Apply(testState(), CreateChat{Chat: nc})

	if s.ActiveChatID != "chat-cy" {
		t.Errorf("ActiveChatID = %q, want chat-cy", s.ActiveChatID)
	}
	if s.Chats[0].ID != "chat-cy" || s.Chats[0].UnreadCount != 0 {
		t.Errorf("first chat = %+v, want chat-cy with unread 0", s.Chats[0])
	}

	again := Apply(s, CreateChat{Chat: nc})
	if len(again.Chats) != len(s.Chats) {
		t.Errorf("duplicate CreateChat grew chats to %d", len(again.Chats))
	}
}

func TestTogglePinnedResorts(t *testing.T) {
	s := Apply(testState(), TogglePinned{ChatID: "group-studio"})
	if !equalIDs(ids(s.Chats), "group-studio", "chat-ana", "chat-bo") {
		t.Errorf("order = %v, want pinned studio first", ids(s.Chats))
	}
	s = Apply(s, TogglePinned{ChatID: "group-studio"})
	if !equalIDs(ids(s.Chats), "chat-ana", "chat-bo", "group-studio") {
		t.Errorf("order after unpin = %v", ids(s.Chats))
	}
}

func TestFlagsDoNotResort(t *testing.T) {
	base := testState()
	// Put the backing order out of sort order to detect any resort.
	base.Chats = []chat.Chat{base.Chats[2], base.Chats[0], base.Chats[1]}
	want := ids(base.Chats)

	for _, a := range []Action{
		ToggleMute{ChatID: "chat-ana"},
		ArchiveChat{ChatID: "chat-ana", Archived: true},
		MarkChatRead{ChatID: "group-studio"},
		UpdateMessageStatus{ChatID: "chat-ana", MessageID: "none", Status: chat.StatusRead},
	} {
		t.Run(a.Kind(), func(t *testing.T) {
			s := Apply(base, a)
			if !equalIDs(ids(s.Chats), want...) {
				t.Errorf("%s reordered chats: %v, want %v", a.Kind(), ids(s.Chats), want)
			}
		})
	}
}

func TestMuteArchiveRead(t *testing.T) {
	s := Apply(testState(), ToggleMute{ChatID: "chat-ana"})
	s = Apply(s, ArchiveChat{ChatID: "chat-bo", Archived: true})
	s = Apply(s, MarkChatRead{ChatID: "group-studio"})

	ana, _ := s.Chat("chat-ana")
	bo, _ := s.Chat("chat-bo")
	studio, _ := s.Chat("group-studio")
	if !ana.Muted {
		t.Error("chat-ana should be muted")
	}
	if !bo.Archived {
		t.Error("chat-bo should be archived")
	}
	if studio.UnreadCount != 0 {
		t.Errorf("studio unread = %d, want 0", studio.UnreadCount)
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	base := testState()
	for _, a := range []Action{
		SendMessage{ChatID: "nope", Message: outgoing("m", "x", t0)},
		ReceiveMessage{ChatID: "nope", Message: outgoing("m", "x", t0)},
		UpdateMessageStatus{ChatID: "nope", MessageID: "m", Status: chat.StatusRead},
		TogglePinned{ChatID: "nope"},
		ToggleMute{ChatID: "nope"},
		ArchiveChat{ChatID: "nope", Archived: true},
		MarkChatRead{ChatID: "nope"},
	} {
		t.Run(a.Kind(), func(t *testing.T) {
			s := Apply(base, a)
			if !equalIDs(ids(s.Chats), ids(base.Chats)...) {
				t.Errorf("order changed: %v", ids(s.Chats))
			}
			for i := range s.Chats {
				if s.Chats[i].UnreadCount != base.Chats[i].UnreadCount ||
					s.Chats[i].Pinned != base.Chats[i].Pinned ||
					s.Chats[i].Muted != base.Chats[i].Muted ||
					s.Chats[i].Archived != base.Chats[i].Archived ||
					len(s.Chats[i].Messages) != len(base.Chats[i].Messages) {
					t.Errorf("chat %s changed: %+v", s.Chats[i].ID, s.Chats[i])
				}
			}
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	base := testState()
	base = Apply(base, SendMessage{ChatID: "chat-bo", Message: outgoing("m1", "one", t0.Add(time.Hour))})
	before := ids(base.Chats)
	bo, _ := base.Chat("chat-bo")

	_ = Apply(base, SendMessage{ChatID: "chat-bo", Message: outgoing("m2", "two", t0.Add(2*time.Hour))})
	_ = Apply(base, UpdateMessageStatus{ChatID: "chat-bo", MessageID: "m1", Status: chat.StatusRead})
	_ = Apply(base, TogglePinned{ChatID: "group-studio"})
	_ = Apply(base, SetActiveChat{ChatID: "chat-ana"})

	if !equalIDs(ids(base.Chats), before...) {
		t.Errorf("input order mutated: %v, want %v", ids(base.Chats), before)
	}
	after, _ := base.Chat("chat-bo")
	if len(after.Messages) != len(bo.Messages) || after.Messages[0].Status != chat.StatusSent {
		t.Errorf("input messages mutated: %+v", after.Messages)
	}
	ana, _ := base.Chat("chat-ana")
	if ana.UnreadCount != 3 {
		t.Errorf("input unread mutated: %d, want 3", ana.UnreadCount)
	}
}

func TestSetFilterAndSearch(t *testing.T) {
	s := Apply(testState(), SetFilter{Filter: chat.FilterGroups})
	s = Apply(s, SetSearchTerm{Term: "road"})
	if s.Filter != chat.FilterGroups || s.SearchTerm != "road" {
		t.Errorf("filter/search = %q/%q", s.Filter, s.SearchTerm)
	}
}
