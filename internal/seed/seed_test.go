package seed

import (
	"strings"
	"testing"
	"time"

	"github.com/matheus3301/wppsim/internal/chat"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestLoadEmbedded(t *testing.T) {
	ds, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Me.ID != "me" {
		t.Errorf("Me.ID = %q, want me", ds.Me.ID)
	}
	if len(ds.Contacts) == 0 || len(ds.Chats) == 0 {
		t.Fatalf("contacts=%d chats=%d, want both non-empty", len(ds.Contacts), len(ds.Chats))
	}

	var studio *chat.Chat
	for i := range ds.Chats {
		c := &ds.Chats[i]
		if c.Title == "Product Studio" {
			studio = c
		}
		if !c.IsGroup && c.ID != chat.DirectChatID(c.Others(ds.Me.ID)[0].ID) {
			t.Errorf("direct chat %q does not use the reserved id", c.ID)
		}
	}
	if studio == nil || !studio.IsGroup {
		t.Fatal("Product Studio group missing")
	}
}

func TestParseResolvesRelativeTimes(t *testing.T) {
	ds, err := Parse(defaultData, now)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for _, c := range ds.Chats {
		last, ok := c.LastMessage()
		if !ok {
			continue
		}
		if !c.LastActivity.Equal(last.Timestamp) {
			t.Errorf("chat %s LastActivity = %v, want %v", c.ID, c.LastActivity, last.Timestamp)
		}
		if c.LastMessagePreview != last.Content {
			t.Errorf("chat %s preview = %q, want %q", c.ID, c.LastMessagePreview, last.Content)
		}
		if last.Timestamp.After(now) {
			t.Errorf("chat %s last message is in the future", c.ID)
		}
	}
}

func TestParseMessages(t *testing.T) {
	data := `
[me]
id = "me"
name = "Me"

[[contacts]]
id = "ana"
name = "Ana"
last_seen_minutes = 30

[[chats]]
id = "chat-ana"
title = "Ana"
participants = ["me", "ana"]

  [[chats.messages]]
  id = "m1"
  from = "ana"
  content = "hello"
  minutes_ago = 10

  [[chats.messages]]
  id = "m2"
  from = "me"
  content = "hi back"
  minutes_ago = 5
  status = "delivered"
  reply_to = "m1"
`
	ds, err := Parse([]byte(data), now)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := ds.Contacts[0].LastSeen; !got.Equal(now.Add(-30 * time.Minute)) {
		t.Errorf("LastSeen = %v, want %v", got, now.Add(-30*time.Minute))
	}
	msgs := ds.Chats[0].Messages
	if msgs[0].Direction != chat.Incoming || msgs[1].Direction != chat.Outgoing {
		t.Errorf("directions = %s/%s, want incoming/outgoing", msgs[0].Direction, msgs[1].Direction)
	}
	if msgs[0].Type != chat.TypeText || msgs[0].Status != chat.StatusRead {
		t.Errorf("defaults = %s/%s, want text/read", msgs[0].Type, msgs[0].Status)
	}
	if msgs[1].ReplyTo == nil || msgs[1].ReplyTo.Preview != "hello" {
		t.Errorf("ReplyTo = %+v, want preview hello", msgs[1].ReplyTo)
	}
	if !ds.Chats[0].LastActivity.Equal(now.Add(-5 * time.Minute)) {
		t.Errorf("LastActivity = %v", ds.Chats[0].LastActivity)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"no me", `[[contacts]]
id = "a"`, "missing [me]"},
		{"unknown participant", `[me]
id = "me"
[[chats]]
id = "c"
participants = ["me", "ghost"]`, "unknown participant"},
		{"bad status", `[me]
id = "me"
[[chats]]
id = "c"
participants = ["me"]
[[chats.messages]]
id = "m"
status = "lost"`, "unknown status"},
		{"bad attachment", `[me]
id = "me"
[[chats]]
id = "c"
participants = ["me"]
[[chats.messages]]
id = "m"
[[chats.messages.attachments]]
id = "a"
type = "sticker"`, "unsupported type"},
		{"dangling reply", `[me]
id = "me"
[[chats]]
id = "c"
participants = ["me"]
[[chats.messages]]
id = "m"
reply_to = "nope"`, "reply to unknown"},
		{"invalid toml", `[me`, "decode seed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), now)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestDatasetState(t *testing.T) {
	ds, err := Parse(defaultData, now)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s := ds.State()
	if s.Filter != chat.FilterAll || s.SearchTerm != "" {
		t.Errorf("filter/search = %q/%q, want all/empty", s.Filter, s.SearchTerm)
	}
	if s.ActiveChatID != s.Chats[0].ID {
		t.Errorf("ActiveChatID = %q, want first chat %q", s.ActiveChatID, s.Chats[0].ID)
	}
	// chat-ana is the only pinned chat.
	if s.Chats[0].ID != "chat-ana" {
		t.Errorf("first chat = %q, want chat-ana", s.Chats[0].ID)
	}
	active, ok := s.Chat(s.ActiveChatID)
	if !ok || active.UnreadCount != 0 {
		t.Errorf("active chat %q UnreadCount = %d (found %v), want 0", s.ActiveChatID, active.UnreadCount, ok)
	}
	unread := 0
	for _, c := range ds.Chats {
		if c.ID == "chat-ana" {
			unread = c.UnreadCount
		}
	}
	if unread == 0 {
		t.Error("seed chat-ana should carry unread messages before it is opened")
	}
}
