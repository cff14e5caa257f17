package conversation

import (
	"sync"
	"testing"
	"time"

	"github.com/matheus3301/wppsim/internal/bus"
	"github.com/matheus3301/wppsim/internal/chat"
)

func TestStorePublishesChanges(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe(bus.TopicState, 10)
	defer unsub()

	s := NewStore(testState(), b)
	s.Dispatch(TogglePinned{ChatID: "chat-bo"})

	select {
	case evt := <-ch:
		if evt.Kind != EventStateChanged {
			t.Errorf("event kind = %q, want %s", evt.Kind, EventStateChanged)
		}
		change, ok := evt.Payload.(Change)
		if !ok {
			t.Fatalf("payload type = %T, want Change", evt.Payload)
		}
		if _, ok := change.Action.(TogglePinned); !ok {
			t.Errorf("action = %T, want TogglePinned", change.Action)
		}
		if change.State.Chats[0].ID != "chat-bo" {
			t.Errorf("published state first chat = %s, want chat-bo", change.State.Chats[0].ID)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for state.changed")
	}
}

func TestStoreDispatchFuncReadsCurrentState(t *testing.T) {
	s := NewStore(testState(), nil)
	s.Dispatch(SetActiveChat{ChatID: "chat-bo"})

	msg := chat.Message{ID: "r", Direction: chat.Incoming, Content: "hi", Timestamp: t0.Add(time.Hour)}
	got := s.DispatchFunc(func(cur State) Action {
		return ReceiveMessage{ChatID: "chat-bo", Message: msg, IsActive: cur.ActiveChatID == "chat-bo"}
	})
	c, _ := got.Chat("chat-bo")
	if c.UnreadCount != 0 {
		t.Errorf("UnreadCount = %d, want 0 for the active chat", c.UnreadCount)
	}

	before := s.State()
	after := s.DispatchFunc(func(State) Action { return nil })
	if !equalIDs(ids(after.Chats), ids(before.Chats)...) {
		t.Error("nil action changed state")
	}
}

func TestStoreConcurrentDispatch(t *testing.T) {
	s := NewStore(testState(), bus.New())
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(ReceiveMessage{
				ChatID:  "chat-bo",
				Message: chat.Message{ID: string(rune('a' + i%26)), Timestamp: t0.Add(time.Duration(i) * time.Second)},
			})
		}()
	}
	wg.Wait()

	c, _ := s.State().Chat("chat-bo")
	if len(c.Messages) != 50 {
		t.Errorf("got %d messages, want 50", len(c.Messages))
	}
	if c.UnreadCount != 50 {
		t.Errorf("UnreadCount = %d, want 50", c.UnreadCount)
	}
}
