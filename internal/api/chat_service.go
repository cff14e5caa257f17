package api

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matheus3301/wppsim/internal/bus"
	"github.com/matheus3301/wppsim/internal/chat"
	"github.com/matheus3301/wppsim/internal/conversation"
	"go.uber.org/zap"
)

// NewChatPreview is the list preview of a chat that has no messages yet.
const NewChatPreview = "Say hi 👋"

// ChatService exposes chat list state and chat-level operations to the
// presentation layer.
type ChatService struct {
	store    *conversation.Store
	bus      *bus.Bus
	me       chat.Contact
	contacts []chat.Contact
	logger   *zap.Logger
	now      func() time.Time
}

// NewChatService creates a chat service over store. contacts is the address
// book offered when starting a chat.
func NewChatService(st *conversation.Store, b *bus.Bus, me chat.Contact, contacts []chat.Contact, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		store:    st,
		bus:      b,
		me:       me,
		contacts: contacts,
		logger:   logger,
		now:      time.Now,
	}
}

// State returns the current state.
func (s *ChatService) State() conversation.State {
	return s.store.State()
}

// VisibleChats returns the chats matching the current filter and search term.
func (s *ChatService) VisibleChats() []chat.Chat {
	return conversation.VisibleChats(s.store.State())
}

// ActiveChat returns the selected chat, if any.
func (s *ChatService) ActiveChat() (chat.Chat, bool) {
	return conversation.ActiveChat(s.store.State())
}

// Chat returns one chat by id.
func (s *ChatService) Chat(id string) (chat.Chat, error) {
	c, ok := s.store.State().Chat(id)
	if !ok {
		return chat.Chat{}, fmt.Errorf("%w: %s", ErrChatNotFound, id)
	}
	return c, nil
}

// SetActiveChat selects a chat and marks it read. An empty id clears the selection.
func (s *ChatService) SetActiveChat(id string) error {
	if id == "" {
		s.store.Dispatch(conversation.SetActiveChat{})
		return nil
	}
	if err := s.dispatchOn(id, conversation.SetActiveChat{ChatID: id}); err != nil {
		return err
	}
	s.store.Dispatch(conversation.MarkChatRead{ChatID: id})
	return nil
}

// SetSearchTerm replaces the chat list search term.
func (s *ChatService) SetSearchTerm(term string) {
	s.store.Dispatch(conversation.SetSearchTerm{Term: term})
}

// SetFilter replaces the chat list filter.
func (s *ChatService) SetFilter(f chat.Filter) error {
	f, err := chat.ParseFilter(string(f))
	if err != nil {
		return err
	}
	s.store.Dispatch(conversation.SetFilter{Filter: f})
	return nil
}

// TogglePinned flips the pinned flag of a chat.
func (s *ChatService) TogglePinned(id string) error {
	return s.dispatchOn(id, conversation.TogglePinned{ChatID: id})
}

// ToggleMute flips the muted flag of a chat.
func (s *ChatService) ToggleMute(id string) error {
	return s.dispatchOn(id, conversation.ToggleMute{ChatID: id})
}

// ArchiveChat sets the archived flag of a chat.
func (s *ChatService) ArchiveChat(id string, archived bool) error {
	return s.dispatchOn(id, conversation.ArchiveChat{ChatID: id, Archived: archived})
}

// MarkRead clears the unread counter of a chat without selecting it.
func (s *ChatService) MarkRead(id string) error {
	return s.dispatchOn(id, conversation.MarkChatRead{ChatID: id})
}

// dispatchOn dispatches a only if chat id exists at dispatch time.
func (s *ChatService) dispatchOn(id string, a conversation.Action) error {
	found := false
	s.store.DispatchFunc(func(st conversation.State) conversation.Action {
		if st.FindChat(id) < 0 {
			return nil
		}
		found = true
		return a
	})
	if !found {
		return fmt.Errorf("%w: %s", ErrChatNotFound, id)
	}
	return nil
}

// StartChat opens the one-to-one chat with a contact, creating it when it
// does not exist yet. The chat becomes active either way.
func (s *ChatService) StartChat(contactID string) (chat.Chat, error) {
	i := slices.IndexFunc(s.contacts, func(c chat.Contact) bool { return c.ID == contactID })
	if i < 0 {
		return chat.Chat{}, fmt.Errorf("%w: %s", ErrContactNotFound, contactID)
	}
	contact := s.contacts[i]
	id := chat.DirectChatID(contact.ID)

	created := false
	st := s.store.DispatchFunc(func(st conversation.State) conversation.Action {
		if st.FindChat(id) >= 0 {
			return conversation.SetActiveChat{ChatID: id}
		}
		created = true
		return conversation.CreateChat{Chat: chat.Chat{
			ID:                 id,
			Title:              contact.Name,
			Participants:       []chat.Contact{s.me, contact},
			LastActivity:       s.now(),
			LastMessagePreview: NewChatPreview,
			Messages:           []chat.Message{},
		}}
	})

	c, _ := st.Chat(id)
	if created {
		s.logger.Info("chat created", zap.String("chat_id", id), zap.String("contact", contact.Name))
	}
	return c, nil
}

// Me returns the local user.
func (s *ChatService) Me() chat.Contact {
	return s.me
}

// Contacts returns the address book.
func (s *ChatService) Contacts() []chat.Contact {
	return slices.Clone(s.contacts)
}

// FindContacts returns the contacts whose name or phone contains query,
// case-insensitively. The local user is never included.
func (s *ChatService) FindContacts(query string) []chat.Contact {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []chat.Contact
	for _, c := range s.contacts {
		if c.ID == s.me.ID {
			continue
		}
		if q == "" || strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(c.Phone, q) {
			out = append(out, c)
		}
	}
	return out
}

// Watch subscribes to state changes. The returned function unsubscribes.
func (s *ChatService) Watch(bufSize int) (<-chan bus.Event, func()) {
	return s.bus.Subscribe(bus.TopicState, bufSize)
}
