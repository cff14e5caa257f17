package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matheus3301/wppsim/internal/api"
	"github.com/matheus3301/wppsim/internal/chat"
	"github.com/matheus3301/wppsim/internal/conversation"
	"github.com/matheus3301/wppsim/internal/status"
	"github.com/matheus3301/wppsim/internal/tui/ui"
)

// ErrNoActiveChat is returned when an operation needs an open chat.
var ErrNoActiveChat = errors.New("no chat is open")

// StatusSource reports the session lifecycle state.
type StatusSource interface {
	Current() status.State
}

// PendingCounter reports scheduled simulation work.
type PendingCounter interface {
	Pending() int
}

// ViewModel adapts the chat and message services for the TUI. Failures are
// reported on Flash as well as returned.
type ViewModel struct {
	chats    *api.ChatService
	messages *api.MessageService
	status   StatusSource
	pending  PendingCounter
	session  string
	started  time.Time

	Flash *ui.FlashModel

	refreshCh chan struct{}
}

// NewViewModel creates a view model for the named session.
func NewViewModel(session string, chats *api.ChatService, messages *api.MessageService, st StatusSource, pending PendingCounter) *ViewModel {
	return &ViewModel{
		chats:     chats,
		messages:  messages,
		status:    st,
		pending:   pending,
		session:   session,
		started:   time.Now(),
		Flash:     ui.NewFlashModel(),
		refreshCh: make(chan struct{}, 1),
	}
}

// Run forwards state changes to RefreshCh until ctx is done.
func (vm *ViewModel) Run(ctx context.Context) {
	events, unsubscribe := vm.chats.Watch(32)
	defer unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			vm.signalRefresh()
		}
	}
}

// RefreshCh signals that state changed. Signals coalesce.
func (vm *ViewModel) RefreshCh() <-chan struct{} {
	return vm.refreshCh
}

func (vm *ViewModel) signalRefresh() {
	select {
	case vm.refreshCh <- struct{}{}:
	default:
	}
}

// State returns the current conversation state.
func (vm *ViewModel) State() conversation.State {
	return vm.chats.State()
}

// VisibleChats returns the chats shown in the list.
func (vm *ViewModel) VisibleChats() []chat.Chat {
	return vm.chats.VisibleChats()
}

// ActiveChat returns the open chat, if any.
func (vm *ViewModel) ActiveChat() (chat.Chat, bool) {
	return vm.chats.ActiveChat()
}

// Me returns the local user.
func (vm *ViewModel) Me() chat.Contact {
	return vm.chats.Me()
}

// Chat returns one chat by id.
func (vm *ViewModel) Chat(id string) (chat.Chat, error) {
	return vm.chats.Chat(id)
}

// Open makes id the active chat.
func (vm *ViewModel) Open(id string) error {
	return vm.report(vm.chats.SetActiveChat(id))
}

// Close clears the active chat.
func (vm *ViewModel) Close() {
	_ = vm.chats.SetActiveChat("")
}

// Send sends text to the active chat.
func (vm *ViewModel) Send(text string) error {
	c, ok := vm.chats.ActiveChat()
	if !ok {
		return vm.report(ErrNoActiveChat)
	}
	_, err := vm.messages.SendMessage(c.ID, text)
	return vm.report(err)
}

// TogglePin flips the pinned flag of id.
func (vm *ViewModel) TogglePin(id string) error {
	return vm.toggle(id, vm.chats.TogglePinned, func(c chat.Chat) string {
		return onOff(c.Pinned, "Pinned", "Unpinned")
	})
}

// ToggleMute flips the muted flag of id.
func (vm *ViewModel) ToggleMute(id string) error {
	return vm.toggle(id, vm.chats.ToggleMute, func(c chat.Chat) string {
		return onOff(c.Muted, "Muted", "Unmuted")
	})
}

// ToggleArchive archives id, or unarchives it if already archived.
func (vm *ViewModel) ToggleArchive(id string) error {
	return vm.toggle(id, func(id string) error {
		c, err := vm.chats.Chat(id)
		if err != nil {
			return err
		}
		return vm.chats.ArchiveChat(id, !c.Archived)
	}, func(c chat.Chat) string {
		return onOff(c.Archived, "Archived", "Unarchived")
	})
}

func (vm *ViewModel) toggle(id string, op func(string) error, describe func(chat.Chat) string) error {
	if id == "" {
		return nil
	}
	if err := op(id); err != nil {
		return vm.report(err)
	}
	if c, err := vm.chats.Chat(id); err == nil {
		vm.Flash.Info(fmt.Sprintf("%s %s", describe(c), c.Title))
	}
	return nil
}

func onOff(on bool, yes, no string) string {
	if on {
		return yes
	}
	return no
}

// CycleFilter advances to the next chat list filter and returns it.
func (vm *ViewModel) CycleFilter() chat.Filter {
	next := vm.chats.State().Filter.Next()
	_ = vm.chats.SetFilter(next)
	return next
}

// ApplyFilter sets the chat list filter by name.
func (vm *ViewModel) ApplyFilter(name string) error {
	return vm.report(vm.chats.SetFilter(chat.Filter(name)))
}

// SetSearch sets the chat list search term.
func (vm *ViewModel) SetSearch(term string) {
	vm.chats.SetSearchTerm(term)
}

// FindChat returns the first chat, in list order and regardless of filter,
// whose title contains name case-insensitively.
func (vm *ViewModel) FindChat(name string) (chat.Chat, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return chat.Chat{}, false
	}
	for _, c := range vm.chats.State().Chats {
		if strings.Contains(strings.ToLower(c.Title), q) {
			return c, true
		}
	}
	return chat.Chat{}, false
}

// FindContacts returns contacts matching query.
func (vm *ViewModel) FindContacts(query string) []chat.Contact {
	return vm.chats.FindContacts(query)
}

// StartChat opens or creates the direct chat with a contact.
func (vm *ViewModel) StartChat(contactID string) (chat.Chat, error) {
	c, err := vm.chats.StartChat(contactID)
	if err != nil {
		return chat.Chat{}, vm.report(err)
	}
	return c, nil
}

// StartChatByName starts a chat with the first contact matching name.
func (vm *ViewModel) StartChatByName(name string) (chat.Chat, error) {
	matches := vm.chats.FindContacts(name)
	if strings.TrimSpace(name) == "" || len(matches) == 0 {
		return chat.Chat{}, vm.report(fmt.Errorf("%w: %q", api.ErrContactNotFound, name))
	}
	return vm.StartChat(matches[0].ID)
}

// Search returns messages containing query across all chats.
func (vm *ViewModel) Search(query string) []conversation.MessageHit {
	hits := vm.messages.SearchMessages(query)
	if strings.TrimSpace(query) != "" {
		vm.Flash.Info(fmt.Sprintf("%d matches for %q", len(hits), query))
	}
	return hits
}

// SessionData summarises the session for the header.
func (vm *ViewModel) SessionData() *ui.SessionData {
	st := vm.chats.State()
	me := vm.chats.Me()
	msgs := 0
	for _, c := range st.Chats {
		msgs += len(c.Messages)
	}
	data := &ui.SessionData{
		Session:       vm.session,
		User:          me.Name,
		Phone:         me.Phone,
		ChatCount:     len(st.Chats),
		UnreadCount:   conversation.UnreadChats(st),
		ArchivedCount: conversation.ArchivedCount(st),
		MessageCount:  msgs,
		Uptime:        time.Since(vm.started),
	}
	if vm.status != nil {
		data.Status = string(vm.status.Current())
	}
	if vm.pending != nil {
		data.Pending = vm.pending.Pending()
	}
	return data
}

func (vm *ViewModel) report(err error) error {
	if err != nil {
		vm.Flash.Err(err)
	}
	return err
}
