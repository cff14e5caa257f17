// Package seed provides the sample dataset a new session starts from.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/matheus3301/wppsim/internal/chat"
	"github.com/matheus3301/wppsim/internal/conversation"
)

//go:embed seed.toml
var defaultData []byte

// Dataset is the local user, their address book and the sample chats.
type Dataset struct {
	Me       chat.Contact
	Contacts []chat.Contact
	Chats    []chat.Chat
}

type file struct {
	Me       contactRecord   `toml:"me"`
	Contacts []contactRecord `toml:"contacts"`
	Chats    []chatRecord    `toml:"chats"`
}

type contactRecord struct {
	chat.Contact
	LastSeenMinutes int `toml:"last_seen_minutes"`
}

type chatRecord struct {
	ID           string          `toml:"id"`
	Title        string          `toml:"title"`
	IsGroup      bool            `toml:"is_group"`
	Participants []string        `toml:"participants"`
	Unread       int             `toml:"unread"`
	Muted        bool            `toml:"muted"`
	Pinned       bool            `toml:"pinned"`
	Archived     bool            `toml:"archived"`
	Wallpaper    string          `toml:"wallpaper"`
	Messages     []messageRecord `toml:"messages"`
}

type messageRecord struct {
	ID          string             `toml:"id"`
	From        string             `toml:"from"`
	Type        chat.MessageType   `toml:"type"`
	Content     string             `toml:"content"`
	MinutesAgo  int                `toml:"minutes_ago"`
	Status      chat.Status        `toml:"status"`
	ReplyTo     string             `toml:"reply_to"`
	Starred     bool               `toml:"starred"`
	Attachments []attachmentRecord `toml:"attachments"`
	Reactions   []reactionRecord   `toml:"reactions"`
}

type attachmentRecord struct {
	ID        string           `toml:"id"`
	Name      string           `toml:"name"`
	Size      string           `toml:"size"`
	URL       string           `toml:"url"`
	Thumbnail string           `toml:"thumbnail"`
	Type      chat.MessageType `toml:"type"`
}

type reactionRecord struct {
	Emoji  string `toml:"emoji"`
	Sender string `toml:"sender"`
}

// Load parses the embedded dataset relative to the current time.
func Load() (Dataset, error) {
	return Parse(defaultData, time.Now())
}

// Parse decodes a TOML dataset. Relative times are resolved against now.
func Parse(data []byte, now time.Time) (Dataset, error) {
	var f file
	if _, err := toml.Decode(string(data), &f); err != nil {
		return Dataset{}, fmt.Errorf("decode seed: %w", err)
	}
	if f.Me.ID == "" {
		return Dataset{}, fmt.Errorf("seed: missing [me] id")
	}

	me := f.Me.resolve(now)
	people := map[string]chat.Contact{me.ID: me}
	ds := Dataset{Me: me}
	for _, rec := range f.Contacts {
		if _, dup := people[rec.ID]; dup {
			return Dataset{}, fmt.Errorf("seed: duplicate contact %q", rec.ID)
		}
		c := rec.resolve(now)
		people[c.ID] = c
		ds.Contacts = append(ds.Contacts, c)
	}

	seen := make(map[string]bool)
	for _, rec := range f.Chats {
		if seen[rec.ID] {
			return Dataset{}, fmt.Errorf("seed: duplicate chat %q", rec.ID)
		}
		seen[rec.ID] = true
		c, err := rec.build(people, me.ID, now)
		if err != nil {
			return Dataset{}, err
		}
		ds.Chats = append(ds.Chats, c)
	}
	return ds, nil
}

// State is the initial conversation state for a fresh session: chats
// sorted, the first chat opened (and so read) and no filtering.
func (d Dataset) State() conversation.State {
	s := conversation.State{
		Chats:  conversation.SortChats(d.Chats),
		Filter: chat.FilterAll,
	}
	if len(s.Chats) > 0 {
		s = conversation.Apply(s, conversation.SetActiveChat{ChatID: s.Chats[0].ID})
	}
	return s
}

func (r contactRecord) resolve(now time.Time) chat.Contact {
	c := r.Contact
	c.LastSeen = now.Add(-time.Duration(r.LastSeenMinutes) * time.Minute)
	return c
}

func (r chatRecord) build(people map[string]chat.Contact, meID string, now time.Time) (chat.Chat, error) {
	c := chat.Chat{
		ID:          r.ID,
		Title:       r.Title,
		IsGroup:     r.IsGroup,
		UnreadCount: r.Unread,
		Muted:       r.Muted,
		Pinned:      r.Pinned,
		Archived:    r.Archived,
		Wallpaper:   r.Wallpaper,
		Messages:    []chat.Message{},
	}
	for _, id := range r.Participants {
		p, ok := people[id]
		if !ok {
			return chat.Chat{}, fmt.Errorf("seed: chat %s: unknown participant %q", r.ID, id)
		}
		c.Participants = append(c.Participants, p)
	}

	byID := make(map[string]chat.Message)
	for _, rec := range r.Messages {
		m, err := rec.build(meID, now, byID)
		if err != nil {
			return chat.Chat{}, fmt.Errorf("seed: chat %s: %w", r.ID, err)
		}
		byID[m.ID] = m
		c.Messages = append(c.Messages, m)
	}

	if last, ok := c.LastMessage(); ok {
		c.LastActivity = last.Timestamp
		c.LastMessagePreview = last.Content
	} else {
		c.LastActivity = now
	}
	return c, nil
}

func (r messageRecord) build(meID string, now time.Time, earlier map[string]chat.Message) (chat.Message, error) {
	m := chat.Message{
		ID:        r.ID,
		Direction: chat.Incoming,
		Type:      r.Type,
		Content:   r.Content,
		Timestamp: now.Add(-time.Duration(r.MinutesAgo) * time.Minute),
		Status:    r.Status,
		Starred:   r.Starred,
	}
	if r.From == meID {
		m.Direction = chat.Outgoing
	}
	if m.Type == "" {
		m.Type = chat.TypeText
	}
	if m.Status == "" {
		m.Status = chat.StatusRead
	}
	if !m.Status.Valid() {
		return chat.Message{}, fmt.Errorf("message %s: unknown status %q", r.ID, r.Status)
	}

	for _, a := range r.Attachments {
		att := chat.Attachment{ID: a.ID, Name: a.Name, Size: a.Size, URL: a.URL, Thumbnail: a.Thumbnail, Type: a.Type}
		if err := att.Validate(); err != nil {
			return chat.Message{}, fmt.Errorf("message %s: %w", r.ID, err)
		}
		m.Attachments = append(m.Attachments, att)
	}
	for _, rx := range r.Reactions {
		m.Reactions = append(m.Reactions, chat.Reaction{Emoji: rx.Emoji, Sender: rx.Sender})
	}
	if r.ReplyTo != "" {
		quoted, ok := earlier[r.ReplyTo]
		if !ok {
			return chat.Message{}, fmt.Errorf("message %s: reply to unknown message %q", r.ID, r.ReplyTo)
		}
		m.ReplyTo = &chat.ReplyRef{ID: quoted.ID, Preview: quoted.Content}
	}
	return m, nil
}
