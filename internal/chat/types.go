package chat

import (
	"fmt"
	"time"
)

// Direction tells whether a message was written locally or by a remote participant.
type Direction string

const (
	Incoming Direction = "incoming"
	Outgoing Direction = "outgoing"
)

// MessageType is the content kind of a message.
type MessageType string

const (
	TypeText     MessageType = "text"
	TypeImage    MessageType = "image"
	TypeVoice    MessageType = "voice"
	TypeAudio    MessageType = "audio"
	TypeDocument MessageType = "document"
	TypeVideo    MessageType = "video"
	TypeSticker  MessageType = "sticker"
	TypeLocation MessageType = "location"
	TypeContact  MessageType = "contact"
)

// Contact is reference data for a person the local user can chat with.
type Contact struct {
	ID       string    `json:"id" toml:"id"`
	Name     string    `json:"name" toml:"name"`
	Phone    string    `json:"phone" toml:"phone"`
	About    string    `json:"about" toml:"about"`
	Avatar   string    `json:"avatar" toml:"avatar"`
	LastSeen time.Time `json:"lastSeen" toml:"-"`
	IsOnline bool      `json:"isOnline" toml:"online"`
}

// Attachment is a file carried by a message.
type Attachment struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Size      string      `json:"size"`
	URL       string      `json:"url"`
	Thumbnail string      `json:"thumbnail,omitempty"`
	Type      MessageType `json:"type"`
}

// Validate reports whether the attachment type is one attachments may carry.
func (a Attachment) Validate() error {
	switch a.Type {
	case TypeImage, TypeDocument, TypeVideo, TypeAudio:
		return nil
	}
	return fmt.Errorf("attachment %s: unsupported type %q", a.ID, a.Type)
}

// ReplyRef points at the message a reply quotes.
type ReplyRef struct {
	ID      string `json:"id"`
	Preview string `json:"preview"`
}

// Reaction is a single emoji reaction, in the order it was added.
type Reaction struct {
	Emoji  string `json:"emoji"`
	Sender string `json:"sender"`
}

// Message is a single entry in a chat. Only Status and Reactions change after creation.
type Message struct {
	ID          string       `json:"id"`
	Direction   Direction    `json:"direction"`
	Type        MessageType  `json:"type"`
	Content     string       `json:"content"`
	Timestamp   time.Time    `json:"timestamp"`
	Status      Status       `json:"status"`
	Attachments []Attachment `json:"attachments,omitempty"`
	ReplyTo     *ReplyRef    `json:"replyTo,omitempty"`
	Starred     bool         `json:"starred,omitempty"`
	Reactions   []Reaction   `json:"reactions,omitempty"`
}

// Chat is a conversation thread with one or more contacts.
type Chat struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	IsGroup            bool      `json:"isGroup"`
	Participants       []Contact `json:"participants"`
	UnreadCount        int       `json:"unreadCount"`
	Muted              bool      `json:"muted"`
	Pinned             bool      `json:"pinned"`
	Archived           bool      `json:"archived"`
	LastActivity       time.Time `json:"lastActivity"`
	LastMessagePreview string    `json:"lastMessagePreview"`
	Wallpaper          string    `json:"wallpaper,omitempty"`
	Messages           []Message `json:"messages"`
}

// DirectChatID returns the reserved id of the one-to-one chat with a contact.
func DirectChatID(contactID string) string {
	return "chat-" + contactID
}

// Others returns the participants other than the given local user id.
func (c *Chat) Others(meID string) []Contact {
	var out []Contact
	for _, p := range c.Participants {
		if p.ID != meID {
			out = append(out, p)
		}
	}
	return out
}

// LastMessage returns the most recent message, if any.
func (c *Chat) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}
