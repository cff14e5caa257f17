package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wppsim/internal/chat"
	"github.com/matheus3301/wppsim/internal/conversation"
	"github.com/matheus3301/wppsim/internal/tui/ui"
	"github.com/rivo/tview"
)

// MessageThread displays messages and a composer for a single chat.
type MessageThread struct {
	*tview.Flex
	theme    *ui.Theme
	messages *tview.TextView
	composer *tview.InputField
	chatName string
	chatID   string
	onSend   func(text string)
}

// NewMessageThread creates a new message thread view.
func NewMessageThread(theme *ui.Theme) *MessageThread {
	messages := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	messages.SetBorder(true)
	messages.SetBorderColor(theme.BorderColor)
	messages.SetBackgroundColor(theme.BgColor)
	messages.SetTextColor(theme.FgColor)
	messages.SetTitle(" Messages ")
	messages.SetTitleColor(theme.TitleColor)

	composer := tview.NewInputField().
		SetLabel(" > ").
		SetFieldWidth(0).
		SetPlaceholder("Type a message")
	composer.SetBorder(true)
	composer.SetBorderColor(theme.BorderColor)
	composer.SetBackgroundColor(theme.BgColor)
	composer.SetFieldBackgroundColor(theme.BgColor)
	composer.SetFieldTextColor(theme.FgColor)
	composer.SetPlaceholderTextColor(theme.MutedColor)
	composer.SetLabelColor(theme.MenuKeyColor)
	composer.SetTitle(" Compose (i to focus) ")
	composer.SetTitleColor(theme.TitleColor)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(messages, 0, 1, true).
		AddItem(composer, 3, 0, false)

	mt := &MessageThread{
		Flex:     flex,
		theme:    theme,
		messages: messages,
		composer: composer,
	}

	composer.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter || mt.onSend == nil {
			return
		}
		// Whitespace-only drafts are rejected downstream and kept in the field.
		text := composer.GetText()
		if strings.TrimSpace(text) == "" {
			return
		}
		mt.onSend(text)
		composer.SetText("")
	})

	return mt
}

// Name implements Component.
func (mt *MessageThread) Name() string {
	if mt.chatName != "" {
		return mt.chatName
	}
	return "Messages"
}

// ChatID returns the id of the displayed chat.
func (mt *MessageThread) ChatID() string {
	return mt.chatID
}

// SetOnSend sets the callback when a message is sent.
func (mt *MessageThread) SetOnSend(fn func(text string)) {
	mt.onSend = fn
}

// Update renders c. Messages are grouped by day; consecutive messages from
// the same side share one header.
func (mt *MessageThread) Update(c chat.Chat) {
	switched := c.ID != mt.chatID
	mt.chatID = c.ID
	mt.chatName = c.Title

	title := fmt.Sprintf(" %s ", clean(c.Title))
	if c.IsGroup {
		title = fmt.Sprintf(" %s [::d](%d participants)[::-] ", clean(c.Title), len(c.Participants))
	}
	if c.Muted {
		title += "🔇 "
	}
	mt.messages.SetTitle(title)

	mt.messages.Clear()
	if len(c.Messages) == 0 {
		_, _ = fmt.Fprintf(mt.messages, "\n  [%s]No messages yet. Say hi 👋[-]", ui.ColorName(mt.theme.MutedColor))
		return
	}

	var prev *chat.Message
	for _, group := range conversation.GroupByDay(c.Messages) {
		_, _ = fmt.Fprintf(mt.messages, "[%s::b]── %s ──[-::-]\n\n", ui.ColorName(mt.theme.DayHeaderColor), dayLabel(group.Day))
		prev = nil
		for i := range group.Messages {
			m := group.Messages[i]
			mt.writeMessage(c, prev, m)
			prev = &group.Messages[i]
		}
	}

	if switched {
		mt.messages.ScrollToEnd()
	}
}

func (mt *MessageThread) writeMessage(c chat.Chat, prev *chat.Message, m chat.Message) {
	w := mt.messages
	outgoing := m.Direction == chat.Outgoing

	if !conversation.GroupedWithPrevious(prev, m) {
		sender := clean(c.Title)
		color := mt.theme.IncomingColor
		switch {
		case outgoing:
			sender = "You"
			color = mt.theme.OutgoingColor
		case c.IsGroup:
			sender = "Member"
		}
		_, _ = fmt.Fprintf(w, "[%s::b]%s[-:-:-]\n", ui.ColorName(color), sender)
	}

	if m.ReplyTo != nil {
		_, _ = fmt.Fprintf(w, "  [%s]│ %s[-]\n", ui.ColorName(mt.theme.MutedColor), clean(m.ReplyTo.Preview))
	}

	body := clean(m.Content)
	if icon := typeIcon(m.Type); icon != "" {
		body = icon + " " + body
	}
	if m.Starred {
		body += " ★"
	}
	meta := m.Timestamp.Local().Format("15:04")
	if outgoing {
		meta += " " + statusGlyph(m.Status, mt.theme)
	}
	_, _ = fmt.Fprintf(w, "  %s  [%s]%s[-]\n", body, ui.ColorName(mt.theme.MutedColor), meta)

	for _, a := range m.Attachments {
		_, _ = fmt.Fprintf(w, "  [%s]📎 %s (%s)[-]\n", ui.ColorName(mt.theme.MutedColor), clean(a.Name), clean(a.Size))
	}
	if len(m.Reactions) > 0 {
		emoji := make([]string, len(m.Reactions))
		for i, r := range m.Reactions {
			emoji[i] = sanitizeForTerminal(r.Emoji)
		}
		_, _ = fmt.Fprintf(w, "  %s\n", strings.Join(emoji, " "))
	}
	_, _ = fmt.Fprint(w, "\n")
}

// typeIcon marks non-text messages in the thread.
func typeIcon(t chat.MessageType) string {
	switch t {
	case chat.TypeImage:
		return "🖼"
	case chat.TypeVoice, chat.TypeAudio:
		return "🎤"
	case chat.TypeDocument:
		return "📄"
	case chat.TypeVideo:
		return "🎬"
	case chat.TypeSticker:
		return "🏷"
	case chat.TypeLocation:
		return "📍"
	case chat.TypeContact:
		return "👤"
	}
	return ""
}

// Text returns the rendered thread without color tags.
func (mt *MessageThread) Text() string {
	return mt.messages.GetText(true)
}

// Messages returns the messages text view (for focus management).
func (mt *MessageThread) Messages() *tview.TextView {
	return mt.messages
}

// Composer returns the composer input field (for focus management).
func (mt *MessageThread) Composer() *tview.InputField {
	return mt.composer
}
