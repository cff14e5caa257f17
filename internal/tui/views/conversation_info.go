package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/wppsim/internal/chat"
	"github.com/matheus3301/wppsim/internal/tui/ui"
	"github.com/rivo/tview"
)

// ConversationInfo displays detailed information about a conversation.
type ConversationInfo struct {
	*tview.TextView
	theme *ui.Theme
}

// NewConversationInfo creates a new conversation info view.
func NewConversationInfo(theme *ui.Theme) *ConversationInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Conversation Details ")
	tv.SetTitleColor(theme.TitleColor)

	return &ConversationInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Name implements Component.
func (ci *ConversationInfo) Name() string { return "Details" }

// Update renders details for c as seen by the local user meID. Direct
// chats include a scannable contact card.
func (ci *ConversationInfo) Update(c chat.Chat, meID string) {
	ci.Clear()
	ci.SetTitle(fmt.Sprintf(" %s Details ", clean(c.Title)))

	label := ui.ColorName(ci.theme.FgColor)
	value := ui.ColorName(ci.theme.CounterColor)
	row := func(name, v string) {
		_, _ = fmt.Fprintf(ci, " [%s::b]%-13s[-:-:-] [%s]%s[-]\n", label, name+":", value, clean(v))
	}

	kind := "Direct Message"
	if c.IsGroup {
		kind = "Group"
	}
	var flags []string
	for _, f := range []struct {
		on   bool
		name string
	}{{c.Pinned, "pinned"}, {c.Muted, "muted"}, {c.Archived, "archived"}} {
		if f.on {
			flags = append(flags, f.name)
		}
	}
	if len(flags) == 0 {
		flags = []string{"-"}
	}

	_, _ = fmt.Fprintln(ci)
	row("Name", c.Title)
	row("ID", c.ID)
	row("Type", kind)
	row("Messages", fmt.Sprintf("%d", len(c.Messages)))
	row("Unread", fmt.Sprintf("%d", c.UnreadCount))
	row("Flags", strings.Join(flags, ", "))
	row("Last Active", formatTimestamp(c.LastActivity))
	row("Last Message", c.LastMessagePreview)
	if c.Wallpaper != "" {
		row("Wallpaper", c.Wallpaper)
	}

	others := c.Others(meID)
	_, _ = fmt.Fprintf(ci, "\n [%s::b]Participants (%d)[-:-:-]\n", ui.ColorName(ci.theme.TitleColor), len(c.Participants))
	for _, p := range c.Participants {
		presence := "last seen " + formatTimestamp(p.LastSeen)
		switch {
		case p.ID == meID:
			presence = "you"
		case p.IsOnline:
			presence = "online"
		case p.LastSeen.IsZero():
			presence = "-"
		}
		_, _ = fmt.Fprintf(ci, "  %s  [%s]%s · %s[-]\n", clean(p.Name), ui.ColorName(ci.theme.MutedColor), clean(p.Phone), presence)
		if p.About != "" && p.ID != meID {
			_, _ = fmt.Fprintf(ci, "    [%s]%s[-]\n", ui.ColorName(ci.theme.MutedColor), clean(p.About))
		}
	}

	if c.IsGroup || len(others) != 1 {
		return
	}
	qr, err := renderQR(contactCard(others[0]))
	if err != nil {
		_, _ = fmt.Fprintf(ci, "\n [%s]%s[-]\n", ui.ColorName(ci.theme.FlashErrColor), clean(err.Error()))
		return
	}
	_, _ = fmt.Fprintf(ci, "\n [%s::b]Contact card[-:-:-]\n\n%s", ui.ColorName(ci.theme.TitleColor), qr)
}

// Text returns the rendered details without color tags.
func (ci *ConversationInfo) Text() string {
	return ci.GetText(true)
}
