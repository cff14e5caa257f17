package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wppsim/internal/chat"
	"github.com/matheus3301/wppsim/internal/tui/ui"
	"github.com/rivo/tview"
)

// ConversationList is the main chat list view.
type ConversationList struct {
	*tview.Table
	theme    *ui.Theme
	chats    []chat.Chat
	filter   chat.Filter
	search   string
	archived int
}

// NewConversationList creates a new conversation list table.
func NewConversationList(theme *ui.Theme) *ConversationList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	table.SetTitle(" Conversations ")
	table.SetTitleColor(theme.TitleColor)

	return &ConversationList{
		Table:  table,
		theme:  theme,
		filter: chat.FilterAll,
	}
}

// Name implements Component.
func (cl *ConversationList) Name() string { return "Conversations" }

// Update refreshes the list with the visible chats. archived is the number
// of archived chats, shown in the title outside the archived filter.
func (cl *ConversationList) Update(chats []chat.Chat, filter chat.Filter, search string, archived int) {
	selected := cl.SelectedChat()
	cl.chats = chats
	cl.filter = filter
	cl.search = search
	cl.archived = archived
	cl.render()
	cl.SelectChat(selected)
}

// SelectChat moves the cursor to the chat with the given id, if listed.
func (cl *ConversationList) SelectChat(id string) {
	for i, c := range cl.chats {
		if c.ID == id {
			cl.Select(i+1, 0)
			return
		}
	}
	if len(cl.chats) > 0 {
		row, _ := cl.GetSelection()
		if row < 1 || row > len(cl.chats) {
			cl.Select(1, 0)
		}
	}
}

func (cl *ConversationList) render() {
	cl.Clear()

	headers := []struct {
		text string
		exp  int
	}{
		{" NAME", 1},
		{" LAST MESSAGE", 2},
		{" TIME", 0},
		{" ", 0},
	}
	for col, h := range headers {
		cell := tview.NewTableCell(h.text).
			SetSelectable(false).
			SetTextColor(cl.theme.TableHeaderFg).
			SetBackgroundColor(cl.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetExpansion(h.exp)
		cl.SetCell(0, col, cell)
	}

	for i, c := range cl.chats {
		row := i + 1
		name := clean(c.Title)
		if c.IsGroup {
			name += " [::d](group)[::-]"
		}

		unreadColor := cl.theme.UnreadColor
		if c.Muted {
			unreadColor = cl.theme.FgColor
		}
		timeCell := tview.NewTableCell(formatTimestamp(c.LastActivity)).SetTextColor(cl.theme.FgColor).SetAlign(tview.AlignRight)
		if c.UnreadCount > 0 {
			timeCell.SetTextColor(unreadColor)
		}

		cl.SetCell(row, 0, tview.NewTableCell(" "+name).SetExpansion(1).SetTextColor(cl.theme.FgColor).SetReference(c.ID))
		cl.SetCell(row, 1, tview.NewTableCell(" "+clean(c.LastMessagePreview)).SetExpansion(2).SetTextColor(cl.theme.FgColor))
		cl.SetCell(row, 2, timeCell)
		cl.SetCell(row, 3, tview.NewTableCell(markers(c, unreadColor)).SetAlign(tview.AlignRight))
	}

	title := fmt.Sprintf(" Conversations[%s::b] <%s>[-::-] (%d) ", ui.ColorName(cl.theme.CounterColor), cl.filter, len(cl.chats))
	if cl.search != "" {
		title += fmt.Sprintf("/%s ", tview.Escape(cl.search))
	}
	if cl.archived > 0 && cl.filter != chat.FilterArchived {
		title += fmt.Sprintf("· archived %d ", cl.archived)
	}
	cl.SetTitle(title)
}

// markers renders the pinned, muted and unread indicators of a chat.
func markers(c chat.Chat, unreadColor tcell.Color) string {
	var parts []string
	if c.Pinned {
		parts = append(parts, "📌")
	}
	if c.Muted {
		parts = append(parts, "🔇")
	}
	if c.Archived {
		parts = append(parts, "🗄")
	}
	if c.UnreadCount > 0 {
		parts = append(parts, fmt.Sprintf("[%s::b](%d)[-::-]", ui.ColorName(unreadColor), c.UnreadCount))
	}
	return " " + strings.Join(parts, " ") + " "
}

// SelectedChat returns the id of the chat under the cursor.
func (cl *ConversationList) SelectedChat() string {
	row, _ := cl.GetSelection()
	return cl.ChatByIndex(row)
}

// ChatByIndex returns the id of the Nth listed conversation (1-based).
func (cl *ConversationList) ChatByIndex(n int) string {
	if n < 1 || n > len(cl.chats) {
		return ""
	}
	return cl.chats[n-1].ID
}
