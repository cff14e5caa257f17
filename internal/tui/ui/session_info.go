package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/tview"
)

// SessionData is the header summary of the running session.
type SessionData struct {
	Session       string
	User          string
	Phone         string
	Status        string
	ChatCount     int
	UnreadCount   int
	ArchivedCount int
	MessageCount  int
	Pending       int
	Uptime        time.Duration
}

// SessionInfo displays session metadata in the header.
type SessionInfo struct {
	*tview.TextView
	theme *Theme
}

// NewSessionInfo creates a new session info panel.
func NewSessionInfo(theme *Theme) *SessionInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 1)

	return &SessionInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the session info.
func (si *SessionInfo) Update(data *SessionData) {
	si.Clear()
	if data == nil {
		return
	}

	rows := [][2]string{
		{"Session", data.Session},
		{"User", orDash(data.User)},
		{"Phone", orDash(data.Phone)},
		{"Status", data.Status},
		{"Chats", fmt.Sprintf("%d (%d archived)", data.ChatCount, data.ArchivedCount)},
		{"Unread", fmt.Sprintf("%d", data.UnreadCount)},
		{"Msgs", fmt.Sprintf("%d", data.MessageCount)},
		{"Pending", fmt.Sprintf("%d", data.Pending)},
		{"Uptime", formatDuration(data.Uptime)},
	}

	label := ColorName(si.theme.FgColor)
	value := ColorName(si.theme.CounterColor)
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("[%s::b]%-8s[-:-:-] [%s]%s[-]", label, r[0]+":", value, tview.Escape(r[1]))
	}
	_, _ = fmt.Fprint(si, strings.Join(lines, "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}
