package views

import (
	"fmt"
	"time"

	"github.com/matheus3301/wppsim/internal/chat"
	"github.com/matheus3301/wppsim/internal/tui/ui"
	"github.com/rivo/tview"
)

// now is the clock used for relative dates.
var now = time.Now

// formatTimestamp renders a list timestamp: the time of day for today,
// "Yesterday", or the date.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.Local()
	today := now().Local()
	switch {
	case sameDay(t, today):
		return t.Format("15:04")
	case sameDay(t, today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return t.Format("01/02")
	}
}

// dayLabel renders the separator shown above each day of a thread.
func dayLabel(day time.Time) string {
	today := now().Local()
	switch {
	case sameDay(day, today):
		return "Today"
	case sameDay(day, today.AddDate(0, 0, -1)):
		return "Yesterday"
	case day.Year() == today.Year():
		return day.Format("Monday, Jan 2")
	default:
		return day.Format("Jan 2, 2006")
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// statusGlyph renders the delivery ticks of an outgoing message.
func statusGlyph(s chat.Status, theme *ui.Theme) string {
	switch s {
	case chat.StatusSent:
		return "✓"
	case chat.StatusDelivered:
		return "✓✓"
	case chat.StatusRead:
		return fmt.Sprintf("[%s]✓✓[-]", ui.ColorName(theme.ReadReceiptColor))
	case chat.StatusFailed:
		return fmt.Sprintf("[%s]![-]", ui.ColorName(theme.FlashErrColor))
	}
	return ""
}

// clean prepares user text for a tview cell or text view.
func clean(s string) string {
	return tview.Escape(sanitizeForTerminal(s))
}
