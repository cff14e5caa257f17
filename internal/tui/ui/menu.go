package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

// menuRows is the number of hints stacked per column, matching the header height.
const menuRows = 9

// Menu displays keyboard shortcut hints in columns.
type Menu struct {
	*tview.TextView
	theme *Theme
}

// NewMenu creates a new menu hint bar.
func NewMenu(theme *Theme) *Menu {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 2, 0)

	return &Menu{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders hints top to bottom, then left to right.
func (m *Menu) Update(hints []MenuHint) {
	m.Clear()

	keyColor := ColorName(m.theme.MenuKeyColor)
	numColor := ColorName(m.theme.NumericKeyColor)

	cols := (len(hints) + menuRows - 1) / menuRows
	width := 0
	for _, h := range hints {
		width = max(width, len(h.Key)+len(h.Description)+3)
	}

	lines := make([]strings.Builder, min(len(hints), menuRows))
	for i, h := range hints {
		kc := keyColor
		if h.Numeric {
			kc = numColor
		}
		row := i % menuRows
		cell := fmt.Sprintf("<%s> %s", h.Key, h.Description)
		pad := ""
		if i/menuRows < cols-1 {
			pad = strings.Repeat(" ", width-len(cell)+2)
		}
		_, _ = fmt.Fprintf(&lines[row], "[%s::b]<%s>[-:-:-] %s%s", kc, h.Key, h.Description, pad)
	}
	for _, l := range lines {
		_, _ = fmt.Fprintln(m, l.String())
	}
}
