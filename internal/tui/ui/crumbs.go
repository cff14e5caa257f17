package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

// Crumbs is a breadcrumb bar showing the current navigation path.
type Crumbs struct {
	*tview.TextView
	theme *Theme
}

// NewCrumbs creates a new breadcrumb bar.
func NewCrumbs(theme *Theme) *Crumbs {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)

	return &Crumbs{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the breadcrumb trail from the page stack. The top page is
// highlighted.
func (c *Crumbs) Update(stack []string) {
	c.Clear()

	parts := make([]string, len(stack))
	for i, name := range stack {
		fg, bg, attr := c.theme.CrumbInactiveFg, c.theme.CrumbInactiveBg, ""
		if i == len(stack)-1 {
			fg, bg, attr = c.theme.CrumbActiveFg, c.theme.CrumbActiveBg, "b"
		}
		parts[i] = fmt.Sprintf("[%s:%s:%s] <%s> [-:-:-]", ColorName(fg), ColorName(bg), attr, strings.ToLower(tview.Escape(name)))
	}
	_, _ = fmt.Fprint(c, strings.Join(parts, " "))
}
