package views

import (
	"fmt"

	"github.com/matheus3301/wppsim/internal/tui/keys"
	"github.com/matheus3301/wppsim/internal/tui/ui"
	"github.com/rivo/tview"
)

// CommandHelp documents one prompt command.
type CommandHelp struct {
	Usage       string
	Description string
}

// HelpView displays the key binding and command reference.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view.
func NewHelpView(theme *ui.Theme) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Help ")
	tv.SetTitleColor(theme.TitleColor)

	return &HelpView{
		TextView: tv,
		theme:    theme,
	}
}

// Name implements Component.
func (hv *HelpView) Name() string { return "Help" }

// Update renders the reference from the registered key sections and the
// prompt commands.
func (hv *HelpView) Update(sections []keys.Section, commands []CommandHelp) {
	hv.Clear()
	kc := ui.ColorName(hv.theme.MenuKeyColor)

	for _, s := range sections {
		if len(s.Bindings) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(hv, "\n  [::b]%s[-:-:-]\n\n", tview.Escape(s.Title))
		for _, b := range s.Bindings {
			if b.Hidden {
				continue
			}
			_, _ = fmt.Fprintf(hv, "  [%s]%-8s[-:-:-] %s\n", kc, tview.Escape(b.Label), b.Description)
		}
	}

	_, _ = fmt.Fprint(hv, "\n  [::b]Commands (: mode)[-:-:-]\n\n")
	for _, c := range commands {
		_, _ = fmt.Fprintf(hv, "  [%s]%-20s[-:-:-] %s\n", kc, tview.Escape(c.Usage), c.Description)
	}
}

// Text returns the rendered help without color tags.
func (hv *HelpView) Text() string {
	return hv.GetText(true)
}
