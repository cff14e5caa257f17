package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wppsim/internal/chat"
	"github.com/matheus3301/wppsim/internal/tui/ui"
	"github.com/rivo/tview"
)

// ContactPicker lets the user pick a contact to start a chat with.
type ContactPicker struct {
	*tview.Flex
	theme    *ui.Theme
	input    *tview.InputField
	list     *tview.Table
	contacts []chat.Contact
	onQuery  func(query string)
	onPick   func(c chat.Contact)
}

// NewContactPicker creates a new contact picker.
func NewContactPicker(theme *ui.Theme) *ContactPicker {
	input := tview.NewInputField().
		SetLabel(" Contact: ").
		SetFieldWidth(0).
		SetPlaceholder("name or phone")
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetPlaceholderTextColor(theme.MutedColor)
	input.SetLabelColor(theme.MenuKeyColor)

	list := tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	list.SetBorder(true)
	list.SetBorderColor(theme.BorderColor)
	list.SetBackgroundColor(theme.BgColor)
	list.SetTitle(" New Chat ")
	list.SetTitleColor(theme.TitleColor)
	list.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))

	cp := &ContactPicker{
		Flex: tview.NewFlex().
			SetDirection(tview.FlexRow).
			AddItem(input, 1, 0, true).
			AddItem(list, 0, 1, false),
		theme: theme,
		input: input,
		list:  list,
	}

	input.SetChangedFunc(func(text string) {
		if cp.onQuery != nil {
			cp.onQuery(text)
		}
	})
	// Enter in the field picks the best match.
	input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter && len(cp.contacts) > 0 && cp.onPick != nil {
			cp.onPick(cp.contacts[0])
		}
	})
	list.SetSelectedFunc(func(row, _ int) {
		if c, ok := cp.contactAt(row); ok && cp.onPick != nil {
			cp.onPick(c)
		}
	})

	return cp
}

// Name implements Component.
func (cp *ContactPicker) Name() string { return "New Chat" }

// SetOnQuery sets the callback fired as the query text changes.
func (cp *ContactPicker) SetOnQuery(fn func(query string)) {
	cp.onQuery = fn
}

// SetOnPick sets the callback fired when a contact is chosen.
func (cp *ContactPicker) SetOnPick(fn func(c chat.Contact)) {
	cp.onPick = fn
}

// Reset clears the query.
func (cp *ContactPicker) Reset() {
	cp.input.SetText("")
}

// Update lists contacts.
func (cp *ContactPicker) Update(contacts []chat.Contact) {
	cp.contacts = contacts
	cp.list.Clear()

	for col, h := range []string{" NAME", " PHONE", " ABOUT"} {
		cp.list.SetCell(0, col, tview.NewTableCell(h).
			SetSelectable(false).
			SetTextColor(cp.theme.TableHeaderFg).
			SetBackgroundColor(cp.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold))
	}
	for i, c := range contacts {
		name := " " + clean(c.Name)
		if c.IsOnline {
			name += " ●"
		}
		cp.list.SetCell(i+1, 0, tview.NewTableCell(name).SetMaxWidth(28).SetTextColor(cp.theme.FgColor))
		cp.list.SetCell(i+1, 1, tview.NewTableCell(" "+clean(c.Phone)).SetTextColor(cp.theme.FgColor))
		cp.list.SetCell(i+1, 2, tview.NewTableCell(" "+clean(c.About)).SetExpansion(1).SetTextColor(cp.theme.MutedColor))
	}
	if len(contacts) > 0 {
		cp.list.Select(1, 0)
	}
}

// Selected returns the highlighted contact.
func (cp *ContactPicker) Selected() (chat.Contact, bool) {
	row, _ := cp.list.GetSelection()
	return cp.contactAt(row)
}

func (cp *ContactPicker) contactAt(row int) (chat.Contact, bool) {
	if row < 1 || row > len(cp.contacts) {
		return chat.Contact{}, false
	}
	return cp.contacts[row-1], true
}

// Input returns the query field.
func (cp *ContactPicker) Input() *tview.InputField {
	return cp.input
}

// List returns the contact table.
func (cp *ContactPicker) List() *tview.Table {
	return cp.list
}
