package views

import (
	"fmt"
	"slices"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wppsim/internal/conversation"
	"github.com/matheus3301/wppsim/internal/tui/ui"
	"github.com/rivo/tview"
)

// snippetLead is how many runes of context are kept before a match.
const snippetLead = 24

// SearchView is a query line over a table of message hits from every chat.
type SearchView struct {
	*tview.Flex
	theme   *ui.Theme
	input   *tview.InputField
	results *tview.Table
	onQuery func(query string)
	hits    []conversation.MessageHit
}

func NewSearchView(theme *ui.Theme) *SearchView {
	sv := &SearchView{
		theme:   theme,
		input:   tview.NewInputField().SetLabel(" Search: ").SetFieldWidth(0),
		results: tview.NewTable().SetSelectable(true, false).SetFixed(1, 0),
	}
	sv.input.SetBackgroundColor(theme.BgColor)
	sv.input.SetFieldBackgroundColor(theme.BgColor)
	sv.input.SetFieldTextColor(theme.FgColor)
	sv.input.SetLabelColor(theme.MenuKeyColor)
	sv.input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter && sv.onQuery != nil {
			sv.onQuery(sv.input.GetText())
		}
	})

	sv.results.SetBorder(true).
		SetBorderColor(theme.BorderColor).
		SetTitleColor(theme.TitleColor).
		SetBackgroundColor(theme.BgColor)
	sv.results.SetSelectedStyle(tcell.StyleDefault.Foreground(theme.TableCursorFg).Background(theme.TableCursorBg))

	sv.Flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(sv.input, 1, 0, true).
		AddItem(sv.results, 0, 1, false)
	return sv
}

func (sv *SearchView) Name() string { return "Search" }

func (sv *SearchView) SetOnQuery(fn func(query string)) { sv.onQuery = fn }

func (sv *SearchView) SetQuery(q string) { sv.input.SetText(q) }

// Update shows hits for query with the matched text highlighted.
func (sv *SearchView) Update(query string, hits []conversation.MessageHit) {
	sv.hits = hits
	sv.results.Clear()
	sv.results.SetTitle(fmt.Sprintf(" Results [%s](%d)[-] ", ui.ColorName(sv.theme.CounterColor), len(hits)))

	for col, h := range []string{" CHAT", " MESSAGE", " TIME"} {
		sv.results.SetCell(0, col, tview.NewTableCell(h).
			SetSelectable(false).
			SetTextColor(sv.theme.TableHeaderFg).
			SetBackgroundColor(sv.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold))
	}

	if len(hits) == 0 {
		if query != "" {
			sv.results.SetCell(1, 1, tview.NewTableCell(" No messages match "+clean(query)).
				SetSelectable(false).
				SetTextColor(sv.theme.MutedColor))
		}
		return
	}

	mark := ui.ColorName(sv.theme.CounterColor)
	for i, h := range hits {
		row := i + 1
		sv.results.SetCell(row, 0, tview.NewTableCell(" "+clean(h.ChatTitle)).SetMaxWidth(25).SetTextColor(sv.theme.FgColor))
		sv.results.SetCell(row, 1, tview.NewTableCell(" "+snippet(h.Message.Content, query, mark)).SetExpansion(1).SetTextColor(sv.theme.FgColor))
		sv.results.SetCell(row, 2, tview.NewTableCell(" "+formatTimestamp(h.Message.Timestamp)).SetMaxWidth(12).SetTextColor(sv.theme.MutedColor))
	}
	sv.results.Select(1, 0)
}

// snippet returns content trimmed to start shortly before the first
// case-insensitive match of query, with the match wrapped in color tags.
func snippet(content, query, color string) string {
	text := []rune(sanitizeForTerminal(content))
	q := []rune(query)
	at := indexFold(text, q)
	if at < 0 || len(q) == 0 {
		return clean(content)
	}
	prefix := ""
	start := max(0, at-snippetLead)
	if start > 0 {
		prefix = "…"
	}
	end := at + len(q)
	return prefix + tview.Escape(string(text[start:at])) +
		"[" + color + "::b]" + tview.Escape(string(text[at:end])) + "[-::-]" +
		tview.Escape(string(text[end:]))
}

// indexFold finds needle in haystack ignoring case, as a rune index.
func indexFold(haystack, needle []rune) int {
	lower := func(rs []rune) []rune {
		out := slices.Clone(rs)
		for i, r := range out {
			out[i] = unicode.ToLower(r)
		}
		return out
	}
	h, n := lower(haystack), lower(needle)
	for i := 0; i+len(n) <= len(h); i++ {
		if slices.Equal(h[i:i+len(n)], n) {
			return i
		}
	}
	return -1
}

// SelectedResult returns the chat and message id of the highlighted hit.
func (sv *SearchView) SelectedResult() (chatID, msgID string) {
	row, _ := sv.results.GetSelection()
	if row < 1 || row > len(sv.hits) {
		return "", ""
	}
	h := sv.hits[row-1]
	return h.ChatID, h.Message.ID
}

func (sv *SearchView) Input() *tview.InputField { return sv.input }

func (sv *SearchView) Results() *tview.Table { return sv.results }
