package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// PromptMode selects what a submitted prompt line means.
type PromptMode int

const (
	PromptCommand PromptMode = iota // ":" command line
	PromptFilter                    // "/" chat list search
)

const historySize = 50

// Prompt is the single-line input shown above the page for commands and
// chat list searches. Enter on an empty line cancels. Up and Down walk
// back through earlier lines of the same mode.
type Prompt struct {
	*tview.InputField
	theme    *Theme
	mode     PromptMode
	history  map[PromptMode][]string
	cursor   int
	onSubmit func(mode PromptMode, text string)
	onCancel func()
}

func NewPrompt(theme *Theme) *Prompt {
	p := &Prompt{
		InputField: tview.NewInputField(),
		theme:      theme,
		history:    make(map[PromptMode][]string),
	}
	p.SetBorder(true)
	p.SetBorderColor(theme.PromptBorderColor)
	p.SetBackgroundColor(theme.BgColor)
	p.SetFieldBackgroundColor(theme.BgColor)
	p.SetFieldTextColor(theme.FgColor)
	p.SetLabelColor(theme.MenuKeyColor)

	p.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch ev.Key() {
		case tcell.KeyUp:
			p.Recall(-1)
			return nil
		case tcell.KeyDown:
			p.Recall(1)
			return nil
		}
		return ev
	})
	p.SetDoneFunc(p.done)
	return p
}

func (p *Prompt) done(key tcell.Key) {
	if key != tcell.KeyEnter && key != tcell.KeyEscape {
		return
	}
	text := strings.TrimSpace(p.GetText())
	p.SetText("")
	if key == tcell.KeyEscape || text == "" {
		p.cancel()
		return
	}
	p.remember(text)
	if p.onSubmit != nil {
		p.onSubmit(p.mode, text)
	}
}

func (p *Prompt) cancel() {
	if p.onCancel != nil {
		p.onCancel()
	}
}

func (p *Prompt) remember(text string) {
	h := p.history[p.mode]
	if n := len(h); n > 0 && h[n-1] == text {
		return
	}
	h = append(h, text)
	if len(h) > historySize {
		h = h[len(h)-historySize:]
	}
	p.history[p.mode] = h
}

// Recall moves through the history of the current mode by delta and
// shows that entry. Stepping past the newest entry clears the line.
func (p *Prompt) Recall(delta int) {
	h := p.history[p.mode]
	p.cursor = max(0, min(len(h), p.cursor+delta))
	if p.cursor == len(h) {
		p.SetText("")
		return
	}
	p.SetText(h[p.cursor])
}

func (p *Prompt) SetOnSubmit(fn func(mode PromptMode, text string)) {
	p.onSubmit = fn
}

func (p *Prompt) SetOnCancel(fn func()) {
	p.onCancel = fn
}

// Activate clears the line and switches the label and title to mode.
func (p *Prompt) Activate(mode PromptMode) {
	p.mode = mode
	p.cursor = len(p.history[mode])
	p.SetText("")
	switch mode {
	case PromptCommand:
		p.SetLabel(":")
		p.SetTitle(" Command ")
	case PromptFilter:
		p.SetLabel("/")
		p.SetTitle(" Search chats ")
	}
}

func (p *Prompt) Mode() PromptMode {
	return p.mode
}
