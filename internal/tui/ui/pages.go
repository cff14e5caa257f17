package ui

import (
	"slices"

	"github.com/rivo/tview"
)

// Pages is a navigation stack over tview.Pages. Only the top page is shown.
type Pages struct {
	*tview.Pages
	stack    []string
	onChange func(stack []string)
}

// NewPages creates an empty page stack.
func NewPages() *Pages {
	return &Pages{
		Pages: tview.NewPages(),
	}
}

// SetOnChange sets a callback that fires when the stack changes.
func (p *Pages) SetOnChange(fn func(stack []string)) {
	p.onChange = fn
}

// Push shows name on top of the stack. If name is already on the stack,
// the pages above it are popped instead, so a page never appears twice.
func (p *Pages) Push(name string) {
	if i := slices.Index(p.stack, name); i >= 0 {
		p.truncate(i + 1)
		return
	}
	if top := p.Current(); top != "" {
		p.HidePage(top)
	}
	p.stack = append(p.stack, name)
	p.show(name)
}

// Pop removes the top page and shows the one beneath it. The root page is
// never popped. Returns the popped page name, or empty if nothing was popped.
func (p *Pages) Pop() string {
	if len(p.stack) <= 1 {
		return ""
	}
	top := p.Current()
	p.truncate(len(p.stack) - 1)
	return top
}

// Has reports whether name is on the stack.
func (p *Pages) Has(name string) bool {
	return slices.Contains(p.stack, name)
}

// Current returns the name of the top page.
func (p *Pages) Current() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1]
}

// Stack returns a copy of the current page stack.
func (p *Pages) Stack() []string {
	return slices.Clone(p.stack)
}

// Depth returns the current stack depth.
func (p *Pages) Depth() int {
	return len(p.stack)
}

// Reset clears the stack and shows only the given page.
func (p *Pages) Reset(name string) {
	for _, n := range p.stack {
		p.HidePage(n)
	}
	p.stack = []string{name}
	p.show(name)
}

func (p *Pages) truncate(n int) {
	for _, name := range p.stack[n:] {
		p.HidePage(name)
	}
	p.stack = p.stack[:n]
	p.show(p.Current())
}

func (p *Pages) show(name string) {
	p.ShowPage(name)
	p.SendToFront(name)
	if p.onChange != nil {
		p.onChange(p.Stack())
	}
}
