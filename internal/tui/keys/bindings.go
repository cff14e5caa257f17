package keys

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wppsim/internal/tui/ui"
)

// Binding maps a key to a handler.
type Binding struct {
	Key         tcell.Key
	Rune        rune
	Label       string
	Description string
	Hidden      bool
	Handler     func()
}

// Rune is a shorthand for a printable key binding labelled by its rune.
func Rune(r rune, description string, handler func()) Binding {
	return Binding{Key: tcell.KeyRune, Rune: r, Label: string(r), Description: description, Handler: handler}
}

// Key is a shorthand for a special key binding.
func Key(k tcell.Key, label, description string, handler func()) Binding {
	return Binding{Key: k, Label: label, Description: description, Handler: handler}
}

// Matches reports whether the key k, carrying r for printable keys, triggers b.
func (b Binding) Matches(k tcell.Key, r rune) bool {
	if b.Key != tcell.KeyRune {
		return k == b.Key
	}
	return k == tcell.KeyRune && r == b.Rune
}

// Section is a titled group of bindings, used by the help page.
type Section struct {
	Title    string
	Bindings []Binding
}

// Registry holds key bindings per view, in registration order. View
// bindings take precedence over global ones.
type Registry struct {
	global []Binding
	views  map[string][]Binding
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{views: make(map[string][]Binding)}
}

// AddGlobal registers bindings active in every view.
func (r *Registry) AddGlobal(bs ...Binding) {
	r.global = append(r.global, bs...)
}

// AddView registers bindings active only in view.
func (r *Registry) AddView(view string, bs ...Binding) {
	if _, ok := r.views[view]; !ok {
		r.order = append(r.order, view)
	}
	r.views[view] = append(r.views[view], bs...)
}

// Hints returns the visible bindings of view followed by the global ones.
func (r *Registry) Hints(view string) []ui.MenuHint {
	var hints []ui.MenuHint
	for _, bs := range [][]Binding{r.views[view], r.global} {
		for _, b := range bs {
			if b.Hidden {
				continue
			}
			hints = append(hints, ui.MenuHint{
				Key:         b.Label,
				Description: b.Description,
				Numeric:     b.Key == tcell.KeyRune && b.Rune >= '0' && b.Rune <= '9',
			})
		}
	}
	return hints
}

// Sections returns the global bindings followed by each view's bindings.
func (r *Registry) Sections() []Section {
	out := []Section{{Title: "Global", Bindings: r.global}}
	for _, v := range r.order {
		out = append(out, Section{Title: v, Bindings: r.views[v]})
	}
	return out
}

// HandleEvent dispatches a terminal key event. See Handle.
func (r *Registry) HandleEvent(view string, ev *tcell.EventKey) bool {
	return r.Handle(view, ev.Key(), ev.Rune())
}

// Handle runs the first binding of view, then of the global scope, that
// matches the key. It reports whether one matched.
func (r *Registry) Handle(view string, k tcell.Key, ch rune) bool {
	for _, bs := range [][]Binding{r.views[view], r.global} {
		for _, b := range bs {
			if b.Matches(k, ch) {
				if b.Handler != nil {
					b.Handler()
				}
				return true
			}
		}
	}
	return false
}
