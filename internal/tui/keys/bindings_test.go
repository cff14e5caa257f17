package keys

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestHandleEventPrefersView(t *testing.T) {
	r := NewRegistry()
	var got string
	r.AddGlobal(Rune('q', "Quit", func() { got = "global" }))
	r.AddView("Thread", Rune('q', "Back", func() { got = "view" }))

	if !r.Handle("Thread", tcell.KeyRune, 'q') {
		t.Fatal("expected a match")
	}
	if got != "view" {
		t.Errorf("handler = %q, want view", got)
	}

	if !r.Handle("Chats", tcell.KeyRune, 'q') {
		t.Fatal("expected a global match")
	}
	if got != "global" {
		t.Errorf("handler = %q, want global", got)
	}
}

func TestHandleEventNoMatch(t *testing.T) {
	r := NewRegistry()
	r.AddGlobal(Key(tcell.KeyEscape, "Esc", "Back", nil))

	if r.Handle("Chats", tcell.KeyRune, 'x') {
		t.Error("unexpected match for x")
	}
	if !r.Handle("Chats", tcell.KeyEscape, 0) {
		t.Error("nil handler binding should still match")
	}
}

func TestHints(t *testing.T) {
	r := NewRegistry()
	r.AddGlobal(Rune('?', "Help", nil))
	r.AddView("Chats",
		Rune('p', "Pin", nil),
		Rune('1', "Jump", nil),
		Binding{Key: tcell.KeyRune, Rune: 'j', Hidden: true},
	)

	hints := r.Hints("Chats")
	if len(hints) != 3 {
		t.Fatalf("hints = %d, want 3", len(hints))
	}
	wantKeys := []string{"p", "1", "?"}
	for i, h := range hints {
		if h.Key != wantKeys[i] {
			t.Errorf("hints[%d].Key = %q, want %q", i, h.Key, wantKeys[i])
		}
	}
	if hints[0].Numeric || !hints[1].Numeric {
		t.Errorf("numeric flags = %v, %v", hints[0].Numeric, hints[1].Numeric)
	}
}

func TestSectionsKeepRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.AddView("Thread", Rune('i', "Compose", nil))
	r.AddView("Chats", Rune('n', "New", nil))
	r.AddView("Thread", Rune('d', "Details", nil))

	sections := r.Sections()
	var titles []string
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	want := []string{"Global", "Thread", "Chats"}
	if len(titles) != len(want) {
		t.Fatalf("titles = %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("titles[%d] = %q, want %q", i, titles[i], want[i])
		}
	}
	if n := len(sections[1].Bindings); n != 2 {
		t.Errorf("Thread bindings = %d, want 2", n)
	}
}
