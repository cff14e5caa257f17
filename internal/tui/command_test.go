package tui

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"quit", Command{Name: "quit"}},
		{"  Q  ", Command{Name: "quit"}},
		{"h", Command{Name: "help"}},
		{"filter unread", Command{Name: "filter", Args: "unread"}},
		{"f pinned", Command{Name: "filter", Args: "pinned"}},
		{"search   lunch plans ", Command{Name: "search", Args: "lunch plans"}},
		{"Chat Ana Souza", Command{Name: "chat", Args: "Ana Souza"}},
		{"new", Command{Name: "new"}},
		{"", Command{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseCommand(tt.input); got != tt.want {
				t.Errorf("ParseCommand(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
