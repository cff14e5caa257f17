package delivery

import (
	"slices"
	"testing"

	"github.com/matheus3301/wppsim/internal/chat"
)

func TestChooseReply(t *testing.T) {
	direct := chat.Chat{Title: "Ana"}
	studio := chat.Chat{Title: "Product Studio", IsGroup: true}

	tests := []struct {
		name string
		chat chat.Chat
		text string
		want string
	}{
		{"question", direct, "Lunch?", "Let me think about that for a moment."},
		{"question beats thanks", direct, "thanks, lunch?", "Let me think about that for a moment."},
		{"thanks any case", direct, "THANKS a lot", "Anytime!"},
		{"thanks beats studio", studio, "thanks team", "Anytime!"},
		{"studio title", studio, "new ticket", "Adding it to the board now."},
		{"fallback", direct, "ok", genericReplies[2]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseReply(tt.chat, tt.text, fixedRand{n: 2}); got != tt.want {
				t.Errorf("ChooseReply(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestChooseReplyUsesPool(t *testing.T) {
	if len(genericReplies) < 4 {
		t.Fatalf("pool has %d replies, want at least 4", len(genericReplies))
	}
	for i := range genericReplies {
		got := ChooseReply(chat.Chat{Title: "Bo"}, "fine", fixedRand{n: i})
		if !slices.Contains(genericReplies, got) {
			t.Errorf("reply %q not in pool", got)
		}
	}
}
