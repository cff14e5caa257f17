package delivery

import (
	"strings"

	"github.com/matheus3301/wppsim/internal/chat"
)

const (
	replyQuestion = "Let me think about that for a moment."
	replyThanks   = "Anytime!"
	replyStudio   = "Adding it to the board now."

	studioTitle = "Product Studio"
)

// genericReplies is the fallback pool for messages no rule matches.
var genericReplies = []string{
	"Sounds good!",
	"Let me check and get back to you.",
	"Perfect, thanks for the update.",
	"I'll take a look shortly.",
}

// ChooseReply picks the text of a simulated reply to text sent in c.
// The first matching rule wins; otherwise a generic reply is drawn from rnd.
func ChooseReply(c chat.Chat, text string, rnd Rand) string {
	switch {
	case strings.Contains(text, "?"):
		return replyQuestion
	case strings.Contains(strings.ToLower(text), "thanks"):
		return replyThanks
	case c.Title == studioTitle:
		return replyStudio
	}
	return genericReplies[rnd.IntN(len(genericReplies))]
}
