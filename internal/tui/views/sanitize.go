package views

import (
	"strings"
	"unicode"
)

// sanitizeForTerminal prepares text for a single tcell line. Control
// characters become spaces. Skin tone modifiers, the zero width joiner and
// variation selectors are dropped because tcell measures them wrongly;
// composite emoji collapse to their base character.
func sanitizeForTerminal(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			return ' '
		case unicode.IsControl(r), zeroWidth(r):
			return -1
		}
		return r
	}, s)
}

func zeroWidth(r rune) bool {
	return (r >= 0x1F3FB && r <= 0x1F3FF) || // skin tones
		r == 0x200D || // zero width joiner
		(r >= 0xFE00 && r <= 0xFE0F) ||
		(r >= 0xE0100 && r <= 0xE01EF)
}
