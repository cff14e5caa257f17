package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/wppsim/internal/chat"
	qrcode "github.com/skip2/go-qrcode"
)

// contactCard encodes c as a vCard 3.0 record.
func contactCard(c chat.Contact) string {
	var sb strings.Builder
	sb.WriteString("BEGIN:VCARD\r\nVERSION:3.0\r\n")
	fmt.Fprintf(&sb, "FN:%s\r\n", c.Name)
	if c.Phone != "" {
		fmt.Fprintf(&sb, "TEL;TYPE=CELL:%s\r\n", c.Phone)
	}
	if c.About != "" {
		fmt.Fprintf(&sb, "NOTE:%s\r\n", c.About)
	}
	sb.WriteString("END:VCARD")
	return sb.String()
}

// renderQR draws content as a QR code using half-block characters, so two
// bitmap rows fit on one terminal line.
func renderQR(content string) (string, error) {
	qr, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}

	bitmap := qr.Bitmap()
	var sb strings.Builder
	for y := 0; y < len(bitmap); y += 2 {
		sb.WriteString("  ")
		for x := range bitmap[y] {
			top := bitmap[y][x]
			bot := y+1 < len(bitmap) && bitmap[y+1][x]
			switch {
			case top && bot:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bot:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String(), nil
}
