package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Theme holds the colors used across the TUI.
type Theme struct {
	BgColor           tcell.Color
	FgColor           tcell.Color
	MutedColor        tcell.Color
	BorderColor       tcell.Color
	BorderFocusColor  tcell.Color
	TableHeaderFg     tcell.Color
	TableHeaderBg     tcell.Color
	TableCursorFg     tcell.Color
	TableCursorBg     tcell.Color
	CrumbActiveFg     tcell.Color
	CrumbActiveBg     tcell.Color
	CrumbInactiveFg   tcell.Color
	CrumbInactiveBg   tcell.Color
	MenuKeyColor      tcell.Color
	NumericKeyColor   tcell.Color
	TitleColor        tcell.Color
	CounterColor      tcell.Color
	UnreadColor       tcell.Color
	OutgoingColor     tcell.Color
	IncomingColor     tcell.Color
	ReadReceiptColor  tcell.Color
	DayHeaderColor    tcell.Color
	FlashInfoColor    tcell.Color
	FlashWarnColor    tcell.Color
	FlashErrColor     tcell.Color
	PromptBorderColor tcell.Color
}

// DefaultTheme returns a dark theme with green accents.
func DefaultTheme() *Theme {
	return &Theme{
		BgColor:           tcell.ColorBlack,
		FgColor:           tcell.ColorSilver,
		MutedColor:        tcell.ColorGray,
		BorderColor:       tcell.ColorSeaGreen,
		BorderFocusColor:  tcell.ColorMediumSpringGreen,
		TableHeaderFg:     tcell.ColorWhite,
		TableHeaderBg:     tcell.ColorBlack,
		TableCursorFg:     tcell.ColorBlack,
		TableCursorBg:     tcell.ColorMediumSeaGreen,
		CrumbActiveFg:     tcell.ColorBlack,
		CrumbActiveBg:     tcell.ColorLimeGreen,
		CrumbInactiveFg:   tcell.ColorBlack,
		CrumbInactiveBg:   tcell.ColorDarkCyan,
		MenuKeyColor:      tcell.ColorMediumSeaGreen,
		NumericKeyColor:   tcell.ColorFuchsia,
		TitleColor:        tcell.ColorLimeGreen,
		CounterColor:      tcell.ColorPapayaWhip,
		UnreadColor:       tcell.ColorLimeGreen,
		OutgoingColor:     tcell.ColorMediumSpringGreen,
		IncomingColor:     tcell.ColorLightSkyBlue,
		ReadReceiptColor:  tcell.ColorDeepSkyBlue,
		DayHeaderColor:    tcell.ColorDarkCyan,
		FlashInfoColor:    tcell.ColorNavajoWhite,
		FlashWarnColor:    tcell.ColorOrange,
		FlashErrColor:     tcell.ColorOrangeRed,
		PromptBorderColor: tcell.ColorSeaGreen,
	}
}

// ColorName returns a tview-compatible color name string.
func ColorName(c tcell.Color) string {
	for name, val := range tcell.ColorNames {
		if val == c {
			return name
		}
	}
	return fmt.Sprintf("#%06x", c.Hex())
}
