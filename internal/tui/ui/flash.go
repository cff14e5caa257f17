package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// FlashLevel is the severity of a status bar notice.
type FlashLevel int

const (
	FlashInfo FlashLevel = iota
	FlashWarn
	FlashErr
)

type flashStyle struct {
	ttl   time.Duration
	icon  string
	color func(*Theme) tcell.Color
}

var flashStyles = map[FlashLevel]flashStyle{
	FlashInfo: {5 * time.Second, "ℹ", func(t *Theme) tcell.Color { return t.FlashInfoColor }},
	FlashWarn: {8 * time.Second, "⚠", func(t *Theme) tcell.Color { return t.FlashWarnColor }},
	FlashErr:  {10 * time.Second, "✗", func(t *Theme) tcell.Color { return t.FlashErrColor }},
}

// FlashMessage is one notice and the moment it stops showing.
type FlashMessage struct {
	Text    string
	Level   FlashLevel
	Expires time.Time
}

// FlashModel keeps the latest notice. Subscribers are woken through Watch
// whenever it changes; a slow reader misses intermediate notices.
type FlashModel struct {
	mu      sync.RWMutex
	msg     FlashMessage
	now     func() time.Time
	changed chan FlashMessage
}

func NewFlashModel() *FlashModel {
	return &FlashModel{now: time.Now, changed: make(chan FlashMessage, 8)}
}

func (f *FlashModel) Info(text string) { f.post(FlashInfo, text) }

func (f *FlashModel) Warn(text string) { f.post(FlashWarn, text) }

func (f *FlashModel) Err(err error) { f.post(FlashErr, err.Error()) }

// Clear hides the current notice immediately.
func (f *FlashModel) Clear() { f.publish(FlashMessage{}) }

func (f *FlashModel) post(level FlashLevel, text string) {
	f.publish(FlashMessage{
		Text:    text,
		Level:   level,
		Expires: f.now().Add(flashStyles[level].ttl),
	})
}

func (f *FlashModel) publish(m FlashMessage) {
	f.mu.Lock()
	f.msg = m
	f.mu.Unlock()
	select {
	case f.changed <- m:
	default:
	}
}

// GetMessage returns the live notice, or nil once it has expired.
func (f *FlashModel) GetMessage() *FlashMessage {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.msg.Text == "" || !f.now().Before(f.msg.Expires) {
		return nil
	}
	m := f.msg
	return &m
}

func (f *FlashModel) Watch() <-chan FlashMessage { return f.changed }

// FlashBar is the single line under the page stack that shows notices.
type FlashBar struct {
	*tview.TextView
	theme *Theme
}

func NewFlashBar(theme *Theme) *FlashBar {
	tv := tview.NewTextView().SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	return &FlashBar{TextView: tv, theme: theme}
}

// Update replaces the bar content; nil or empty messages blank it.
func (fb *FlashBar) Update(msg *FlashMessage) {
	fb.Clear()
	if msg == nil || msg.Text == "" {
		return
	}
	st := flashStyles[msg.Level]
	_, _ = fmt.Fprintf(fb, " [%s]%s %s[-]", ColorName(st.color(fb.theme)), st.icon, tview.Escape(msg.Text))
}
