// Package widgets holds terminal widgets that render observable state.
package widgets

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/mramsden/Observable/observable"
)

// Alignment controls horizontal placement of text.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Label draws the latest value of an observable string.
// Bindings are held between Mount and Unmount.
type Label struct {
	source   observable.Readable[string]
	bindings *observable.Bindings

	mu        sync.Mutex
	text      string
	onChange  func()
	style     tcell.Style
	alignment Alignment
}

// NewLabel creates a label fed by source. Callbacks are delivered on scheduler,
// or on the source's default scheduler when nil.
func NewLabel(source observable.Readable[string], scheduler observable.Scheduler) *Label {
	return &Label{
		source:   source,
		bindings: observable.NewBindings(scheduler),
		style:    tcell.StyleDefault,
	}
}

// SetStyle sets the label style.
func (l *Label) SetStyle(style tcell.Style) {
	l.mu.Lock()
	l.style = style
	l.mu.Unlock()
}

// SetAlignment sets text alignment.
func (l *Label) SetAlignment(align Alignment) {
	l.mu.Lock()
	l.alignment = align
	l.mu.Unlock()
}

// OnChange sets a hook run after the text changes, on the delivery scheduler.
func (l *Label) OnChange(fn func()) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

// Text returns the text last delivered to the label.
func (l *Label) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text
}

// Mount binds the label to its source, replaying the current value.
func (l *Label) Mount() {
	l.bindings.Release()
	if l.source == nil {
		return
	}
	observable.BindTo(l.bindings, l.source, l.update, observable.WithInitial())
}

// Unmount releases the label's bindings. The last text is kept.
func (l *Label) Unmount() {
	l.bindings.Release()
}

func (l *Label) update(_, text string) {
	l.mu.Lock()
	l.text = text
	hook := l.onChange
	l.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// Draw renders the label into the row y starting at x, using at most width cells.
func (l *Label) Draw(screen tcell.Screen, x, y, width int) {
	if screen == nil || width <= 0 {
		return
	}
	l.mu.Lock()
	text, style, alignment := l.text, l.style, l.alignment
	l.mu.Unlock()
	text = truncate(text, width)
	used := runewidth.StringWidth(text)
	switch alignment {
	case AlignCenter:
		x += (width - used) / 2
	case AlignRight:
		x += width - used
	}
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// truncate fits s within maxWidth cells, marking cut text with "...".
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
