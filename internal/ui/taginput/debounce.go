package taginput

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// DebounceMsg fires when a debounce window elapses
type DebounceMsg struct {
	id   int
	gen  int
	Text string
}

// Debouncer collapses rapid triggers into one delivery carrying the latest text.
// Each Trigger supersedes the previous one, only the newest tick is accepted by Fire.
type Debouncer struct {
	id      int
	gen     int
	wait    time.Duration
	pending bool
	closed  bool
}

// NewDebouncer creates a debouncer with the given quiet period
func NewDebouncer(wait time.Duration) *Debouncer {
	return &Debouncer{id: nextID(), wait: wait}
}

// Trigger restarts the window for text
func (d *Debouncer) Trigger(text string) tea.Cmd {
	if d.closed {
		return nil
	}
	d.gen++
	d.pending = true
	id, gen := d.id, d.gen
	return tea.Tick(d.wait, func(time.Time) tea.Msg {
		return DebounceMsg{id: id, gen: gen, Text: text}
	})
}

// Fire reports whether msg is the live tick of this debouncer and its text
func (d *Debouncer) Fire(msg DebounceMsg) (string, bool) {
	if d.closed || msg.id != d.id || msg.gen != d.gen || !d.pending {
		return "", false
	}
	d.pending = false
	return msg.Text, true
}

// Cancel drops the pending tick, if any
func (d *Debouncer) Cancel() {
	d.gen++
	d.pending = false
}

// Close cancels and refuses further triggers
func (d *Debouncer) Close() {
	d.Cancel()
	d.closed = true
}

// Pending reports whether a tick is outstanding
func (d *Debouncer) Pending() bool {
	return d.pending
}
