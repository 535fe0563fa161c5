package editor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RecheckMsg asks the editor with the given ID to refresh its toolbar state.
// Only the message carrying the latest sequence number takes effect.
type RecheckMsg struct {
	ID  string
	Seq uint64
}

// Debouncer coalesces toolbar rechecks. Each Trigger supersedes the previous
// ones; a stale RecheckMsg is a no-op.
type Debouncer struct {
	Delay time.Duration
	seq   uint64
}

func (d *Debouncer) Trigger(id string) tea.Cmd {
	d.seq++
	seq := d.seq
	delay := d.Delay
	if delay < MinRecheckDelay {
		delay = MinRecheckDelay
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return RecheckMsg{ID: id, Seq: seq}
	})
}

// Current reports whether msg is the latest scheduled recheck.
func (d *Debouncer) Current(msg RecheckMsg) bool {
	return msg.Seq == d.seq
}

// Pending returns the sequence number of the latest scheduled recheck.
func (d *Debouncer) Pending() uint64 { return d.seq }
