// Package status holds a transient one-line message that clears itself.
package status

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTTL is how long a message stays visible.
const DefaultTTL = 2 * time.Second

// ClearMsg is delivered when a message's timer fires.
type ClearMsg struct {
	seq uint64
}

// Line is the message plus the sequence of its pending clear timer.
// Each Set supersedes earlier timers, so the newest message always gets a
// full TTL.
type Line struct {
	text string
	seq  uint64
	ttl  time.Duration
}

func New(ttl time.Duration) Line {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return Line{ttl: ttl}
}

// Set shows text and schedules its clear. An empty text clears immediately.
func (l *Line) Set(text string) tea.Cmd {
	l.seq++
	l.text = text
	if text == "" {
		return nil
	}
	seq := l.seq
	return tea.Tick(l.ttl, func(time.Time) tea.Msg { return ClearMsg{seq: seq} })
}

// Update clears the line if msg is the clear for the current message.
// It reports whether msg was a ClearMsg.
func (l *Line) Update(msg tea.Msg) bool {
	c, ok := msg.(ClearMsg)
	if !ok {
		return false
	}
	if c.seq == l.seq {
		l.text = ""
	}
	return true
}

func (l Line) Text() string { return l.text }

func (l Line) TTL() time.Duration { return l.ttl }
