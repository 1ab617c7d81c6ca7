package status

import (
	"testing"
	"time"
)

func TestNew_DefaultTTL(t *testing.T) {
	t.Parallel()
	if got := New(0).TTL(); got != 2000*time.Millisecond {
		t.Fatalf("TTL: got %v, want 2s", got)
	}
}

func TestSet_ClearsAfterTTL(t *testing.T) {
	t.Parallel()

	l := New(20 * time.Millisecond)
	start := time.Now()
	cmd := l.Set("Items saved locally")
	if l.Text() != "Items saved locally" {
		t.Fatalf("text: got %q", l.Text())
	}
	if cmd == nil {
		t.Fatalf("expected a clear command")
	}

	msg := cmd()
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("clear fired early after %v", elapsed)
	}
	if !l.Update(msg) {
		t.Fatalf("expected ClearMsg, got %T", msg)
	}
	if l.Text() != "" {
		t.Fatalf("expected empty text, got %q", l.Text())
	}
}

func TestSet_StaleTimerDoesNotClearNewerMessage(t *testing.T) {
	t.Parallel()

	l := New(time.Hour)
	_ = l.Set("Items saved locally")
	_ = l.Set("Items deleted Locally")

	// Deliver the first message's clear by hand rather than waiting an hour.
	l.Update(ClearMsg{seq: 1})
	if l.Text() != "Items deleted Locally" {
		t.Fatalf("stale clear wiped newer message; text=%q", l.Text())
	}

	l.Update(ClearMsg{seq: 2})
	if l.Text() != "" {
		t.Fatalf("current clear should empty the line; text=%q", l.Text())
	}
}

func TestSet_EmptyClearsWithoutTimer(t *testing.T) {
	t.Parallel()

	l := New(time.Hour)
	l.Set("hello")
	if cmd := l.Set(""); cmd != nil {
		t.Fatalf("expected no command for empty text")
	}
	if l.Text() != "" {
		t.Fatalf("expected empty text")
	}
}

func TestUpdate_IgnoresOtherMessages(t *testing.T) {
	t.Parallel()

	l := New(time.Hour)
	l.Set("hello")
	if l.Update("not a clear") {
		t.Fatalf("expected false for foreign message")
	}
	if l.Text() != "hello" {
		t.Fatalf("text changed")
	}
}
