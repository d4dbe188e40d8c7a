package scheduler

import (
	"context"
	"testing"
	"time"
)

func TestNewRejectsBelowMinimumInterval(t *testing.T) {
	for _, d := range []time.Duration{0, time.Minute, time.Hour, MinInterval - time.Second} {
		if _, err := New(d, func(context.Context) {}); err == nil {
			t.Errorf("interval %s below the minimum must be rejected, not clamped", d)
		}
	}
}

func TestNewAcceptsMinimumInterval(t *testing.T) {
	if _, err := New(MinInterval, func(context.Context) {}); err != nil {
		t.Fatalf("minimum interval should be accepted: %v", err)
	}
}

func TestStartRunsJobImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	runs := 0
	s, err := New(MinInterval, func(context.Context) {
		runs++
		cancel() // stop after the initial run
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if runs != 1 {
		t.Fatalf("expected exactly the initial run, got %d", runs)
	}
}
