package native

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitReady(t *testing.T) {
	polls := 0
	err := WaitReady(context.Background(), time.Millisecond, func() bool {
		polls++
		return polls == 3
	})
	if err != nil {
		t.Fatalf("WaitReady() = %v, want nil error", err)
	}
	if polls != 3 {
		t.Errorf("polls = %d, want 3", polls)
	}
}

func TestWaitReadyDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := WaitReady(ctx, time.Millisecond, func() bool { return false })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("WaitReady() = %v, want %v", err, context.DeadlineExceeded)
	}
}
