package native

import (
	"context"
	"fmt"
	"time"
)

// WaitReady polls ready every interval until it reports true or ctx is done.
func WaitReady(ctx context.Context, interval time.Duration, ready func() bool) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if ready() {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("native module not ready: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
