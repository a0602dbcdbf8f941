package cache

import (
	"context"
	"log/slog"
	"time"
)

// Cleaner is implemented by caches that need periodic expiry sweeps.
type Cleaner interface {
	CleanExpired() int
}

// StartJanitor sweeps c every interval until ctx is done. Caches that expire entries themselves
// are left alone.
func StartJanitor(ctx context.Context, c Cache, interval time.Duration, logger *slog.Logger) {
	cleaner, ok := c.(Cleaner)
	if !ok {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := cleaner.CleanExpired(); removed > 0 {
					logger.Debug("expired cache entries removed", "count", removed)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
