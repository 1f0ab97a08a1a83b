package service

import (
	"context"
	"log/slog"
	"time"
)

// StartBackgroundSweep expires stale threads on a fixed interval until
// the context is cancelled.
func (s *FileStore) StartBackgroundSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	slog.Info("started file store sweep", "interval", interval, "ttl", s.ttl)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if expired := s.Sweep(); expired > 0 {
					slog.Info("expired stale threads", "count", expired)
				}
			case <-ctx.Done():
				slog.Info("file store sweep shutting down")
				return
			}
		}
	}()
}
