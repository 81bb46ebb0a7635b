package core

// scheduler.go flushes unsaved list changes to the store in the background.
//
// When SaveOnWrite is off, mutations only mark the service dirty. The
// snapshot scheduler wakes up every interval and saves if anything changed.
// Failed saves are logged and retried on the next tick; they do not stop
// the scheduler.

import (
	"context"
	"log/slog"
	"time"
)

// StartSnapshotScheduler saves dirty lists every interval until ctx is
// cancelled, then performs one final save.
func (s *Service) StartSnapshotScheduler(ctx context.Context, interval time.Duration) {
	if s.store == nil || interval <= 0 {
		return
	}

	slog.Info("snapshot scheduler started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// The job context is gone; give the final flush its own deadline.
			flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			s.runSnapshotJob(flushCtx)
			cancel()
			slog.Info("snapshot scheduler stopped")
			return
		case <-ticker.C:
			s.runSnapshotJob(ctx)
		}
	}
}

// runSnapshotJob performs one save if there are unsaved changes.
func (s *Service) runSnapshotJob(ctx context.Context) {
	if !s.Dirty() {
		return
	}

	start := time.Now()
	if err := s.Save(ctx); err != nil {
		slog.Error("snapshot failed", "error", err)
		return
	}
	slog.Info("snapshot completed", "duration_ms", time.Since(start).Milliseconds())
}
