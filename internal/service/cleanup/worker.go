package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionSweeper is the part of the game service the worker drives.
type SessionSweeper interface {
	CleanupOldSessions(ttl time.Duration) int
}

type Worker struct {
	Sessions SessionSweeper
	TTL      time.Duration
	Interval time.Duration
	log      *zap.SugaredLogger
}

func NewWorker(sessions SessionSweeper, ttl, interval time.Duration, log *zap.SugaredLogger) *Worker {
	return &Worker{Sessions: sessions, TTL: ttl, Interval: interval, log: log}
}

// Start sweeps once immediately and then every Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	w.log.Infow("cleanup worker started", "interval", w.Interval, "ttl", w.TTL)

	w.runCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

func (w *Worker) runCleanup() {
	if removed := w.Sessions.CleanupOldSessions(w.TTL); removed > 0 {
		w.log.Infow("cleanup finished", "removed", removed)
	}
}
