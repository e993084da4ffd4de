package workers

import (
	"context"
	"log/slog"
	"secure-bridge/contract"
	"time"
)

// HeartbeatWorker drives the liveness sweep of the hub at a fixed period.
type HeartbeatWorker struct {
	log      *slog.Logger
	target   contract.Sweeper
	interval time.Duration
}

func NewHeartbeatWorker(log *slog.Logger, target contract.Sweeper, interval time.Duration) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, target: target, interval: interval}
}

// Run ticks until the context is cancelled. The sweep itself is synchronous,
// so a slow tick delays the next one instead of overlapping it.
func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Debug("Starting heartbeat worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping heartbeat")
			return nil
		case <-ticker.C:
			w.target.Sweep()
		}
	}
}
