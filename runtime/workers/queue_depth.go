package workers

import (
	"context"
	"log/slog"
	"secure-bridge/domain/event"
	"time"
)

type NamedQueue struct {
	Name  string
	Queue <-chan event.Event
}

// QueueDepthWorker periodically samples the backlog of subscription queues.
// Reading len and cap is non-blocking, so this won't interfere with the
// consumers. A backlog above the threshold means the consumer is about to
// lose notifications.
type QueueDepthWorker struct {
	log            *slog.Logger
	queues         []NamedQueue
	metricInterval time.Duration
	threshold      float64
}

func NewQueueDepthWorker(log *slog.Logger, queues []NamedQueue,
	metricInterval time.Duration, threshold float64) *QueueDepthWorker {
	return &QueueDepthWorker{
		log: log, queues: queues,
		metricInterval: metricInterval,
		threshold:      threshold,
	}
}

func (w *QueueDepthWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping queue sampling")
			return nil
		case <-ticker.C:
			w.Sample()
		}
	}
}

// Sample reports the queues whose backlog exceeds the threshold.
func (w *QueueDepthWorker) Sample() []string {
	var saturated []string
	for _, nq := range w.queues {
		capacity, length := cap(nq.Queue), len(nq.Queue)
		if capacity == 0 {
			continue
		}
		if float64(length)/float64(capacity) >= w.threshold {
			w.log.Warn("Subscription queue saturated", "name", nq.Name, "length", length, "capacity", capacity)
			saturated = append(saturated, nq.Name)
			continue
		}
		w.log.Debug("Subscription queue", "name", nq.Name, "length", length, "capacity", capacity)
	}
	return saturated
}
