package workers

import (
	"context"
	"log/slog"
	"secure-bridge/contract"
	"secure-bridge/domain/event"
	"time"
)

// EventFanout delivers hub notifications to multiple in-process consumers.
//
// Events are read from one subscription queue and handed to each sink in
// order. A sink that exceeds the timeout only loses that event.
//
// It is intended for side effects (console, logs, journal), never for core
// membership logic.
type EventFanout struct {
	log         *slog.Logger
	events      <-chan event.Event
	sinks       []contract.EventSink
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, events <-chan event.Event,
	sinks []contract.EventSink, sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{log: log, events: events, sinks: sinks, sinkTimeout: sinkTimeout}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt, ok := <-w.events:
			if !ok {
				w.log.Debug("Subscription closed, stopping fanout")
				return nil
			}
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fanout")
			return nil
		}
	}
}

// Fanout One sink for each event
func (w *EventFanout) Fanout(ctx context.Context, evt event.Event) {
	for _, sink := range w.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, evt); err != nil {
			w.log.Warn("Sink failed to consume event", "sink", contract.GetSinkName(sink),
				"type", evt.Type, "err", err)
		}
		cancel()
	}
}
