package workers

import (
	"context"
	"log/slog"
	"secure-bridge/domain/event"
)

// TelemetryWorker runs every handler against each notification it receives.
type TelemetryWorker struct {
	log      *slog.Logger
	events   <-chan event.Event
	handlers []event.Handler
}

func NewTelemetryWorker(log *slog.Logger, events <-chan event.Event, handlers []event.Handler) *TelemetryWorker {
	return &TelemetryWorker{log: log, events: events, handlers: handlers}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-w.events:
			if !ok {
				return nil
			}
			w.handle(evt)
		}
	}
}

func (w *TelemetryWorker) handle(event event.Event) {
	for _, h := range w.handlers {
		h.Handle(event)
	}
}
