package event

import (
	"log/slog"
	"secure-bridge/domain"
	"secure-bridge/errors"
)

// SecurityStatusHandler watches heartbeats, counts them per security status
// and reports degraded ones. It never acts on the hub; the status is advisory.
type SecurityStatusHandler struct {
	log     *slog.Logger
	counter *Counter
}

func NewSecurityStatusHandler(log *slog.Logger, counter *Counter) *SecurityStatusHandler {
	return &SecurityStatusHandler{log: log, counter: counter}
}

func (h *SecurityStatusHandler) Handle(event Event) {
	switch event.Type {
	case HeartbeatType:
		payload, ok := event.Payload.(Heartbeat)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error(), "type", event.Type)
			return
		}
		h.counter.Increment(string(payload.Status.SecurityStatus))
		switch payload.Status.SecurityStatus {
		case domain.WARNING:
			h.log.Warn("Stale participants detected",
				"participants", payload.Status.Participants,
				"channels", payload.Status.Channels)
		case domain.ERROR:
			h.log.Error("Participant count exceeds capacity",
				"participants", payload.Status.Participants)
		default:
			h.log.Debug("Heartbeat", "participants", payload.Status.Participants,
				"channels", payload.Status.Channels)
		}
	}
}
