package event

import (
	"log/slog"
	"secure-bridge/errors"
)

// DepartureHandler counts participant departures by reason (graceful leave, timeout, shutdown...).
type DepartureHandler struct {
	log     *slog.Logger
	counter *Counter
}

func NewDepartureHandler(log *slog.Logger, counter *Counter) *DepartureHandler {
	return &DepartureHandler{log: log, counter: counter}
}

func (h *DepartureHandler) Handle(event Event) {
	switch event.Type {
	case ParticipantLeftType:
		payload, ok := event.Payload.(ParticipantLeft)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error(), "type", event.Type)
			return
		}
		h.counter.Increment(payload.Reason)
	}
}
