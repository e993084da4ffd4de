package event_test

import (
	"log/slog"
	"secure-bridge/domain"
	"secure-bridge/domain/event"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestDepartureHandler_Counts_By_Reason(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	counter := event.NewCounter()
	handler := event.NewDepartureHandler(log, counter)
	now := time.Now()

	// Given departures with various reasons and an unrelated event
	handler.Handle(event.New(event.ParticipantLeftType, now, event.ParticipantLeft{ParticipantID: "p1", Reason: "Timeout"}))
	handler.Handle(event.New(event.ParticipantLeftType, now, event.ParticipantLeft{ParticipantID: "p2", Reason: "Timeout"}))
	handler.Handle(event.New(event.ParticipantLeftType, now, event.ParticipantLeft{ParticipantID: "p3", Reason: "Graceful leave"}))
	handler.Handle(event.New(event.ParticipantJoinedType, now, event.ParticipantJoined{ParticipantID: "p4"}))

	// Then only departures are counted
	req.Equal(map[string]int{"Timeout": 2, "Graceful leave": 1}, counter.Snapshot())
}

func TestDepartureHandler_Ignores_Invalid_Payload(t *testing.T) {
	counter := event.NewCounter()
	handler := event.NewDepartureHandler(logs.GetLoggerFromLevel(slog.LevelDebug), counter)

	handler.Handle(event.New(event.ParticipantLeftType, time.Now(), "not a departure"))

	require.Empty(t, counter.Snapshot())
}

func TestSecurityStatusHandler_Counts_Heartbeats(t *testing.T) {
	req := require.New(t)
	counter := event.NewCounter()
	handler := event.NewSecurityStatusHandler(logs.GetLoggerFromLevel(slog.LevelDebug), counter)
	now := time.Now()

	for _, status := range []domain.SecurityStatus{domain.SECURE, domain.SECURE, domain.WARNING, domain.ERROR} {
		handler.Handle(event.New(event.HeartbeatType, now, event.Heartbeat{
			Status: domain.Status{IsRunning: true, SecurityStatus: status},
		}))
	}
	handler.Handle(event.New(event.StartedType, now, event.Lifecycle{}))
	handler.Handle(event.New(event.HeartbeatType, now, event.Lifecycle{}))

	req.Equal(2, counter.Get(string(domain.SECURE)))
	req.Equal(1, counter.Get(string(domain.WARNING)))
	req.Equal(1, counter.Get(string(domain.ERROR)))
	req.Len(counter.Snapshot(), 3)
}

func TestCounter_Concurrent_Increments(t *testing.T) {
	req := require.New(t)
	counter := event.NewCounter()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counter.Increment("hit")
		}()
	}
	wg.Wait()

	req.Equal(50, counter.Get("hit"))
	req.Equal(0, counter.Get("miss"))

	// Snapshot is a copy
	snapshot := counter.Snapshot()
	snapshot["hit"] = 0
	req.Equal(50, counter.Get("hit"))
}

func TestNew_Stores_UTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, loc)

	evt := event.New(event.StartedType, at, event.Lifecycle{})

	require.Equal(t, time.UTC, evt.CreatedAt.Location())
	require.True(t, evt.CreatedAt.Equal(at))
}
