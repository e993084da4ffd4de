package runtime

import (
	"fmt"
	"log/slog"
	"secure-bridge/domain"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// checkInvariants inspects the registries under the hub lock.
func checkInvariants(h *Hub) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n := h.participants.Len(); n > h.cfg.MaxConnections {
		return fmt.Errorf("%d participants for a capacity of %d", n, h.cfg.MaxConnections)
	}
	memberships := 0
	for name, ch := range h.channels.channels {
		if len(ch.Participants) == 0 {
			return fmt.Errorf("channel %s is registered but empty", name)
		}
		for pid := range ch.Participants {
			p, ok := h.participants.Get(pid)
			if !ok || p.ChannelName != name || p.ChannelID != ch.ID {
				return fmt.Errorf("participant %s in channel %s is not bound to it", pid, name)
			}
			memberships++
		}
	}
	if memberships != h.participants.Len() {
		return fmt.Errorf("%d memberships for %d participants", memberships, h.participants.Len())
	}
	return nil
}

func TestHub_Concurrent_Operations_Keep_Invariants(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	cfg := domain.DefaultBridgeConfig()
	cfg.MaxConnections = 8
	cfg.Timeout = 20 * time.Millisecond
	hub, err := NewHub(log, cfg)
	req.NoError(err)
	sub := hub.Subscribe(16)
	hub.Start()

	channels := []string{"design", "review", "ops"}
	var violations atomic.Int32
	var wg sync.WaitGroup

	// Given 20 goroutines hammering the hub, heartbeat sweeps included
	for g := 0; g < 20; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			participantID := fmt.Sprintf("p%d", g)
			for i := 0; i < 50; i++ {
				channel := channels[(g+i)%len(channels)]
				hub.JoinChannel(participantID, channel)
				hub.SendMessage(participantID, channel, domain.TextPayload{Text: "ping"})
				hub.GetStatus()
				if i%5 == 0 {
					hub.Sweep()
				}
				if err := checkInvariants(hub); err != nil {
					t.Log(err)
					violations.Add(1)
				}
				hub.LeaveChannel(participantID)
			}
		}(g)
	}
	wg.Wait()

	// Then no intermediate state ever broke the invariants and everybody is gone
	req.Zero(violations.Load())
	req.NoError(checkInvariants(hub))
	status := hub.GetStatus()
	req.Equal(0, status.Participants)
	req.Equal(0, status.Channels)

	hub.Stop()
	req.True(hub.Unsubscribe(sub))
}
