package workers

import (
	"context"
	"log/slog"
	"secure-bridge/mocks"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHeartbeatWorker_SweepsOnEveryTick(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	sweeper := mocks.NewMockSweeper(ctrl)

	var ticks atomic.Int32
	sweeper.EXPECT().Sweep().Do(func() { ticks.Add(1) }).MinTimes(3)

	worker := NewHeartbeatWorker(log, sweeper, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	req.Eventually(func() bool { return ticks.Load() >= 3 }, time.Second, 5*time.Millisecond)

	// When the context is canceled the worker returns cleanly
	cancel()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("Heartbeat worker did not stop")
	}
}

func TestHeartbeatWorker_NoSweepBeforeFirstTick(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	sweeper := mocks.NewMockSweeper(ctrl)

	// Given a long period, no sweep is expected
	sweeper.EXPECT().Sweep().Times(0)

	worker := NewHeartbeatWorker(log, sweeper, time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	require.NoError(t, worker.Run(ctx))
}
