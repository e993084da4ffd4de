package storage_test

import (
	"context"
	"log/slog"
	"secure-bridge/domain/event"
	"secure-bridge/mocks"
	"secure-bridge/repositories"
	"secure-bridge/repositories/storage"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestJournalSink_Stores_Membership_Events(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockINotificationRepository(ctrl)
	sink := storage.NewJournalSink(repository, logs.GetLoggerFromLevel(slog.LevelDebug))
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	var stored repositories.DiskNotification
	repository.EXPECT().Store(gomock.Any()).DoAndReturn(func(n repositories.DiskNotification) error {
		stored = n
		return nil
	})

	// When a departure is consumed
	err := sink.Consume(context.Background(), event.New(event.ParticipantLeftType, at, event.ParticipantLeft{
		ParticipantID: "p1",
		ChannelName:   "design",
		Reason:        "Timeout",
	}))

	// Then it is journaled as JSON
	req.NoError(err)
	req.Equal("PARTICIPANT_LEFT", stored.Type)
	req.Equal(at, stored.At)
	req.JSONEq(`{"participantId":"p1","channelName":"design","reason":"Timeout"}`, string(stored.Payload))
}

func TestJournalSink_Skips_Broadcasts_And_Heartbeats(t *testing.T) {
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockINotificationRepository(ctrl)
	repository.EXPECT().Store(gomock.Any()).Times(0)
	sink := storage.NewJournalSink(repository, logs.GetLoggerFromLevel(slog.LevelDebug))

	require.NoError(t, sink.Consume(context.Background(), event.New(event.ChannelMessageType, time.Now(), event.ChannelMessage{})))
	require.NoError(t, sink.Consume(context.Background(), event.New(event.HeartbeatType, time.Now(), event.Heartbeat{})))
}

func TestJournalSink_Propagates_Repository_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockINotificationRepository(ctrl)
	repository.EXPECT().Store(gomock.Any()).Return(context.DeadlineExceeded)
	sink := storage.NewJournalSink(repository, logs.GetLoggerFromLevel(slog.LevelDebug))

	err := sink.Consume(context.Background(), event.New(event.StartedType, time.Now(), event.Lifecycle{}))

	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestJournalSink_With_Badger(t *testing.T) {
	req := require.New(t)
	db, err := repositories.OpenInMemory()
	req.NoError(err)
	defer db.Close()

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	repository := repositories.NewNotificationRepository(db, log, time.Minute, 10)
	sink := storage.NewJournalSink(repository, log)
	now := time.Now()

	req.NoError(sink.Consume(context.Background(), event.New(event.ParticipantJoinedType, now, event.ParticipantJoined{ParticipantID: "p1"})))
	req.NoError(sink.Consume(context.Background(), event.New(event.MessageSentType, now.Add(time.Second), event.MessageSent{ParticipantID: "p1"})))

	journal, err := repository.List(0)
	req.NoError(err)
	req.Len(journal, 2)
	req.Equal("MESSAGE_SENT", journal[0].Type)
	req.Equal("PARTICIPANT_JOINED", journal[1].Type)
}
