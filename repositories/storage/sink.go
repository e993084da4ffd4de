package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"secure-bridge/domain/event"
	"secure-bridge/repositories"

	"github.com/google/uuid"
)

// JournalSink records lifecycle and membership notifications in the journal.
// Channel broadcasts and heartbeats are not journaled: message bodies are never stored.
type JournalSink struct {
	repository repositories.INotificationRepository
	log        *slog.Logger
}

func NewJournalSink(repository repositories.INotificationRepository, log *slog.Logger) JournalSink {
	return JournalSink{repository: repository, log: log}
}

func (j JournalSink) Consume(_ context.Context, e event.Event) error {
	switch e.Type {
	case event.ChannelMessageType, event.HeartbeatType:
		return nil
	}
	notification, err := toDiskNotification(e)
	if err != nil {
		j.log.Debug(fmt.Sprintf("Cannot journal notification : %v", e.Type), "err", err)
		return err
	}
	return j.repository.Store(notification)
}

func toDiskNotification(e event.Event) (repositories.DiskNotification, error) {
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return repositories.DiskNotification{}, err
	}
	return repositories.DiskNotification{
		ID:      uuid.New(),
		Type:    string(e.Type),
		At:      e.CreatedAt,
		Payload: payload,
	}, nil
}
