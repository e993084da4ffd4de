package sink

import (
	"context"
	"log/slog"
	"secure-bridge/domain/event"
)

// LogSink writes every hub notification to the structured log.
// Broadcasts and heartbeats are logged at debug level.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) LogSink {
	return LogSink{log: log}
}

func (l LogSink) Consume(ctx context.Context, e event.Event) error {
	level := slog.LevelInfo
	switch e.Type {
	case event.ChannelMessageType, event.HeartbeatType, event.MessageSentType:
		level = slog.LevelDebug
	}
	l.log.Log(ctx, level, "Notification", "type", e.Type, "at", e.CreatedAt, "payload", e.Payload)
	return nil
}
