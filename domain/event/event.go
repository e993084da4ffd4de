package event

import (
	"secure-bridge/domain"
	"time"
)

type Type string

const (
	StartedType           Type = "STARTED"
	StoppedType           Type = "STOPPED"
	ParticipantJoinedType Type = "PARTICIPANT_JOINED"
	ParticipantLeftType   Type = "PARTICIPANT_LEFT"
	MessageSentType       Type = "MESSAGE_SENT"
	ChannelMessageType    Type = "CHANNEL_MESSAGE"
	HeartbeatType         Type = "HEARTBEAT"
)

// Event is a notification emitted by the hub for external observers.
type Event struct {
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	Payload   any       `json:"payload"`
}

type Lifecycle struct {
	Status domain.Status `json:"status"`
}

type ParticipantJoined struct {
	ParticipantID string           `json:"participantId"`
	ChannelName   string           `json:"channelName"`
	ChannelID     domain.ChannelID `json:"channelId"`
}

type ParticipantLeft struct {
	ParticipantID string `json:"participantId"`
	ChannelName   string `json:"channelName,omitempty"`
	Reason        string `json:"reason"`
}

type MessageSent struct {
	ParticipantID string `json:"participantId"`
	ChannelName   string `json:"channelName"`
	MessageID     string `json:"messageId"`
}

// ChannelMessage is the broadcast itself, addressed to every member of the channel.
type ChannelMessage struct {
	ChannelName  string           `json:"channelName"`
	ChannelID    domain.ChannelID `json:"channelId"`
	Message      domain.Message   `json:"message"`
	Participants []string         `json:"participants"`
}

type Heartbeat struct {
	Status domain.Status `json:"status"`
}

func New(t Type, at time.Time, payload any) Event {
	return Event{Type: t, CreatedAt: at.UTC(), Payload: payload}
}
