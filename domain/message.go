// Package domain contains core concepts of the bridge.
// This file defines Message records and their payload variants.
// Messages are transient: they are broadcast once and never stored by the hub.
package domain

import "time"

type Kind string

const (
	KindJoin      Kind = "join"
	KindMessage   Kind = "message"
	KindSystem    Kind = "system"
	KindError     Kind = "error"
	KindHeartbeat Kind = "heartbeat"
)

// Message represents one broadcast on a channel.
type Message struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"type"`
	Channel   string    `json:"channel"`
	Payload   Payload   `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
	Encrypted bool      `json:"encrypted,omitempty"`
}

// Payload is the closed set of message bodies the bridge knows about.
// RawPayload carries anything else as opaque bytes.
type Payload interface {
	isPayload()
}

type JoinPayload struct {
	ParticipantID string    `json:"participantId"`
	ChannelID     ChannelID `json:"channelId"`
}

type TextPayload struct {
	Text string `json:"text"`
}

type SystemPayload struct {
	Message       string    `json:"message"`
	ParticipantID string    `json:"participantId"`
	ChannelID     ChannelID `json:"channelId,omitempty"`
	Reason        string    `json:"reason,omitempty"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type HeartbeatPayload struct {
	Status Status `json:"status"`
}

type RawPayload struct {
	Data []byte `json:"data"`
}

func (JoinPayload) isPayload()      {}
func (TextPayload) isPayload()      {}
func (SystemPayload) isPayload()    {}
func (ErrorPayload) isPayload()     {}
func (HeartbeatPayload) isPayload() {}
func (RawPayload) isPayload()       {}
