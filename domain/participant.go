// Package domain contains core concepts of the bridge.
// This file defines Participant entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import "time"

// Participant binds a logical endpoint to exactly one channel.
// A participant missing from the registry is not connected.
type Participant struct {
	ID          string
	ChannelID   ChannelID
	ChannelName string
	LastSeen    time.Time
}

func (p Participant) IdleFor(now time.Time) time.Duration {
	return now.Sub(p.LastSeen)
}
