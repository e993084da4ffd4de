package domain

import "time"

type ChannelID string

type Set map[string]struct{}

// Channel is a named group of participants receiving each other's broadcasts.
// A channel only exists while its participant set is non-empty.
type Channel struct {
	ID           ChannelID
	Name         string
	Participants Set
	Created      time.Time
	LastActivity time.Time
}

func NewChannel(id ChannelID, name string, now time.Time) *Channel {
	return &Channel{
		ID:           id,
		Name:         name,
		Participants: make(Set),
		Created:      now,
		LastActivity: now,
	}
}

func (c *Channel) Has(participantID string) bool {
	_, ok := c.Participants[participantID]
	return ok
}

func (c *Channel) Add(participantID string, now time.Time) {
	c.Participants[participantID] = struct{}{}
	c.LastActivity = now
}

// Remove drops the participant and reports whether the channel is now empty.
func (c *Channel) Remove(participantID string) bool {
	delete(c.Participants, participantID)
	return len(c.Participants) == 0
}

func (c *Channel) Touch(now time.Time) {
	c.LastActivity = now
}
