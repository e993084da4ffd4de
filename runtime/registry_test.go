package runtime

import (
	"secure-bridge/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestChannelRegistry_Detach_Last_Member_Removes_Channel(t *testing.T) {
	req := require.New(t)
	registry := NewChannelRegistry()
	participantID := uuid.NewString()
	now := time.Now()

	// Given a channel with a single member
	ch := registry.Create("c1", "design", now)
	ch.Add(participantID, now)
	req.Equal(1, registry.Len())

	// When the member is detached
	detached, removed, found := registry.Detach("design", participantID)

	// Then the channel doesn't exist anymore
	req.True(found)
	req.True(removed)
	req.Equal(domain.ChannelID("c1"), detached.ID)
	req.Equal(0, registry.Len())
	req.Nil(registry.Members("design"))
}

func TestChannelRegistry_Detach_Keeps_Channel_With_Members(t *testing.T) {
	req := require.New(t)
	registry := NewChannelRegistry()
	now := time.Now()

	ch := registry.Create("c1", "design", now)
	ch.Add("alice", now)
	ch.Add("bob", now)

	_, removed, found := registry.Detach("design", "alice")

	req.True(found)
	req.False(removed)
	req.Equal([]string{"bob"}, registry.Members("design"))
}

func TestChannelRegistry_Detach_Unknown(t *testing.T) {
	req := require.New(t)
	registry := NewChannelRegistry()
	now := time.Now()
	registry.Create("c1", "design", now).Add("alice", now)

	_, _, found := registry.Detach("design", "bob")
	req.False(found)
	_, _, found = registry.Detach("missing", "alice")
	req.False(found)
	req.Equal(1, registry.Len())
}

func TestParticipantRegistry_Stale(t *testing.T) {
	req := require.New(t)
	registry := NewParticipantRegistry()
	now := time.Now()
	timeout := time.Second

	registry.Put(domain.Participant{ID: "fresh", LastSeen: now})
	registry.Put(domain.Participant{ID: "edge", LastSeen: now.Add(-timeout)})
	registry.Put(domain.Participant{ID: "old", LastSeen: now.Add(-timeout - time.Millisecond)})

	// Idle time equal to the timeout is not stale yet
	req.Equal([]string{"old"}, registry.Stale(now, timeout))
}

func TestParticipantRegistry_Touch(t *testing.T) {
	req := require.New(t)
	registry := NewParticipantRegistry()
	now := time.Now()

	registry.Put(domain.Participant{ID: "alice", LastSeen: now.Add(-time.Hour)})
	registry.Touch("alice", now)
	registry.Touch("ghost", now)

	p, ok := registry.Get("alice")
	req.True(ok)
	req.Equal(now, p.LastSeen)
	_, ok = registry.Get("ghost")
	req.False(ok)
	req.Equal([]string{"alice"}, registry.IDs())
}
