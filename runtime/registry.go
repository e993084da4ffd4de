package runtime

import (
	"secure-bridge/domain"
	"slices"
	"time"

	"github.com/samber/lo"
)

// ChannelRegistry maps channel names to their state.
// It is not synchronized: the Hub holds its lock around every call.
type ChannelRegistry struct {
	channels map[string]*domain.Channel
}

func NewChannelRegistry() *ChannelRegistry {
	return &ChannelRegistry{channels: make(map[string]*domain.Channel)}
}

func (r *ChannelRegistry) Lookup(name string) (*domain.Channel, bool) {
	ch, ok := r.channels[name]
	return ch, ok
}

// Create registers an empty channel. The caller must add a member before
// releasing the hub lock so that no empty channel is ever observable.
func (r *ChannelRegistry) Create(id domain.ChannelID, name string, now time.Time) *domain.Channel {
	ch := domain.NewChannel(id, name, now)
	r.channels[name] = ch
	return ch
}

// Detach removes a participant from the named channel and deletes the channel
// once its last member is gone. It returns the channel (for the departure
// broadcast) and whether the channel was removed.
func (r *ChannelRegistry) Detach(name, participantID string) (*domain.Channel, bool, bool) {
	ch, ok := r.channels[name]
	if !ok || !ch.Has(participantID) {
		return nil, false, false
	}
	if empty := ch.Remove(participantID); empty {
		delete(r.channels, name)
		return ch, true, true
	}
	return ch, false, true
}

// Members returns the sorted participant ids of a channel.
func (r *ChannelRegistry) Members(name string) []string {
	ch, ok := r.channels[name]
	if !ok {
		return nil
	}
	members := lo.Keys(ch.Participants)
	slices.Sort(members)
	return members
}

func (r *ChannelRegistry) Len() int {
	return len(r.channels)
}

func (r *ChannelRegistry) Clear() {
	clear(r.channels)
}

// ParticipantRegistry maps participant ids to their channel binding and last activity.
// Like ChannelRegistry it relies on the Hub lock.
type ParticipantRegistry struct {
	participants map[string]domain.Participant
}

func NewParticipantRegistry() *ParticipantRegistry {
	return &ParticipantRegistry{participants: make(map[string]domain.Participant)}
}

func (r *ParticipantRegistry) Get(id string) (domain.Participant, bool) {
	p, ok := r.participants[id]
	return p, ok
}

func (r *ParticipantRegistry) Put(p domain.Participant) {
	r.participants[p.ID] = p
}

func (r *ParticipantRegistry) Touch(id string, now time.Time) {
	if p, ok := r.participants[id]; ok {
		p.LastSeen = now
		r.participants[id] = p
	}
}

func (r *ParticipantRegistry) Remove(id string) {
	delete(r.participants, id)
}

// IDs returns every registered participant id, sorted.
func (r *ParticipantRegistry) IDs() []string {
	ids := lo.Keys(r.participants)
	slices.Sort(ids)
	return ids
}

// Stale returns the sorted ids idle for strictly more than timeout.
func (r *ParticipantRegistry) Stale(now time.Time, timeout time.Duration) []string {
	stale := lo.Keys(lo.PickBy(r.participants, func(_ string, p domain.Participant) bool {
		return p.IdleFor(now) > timeout
	}))
	slices.Sort(stale)
	return stale
}

// All exposes the underlying map for read-only use under the hub lock.
func (r *ParticipantRegistry) All() map[string]domain.Participant {
	return r.participants
}

func (r *ParticipantRegistry) Len() int {
	return len(r.participants)
}

func (r *ParticipantRegistry) Clear() {
	clear(r.participants)
}
