// Package runtime handles the bridge lifecycle, membership and notification fan-out.
// Every registry mutation goes through the Hub lock so that no two operations
// (including the heartbeat sweep) ever interleave.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"secure-bridge/domain"
	"secure-bridge/domain/event"
	"secure-bridge/errors"
	"secure-bridge/observability"
	"secure-bridge/runtime/workers"
	"secure-bridge/secureid"
	"secure-bridge/security"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	ReasonGracefulLeave = "Graceful leave"
	ReasonTimeout       = "Timeout"
	ReasonShutdown      = "Bridge shutdown"
	ReasonSwitched      = "Switched channel"

	defaultRestartInterval = 200 * time.Millisecond
)

var validate = validator.New()

type joinRequest struct {
	ParticipantID string `validate:"required"`
	ChannelName   string `validate:"required"`
}

// IDGenerator produces identifiers for channels and messages.
type IDGenerator interface {
	Generate() (string, error)
}

// Result is returned by every request; failures are never raised as errors.
// Err keeps the sentinel behind a failure for callers using errors.Is.
type Result struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	ChannelID domain.ChannelID `json:"channelId,omitempty"`
	Err       error            `json:"-"`
}

func failure(err error) Result {
	return Result{Success: false, Message: err.Error(), Err: err}
}

type Option func(*Hub)

// WithClock replaces time.Now, mostly to drive timeouts from tests.
// Uptime is then measured from hub creation on that clock.
func WithClock(now func() time.Time) Option {
	return func(h *Hub) {
		h.now = now
		h.clocked = true
	}
}

func WithIDGenerator(ids IDGenerator) Option {
	return func(h *Hub) { h.ids = ids }
}

// WithRestartInterval sets the delay before a crashed heartbeat worker is restarted.
func WithRestartInterval(d time.Duration) Option {
	return func(h *Hub) { h.restartInterval = d }
}

type Hub struct {
	// lifecycle serializes Start and Stop; mu guards the registries.
	lifecycle       sync.Mutex
	mu              sync.Mutex
	log             *slog.Logger
	cfg             domain.BridgeConfig
	channels        *ChannelRegistry
	participants    *ParticipantRegistry
	notifier        *Notifier
	ids             IDGenerator
	now             func() time.Time
	clocked         bool
	startedAt       time.Time
	restartInterval time.Duration
	running         bool
	cancel          context.CancelFunc
	done            chan struct{}
}

func NewHub(log *slog.Logger, cfg domain.BridgeConfig, opts ...Option) (*Hub, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	h := &Hub{
		log:             log,
		cfg:             cfg,
		channels:        NewChannelRegistry(),
		participants:    NewParticipantRegistry(),
		notifier:        NewNotifier(log),
		ids:             secureid.NewGenerator(),
		now:             time.Now,
		restartInterval: defaultRestartInterval,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.startedAt = h.now()
	if h.clocked {
		return h, nil
	}
	startedAt, err := observability.ProcessStartTime()
	if err != nil {
		log.Debug("Process start time unavailable, measuring uptime from hub creation", "err", err)
		return h, nil
	}
	h.startedAt = startedAt
	return h, nil
}

// Subscribe registers an observer. A non-positive buffer falls back to the configured size.
func (h *Hub) Subscribe(buffer int) Subscription {
	if buffer <= 0 {
		buffer = h.cfg.SubscriberBuffer
	}
	return h.notifier.Subscribe(buffer)
}

func (h *Hub) Unsubscribe(sub Subscription) bool {
	return h.notifier.Unsubscribe(sub.ID)
}

// Subscribers reports how many subscriptions are currently registered.
func (h *Hub) Subscribers() int {
	return h.notifier.Len()
}

// Dropped reports how many notifications were lost on full subscriber queues.
func (h *Hub) Dropped() uint64 {
	return h.notifier.Dropped()
}

// Start launches the heartbeat monitor. Calling it twice only logs a warning.
func (h *Hub) Start() {
	h.lifecycle.Lock()
	defer h.lifecycle.Unlock()
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running {
		h.log.Warn("Bridge already running")
		return
	}
	h.running = true

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	supervisor := workers.NewSupervisor(h.log, h.restartInterval)
	supervisor.Add(workers.NewHeartbeatWorker(h.log, h, h.cfg.HeartbeatInterval()))
	go func() {
		defer close(done)
		supervisor.Run(ctx)
	}()
	h.cancel, h.done = cancel, done

	h.log.Info("Bridge started with zero network exposure",
		"max_connections", h.cfg.MaxConnections,
		"timeout", h.cfg.Timeout,
		"encryption", h.cfg.EnableEncryption)
	now := h.now()
	h.notifier.Publish(event.New(event.StartedType, now, event.Lifecycle{Status: h.status(now)}))
}

// Stop disconnects every participant, tears the heartbeat down and clears all state.
// Departure notifications are emitted before the registries are cleared.
func (h *Hub) Stop() {
	h.lifecycle.Lock()
	defer h.lifecycle.Unlock()
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	for _, participantID := range h.participants.IDs() {
		h.disconnect(participantID, ReasonShutdown)
	}
	h.channels.Clear()
	h.participants.Clear()
	cancel, done := h.cancel, h.done
	h.cancel, h.done = nil, nil
	now := h.now()
	stopped := event.New(event.StoppedType, now, event.Lifecycle{Status: h.status(now)})
	h.mu.Unlock()

	// A tick racing with Stop sees running == false and does nothing.
	// The monitor is gone before STOPPED is published; no Start can run meanwhile.
	cancel()
	<-done

	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Info("Bridge stopped gracefully")
	h.notifier.Publish(stopped)
}

func (h *Hub) JoinChannel(participantID, channelName string) (res Result) {
	defer h.recoverOp(&res, errors.ErrJoinFailed, "join")

	if err := validate.Struct(joinRequest{ParticipantID: participantID, ChannelName: channelName}); err != nil {
		return failure(errors.ErrIdentifiersRequired)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	now := h.now()

	if h.participants.Len() >= h.cfg.MaxConnections {
		return failure(errors.ErrMaxConnections)
	}
	current, connected := h.participants.Get(participantID)
	switched := connected && current.ChannelName != channelName

	// Identifiers are drawn before any mutation so a failing source leaves state untouched.
	ch, exists := h.channels.Lookup(channelName)
	var channelID string
	if !exists {
		id, err := h.ids.Generate()
		if err != nil {
			h.log.Error("Cannot create channel identifier", "channel", channelName, "err", err)
			return failure(errors.ErrJoinFailed)
		}
		channelID = id
	}
	messageID, err := h.ids.Generate()
	if err != nil {
		h.log.Error("Cannot create message identifier", "channel", channelName, "err", err)
		return failure(errors.ErrJoinFailed)
	}

	if switched {
		// Only the previous channel is affected, never the target one.
		h.disconnect(participantID, ReasonSwitched)
	}
	if !exists {
		ch = h.channels.Create(domain.ChannelID(channelID), channelName, now)
		h.log.Info("Channel created", "channel", channelName, "channel_id", ch.ID)
	}

	ch.Add(participantID, now)
	h.participants.Put(domain.Participant{
		ID:          participantID,
		ChannelID:   ch.ID,
		ChannelName: channelName,
		LastSeen:    now,
	})

	h.broadcast(ch, domain.Message{
		ID:      messageID,
		Kind:    domain.KindSystem,
		Channel: channelName,
		Payload: domain.SystemPayload{
			Message:       fmt.Sprintf("Participant %s joined channel", participantID),
			ParticipantID: participantID,
			ChannelID:     ch.ID,
		},
		Timestamp: now,
	})
	h.log.Info("Participant joined", "participant", participantID, "channel", channelName)
	h.notifier.Publish(event.New(event.ParticipantJoinedType, now, event.ParticipantJoined{
		ParticipantID: participantID,
		ChannelName:   channelName,
		ChannelID:     ch.ID,
	}))

	return Result{Success: true, Message: joinedMessage(channelName), ChannelID: ch.ID}
}

func (h *Hub) SendMessage(participantID, channelName string, payload domain.Payload) (res Result) {
	defer h.recoverOp(&res, errors.ErrSendFailed, "send")

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.participants.Get(participantID); !ok {
		return failure(errors.ErrParticipantNotConnected)
	}
	ch, ok := h.channels.Lookup(channelName)
	if !ok || !ch.Has(participantID) {
		return failure(errors.ErrParticipantNotInChannel)
	}

	messageID, err := h.ids.Generate()
	if err != nil {
		h.log.Error("Cannot create message identifier", "channel", channelName, "err", err)
		return failure(errors.ErrSendFailed)
	}

	now := h.now()
	h.participants.Touch(participantID, now)
	ch.Touch(now)

	h.broadcast(ch, domain.Message{
		ID:        messageID,
		Kind:      domain.KindMessage,
		Channel:   channelName,
		Payload:   payload,
		Timestamp: now,
		Encrypted: h.cfg.EnableEncryption,
	})
	h.log.Debug("Message sent", "participant", participantID, "channel", channelName, "message_id", messageID)
	h.notifier.Publish(event.New(event.MessageSentType, now, event.MessageSent{
		ParticipantID: participantID,
		ChannelName:   channelName,
		MessageID:     messageID,
	}))

	return Result{Success: true, Message: "Message sent successfully"}
}

func (h *Hub) LeaveChannel(participantID string) (res Result) {
	defer h.recoverOp(&res, errors.ErrLeaveFailed, "leave")

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.participants.Get(participantID); !ok {
		return failure(errors.ErrParticipantNotFound)
	}
	h.disconnect(participantID, ReasonGracefulLeave)
	return Result{Success: true, Message: "Left channel successfully"}
}

func (h *Hub) GetStatus() domain.Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status(h.now())
}

// Sweep is one heartbeat tick: it evicts participants idle for longer than the
// timeout and publishes the resulting status. It does nothing once stopped.
func (h *Hub) Sweep() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.running {
		return
	}
	now := h.now()
	for _, participantID := range h.participants.Stale(now, h.cfg.Timeout) {
		h.disconnect(participantID, ReasonTimeout)
	}
	h.notifier.Publish(event.New(event.HeartbeatType, now, event.Heartbeat{Status: h.status(now)}))
}

// disconnect is shared by leave, timeout eviction and shutdown. The hub lock must be held.
func (h *Hub) disconnect(participantID, reason string) {
	participant, ok := h.participants.Get(participantID)
	if !ok {
		return
	}
	now := h.now()

	ch, removed, found := h.channels.Detach(participant.ChannelName, participantID)
	switch {
	case !found:
		h.log.Warn("Participant was not a member of its channel", "participant", participantID,
			"channel", participant.ChannelName)
	case removed:
		h.log.Info("Removed empty channel", "channel", ch.Name)
	default:
		h.announceDeparture(ch, participantID, reason, now)
	}

	h.participants.Remove(participantID)
	h.log.Info("Participant disconnected", "participant", participantID, "reason", reason)
	h.notifier.Publish(event.New(event.ParticipantLeftType, now, event.ParticipantLeft{
		ParticipantID: participantID,
		ChannelName:   participant.ChannelName,
		Reason:        reason,
	}))
}

func (h *Hub) announceDeparture(ch *domain.Channel, participantID, reason string, now time.Time) {
	messageID, err := h.ids.Generate()
	if err != nil {
		// Eviction must still complete; only the courtesy message is lost.
		h.log.Error("Cannot create departure message identifier", "channel", ch.Name, "err", err)
		return
	}
	h.broadcast(ch, domain.Message{
		ID:      messageID,
		Kind:    domain.KindSystem,
		Channel: ch.Name,
		Payload: domain.SystemPayload{
			Message:       fmt.Sprintf("Participant %s left: %s", participantID, reason),
			ParticipantID: participantID,
			Reason:        reason,
		},
		Timestamp: now,
	})
}

// broadcast addresses a message to every current member of the channel.
func (h *Hub) broadcast(ch *domain.Channel, msg domain.Message) {
	if _, ok := h.channels.Lookup(ch.Name); !ok {
		return
	}
	h.notifier.Publish(event.New(event.ChannelMessageType, msg.Timestamp, event.ChannelMessage{
		ChannelName:  ch.Name,
		ChannelID:    ch.ID,
		Message:      msg,
		Participants: h.channels.Members(ch.Name),
	}))
}

func (h *Hub) status(now time.Time) domain.Status {
	return domain.Status{
		IsRunning:      h.running,
		Channels:       h.channels.Len(),
		Participants:   h.participants.Len(),
		Uptime:         now.Sub(h.startedAt),
		SecurityStatus: security.Validate(h.cfg, h.participants.All(), now),
	}
}

func (h *Hub) recoverOp(res *Result, fallback error, operation string) {
	if r := recover(); r != nil {
		h.log.Error("Recovered from internal fault", "operation", operation, "panic", r)
		*res = failure(fallback)
	}
}

func joinedMessage(channelName string) string {
	return fmt.Sprintf("Successfully joined channel: %s", channelName)
}
