package runtime

import (
	"log/slog"
	"secure-bridge/domain/event"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

const defaultSubscriberBuffer = 256

// Subscription is an ordered queue of hub notifications.
// C is closed when the subscription is cancelled.
type Subscription struct {
	ID uuid.UUID
	C  <-chan event.Event
}

// Notifier fans every published event out to all subscribers.
// Publishing never blocks: a subscriber whose queue is full loses the event.
type Notifier struct {
	mu      sync.Mutex
	log     *slog.Logger
	subs    map[uuid.UUID]chan event.Event
	dropped atomic.Uint64
}

func NewNotifier(log *slog.Logger) *Notifier {
	return &Notifier{log: log, subs: make(map[uuid.UUID]chan event.Event)}
}

func (n *Notifier) Subscribe(buffer int) Subscription {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	ch := make(chan event.Event, buffer)
	id := uuid.New()

	n.mu.Lock()
	n.subs[id] = ch
	n.mu.Unlock()

	return Subscription{ID: id, C: ch}
}

// Unsubscribe closes the subscription queue. It reports false for unknown ids.
func (n *Notifier) Unsubscribe(id uuid.UUID) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch, ok := n.subs[id]
	if !ok {
		return false
	}
	delete(n.subs, id)
	close(ch)
	return true
}

func (n *Notifier) Publish(evt event.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, ch := range n.subs {
		select {
		case ch <- evt:
		default:
			n.dropped.Add(1)
			n.log.Warn("Subscriber queue full, notification lost", "subscription", id, "type", evt.Type)
		}
	}
}

func (n *Notifier) Dropped() uint64 {
	return n.dropped.Load()
}

func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
