package event

import (
	"context"
	"sync"
	"time"

	"github.com/wattlehq/gatepass/pkg/idx"
	"github.com/wattlehq/gatepass/pkg/slogx"
)

type Topic string

const (
	// TopicInvited fires after an invitation has been handed to the
	// delivery hook.
	TopicInvited Topic = "invite.invited"

	// TopicAccepted fires after a registrant successfully redeems a key.
	TopicAccepted Topic = "invite.accepted"
)

// Event is a completed invitation state transition. Publishing happens as an
// explicit step after the transition commits; there are no implicit
// save/delete hooks.
type Event struct {
	ID       idx.ID
	Topic    Topic
	Key      string
	IssuerID string
	UserID   string // registrant, for TopicAccepted
	At       time.Time
}

// Publisher delivers events to in-process subscribers.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Handler receives published events. Handlers run synchronously on the
// publishing goroutine and must not block.
type Handler func(Event)

// Bus is a synchronous in-process fan-out publisher.
type Bus struct {
	mu   sync.RWMutex
	subs map[Topic][]Handler
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]Handler)}
}

// Subscribe registers a handler for a topic. Not safe to call concurrently
// with itself during Publish storms; wiring happens at startup.
func (b *Bus) Subscribe(topic Topic, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topic] = append(b.subs[topic], h)
}

func (b *Bus) Publish(ctx context.Context, e Event) {
	if e.ID.IsZero() {
		e.ID = idx.New()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	slogx.FromContext(ctx).Debug("event published",
		"topic", string(e.Topic),
		"event_id", e.ID.String(),
		"key", e.Key,
	)

	b.mu.RLock()
	handlers := b.subs[e.Topic]
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}
