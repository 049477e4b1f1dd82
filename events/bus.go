// Package events carries change notifications between services and any
// view that wants to refresh itself. Events are typed by kind so a
// subscriber interested in rooms is not woken by booking churn.
package events

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Kind identifies what changed.
type Kind string

const (
	// RoomsChanged fires after a room is created, updated or deleted.
	RoomsChanged Kind = "rooms-changed"
	// BookingsChanged fires after a booking is created or cancelled.
	BookingsChanged Kind = "bookings-changed"
)

// Event is a single change notification.
type Event struct {
	Kind Kind      `json:"kind"`
	At   time.Time `json:"at"`
}

// Bus is an in-process publish/subscribe bus. Publish never blocks:
// a subscriber that cannot keep up has the event dropped.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]subscriber
	logger *zap.Logger
}

type subscriber struct {
	kinds map[Kind]bool
	ch    chan Event
}

// NewBus constructs an event bus.
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		subs:   make(map[int]subscriber),
		logger: logger,
	}
}

// Subscribe registers interest in the given kinds (all kinds when none
// are given) and returns the delivery channel plus an unsubscribe func.
func (b *Bus) Subscribe(kinds ...Kind) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	kindSet := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		kindSet[k] = true
	}

	id := b.nextID
	b.nextID++
	ch := make(chan Event, 8)
	b.subs[id] = subscriber{kinds: kindSet, ch: ch}

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub.ch)
		}
	}
	return ch, unsubscribe
}

// Publish delivers the event to every matching subscriber.
func (b *Bus) Publish(kind Kind) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ev := Event{Kind: kind, At: time.Now()}
	for _, sub := range b.subs {
		if len(sub.kinds) > 0 && !sub.kinds[kind] {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			if b.logger != nil {
				b.logger.Warn("dropping event for slow subscriber", zap.String("kind", string(kind)))
			}
		}
	}
}
