// Package eventbus implements the synchronous typed publish/subscribe
// dispatcher that connects the domain stores to the progress engine and the
// planner aggregator.
//
// Delivery is synchronous and in subscription order: Publish returns only
// after every current subscriber of the event's kind has run. There is no
// queueing and no persistence; an event with no subscribers is dropped, and
// a subscriber registered after publication never sees past events.
package eventbus

import (
	"log/slog"
	"sync"

	"github.com/life-planner/backend/internal/domain/entity"
)

// Handler processes one delivered event.
type Handler func(event entity.DomainEvent)

// Subscription identifies one registered handler so it can be removed.
type Subscription struct {
	kind entity.EventKind
	id   int
}

// Bus dispatches domain events to subscribers.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[entity.EventKind][]subscriber
}

type subscriber struct {
	id      int
	handler Handler
}

// New creates an empty event bus.
func New() *Bus {
	return &Bus{
		subs: make(map[entity.EventKind][]subscriber),
	}
}

// Subscribe registers a handler for one event kind and returns a handle for
// later removal. Handlers for the same kind run in subscription order.
func (b *Bus) Subscribe(kind entity.EventKind, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs[kind] = append(b.subs[kind], subscriber{id: b.nextID, handler: handler})
	return Subscription{kind: kind, id: b.nextID}
}

// Unsubscribe removes a previously registered handler. Unknown handles are a no-op.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[sub.kind]
	for i, s := range list {
		if s.id == sub.id {
			b.subs[sub.kind] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to all current subscribers of its kind before
// returning. A panicking handler is isolated and logged; it never prevents
// delivery to the remaining handlers or corrupts the publishing call.
func (b *Bus) Publish(event entity.DomainEvent) {
	b.mu.Lock()
	list := make([]subscriber, len(b.subs[event.Kind]))
	copy(list, b.subs[event.Kind])
	b.mu.Unlock()

	for _, s := range list {
		deliver(s, event)
	}
}

func deliver(s subscriber, event entity.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("event handler panicked",
				"kind", event.Kind,
				"subscriber", s.id,
				"panic", r,
			)
		}
	}()
	s.handler(event)
}
