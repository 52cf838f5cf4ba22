// Package eventbus implements the synchronous typed publish/subscribe
// dispatcher that connects the domain stores to the progress engine and the
// planner aggregator.
package eventbus

import (
	"testing"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/domain/entity"
)

func TestBus_DeliveryOrder(t *testing.T) {
	bus := New()
	goalID := uuid.New()

	var order []string
	bus.Subscribe(entity.EventGoalUpdated, func(entity.DomainEvent) {
		order = append(order, "first")
	})
	bus.Subscribe(entity.EventGoalUpdated, func(entity.DomainEvent) {
		order = append(order, "second")
	})

	bus.Publish(entity.NewGoalEvent(entity.EventGoalUpdated, goalID))

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("expected delivery in subscription order, got %v", order)
	}
}

func TestBus_OnlyMatchingKindDelivered(t *testing.T) {
	bus := New()

	delivered := 0
	bus.Subscribe(entity.EventTaskCompleted, func(entity.DomainEvent) {
		delivered++
	})

	bus.Publish(entity.NewGoalEvent(entity.EventGoalUpdated, uuid.New()))

	if delivered != 0 {
		t.Errorf("expected no delivery for a different kind, got %d", delivered)
	}
}

func TestBus_PanicIsolation(t *testing.T) {
	bus := New()
	goalID := uuid.New()

	reached := false
	bus.Subscribe(entity.EventGoalUpdated, func(entity.DomainEvent) {
		panic("broken subscriber")
	})
	bus.Subscribe(entity.EventGoalUpdated, func(entity.DomainEvent) {
		reached = true
	})

	bus.Publish(entity.NewGoalEvent(entity.EventGoalUpdated, goalID))

	if !reached {
		t.Error("expected delivery to continue past a panicking subscriber")
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()

	delivered := 0
	sub := bus.Subscribe(entity.EventGoalUpdated, func(entity.DomainEvent) {
		delivered++
	})

	bus.Publish(entity.NewGoalEvent(entity.EventGoalUpdated, uuid.New()))
	bus.Unsubscribe(sub)
	bus.Publish(entity.NewGoalEvent(entity.EventGoalUpdated, uuid.New()))

	if delivered != 1 {
		t.Errorf("expected exactly one delivery before unsubscribe, got %d", delivered)
	}

	// Unsubscribing twice must not panic or affect other subscribers.
	bus.Unsubscribe(sub)
}

func TestBus_PublishWithoutSubscribersIsDropped(t *testing.T) {
	bus := New()

	// No subscribers registered: the event is silently dropped.
	bus.Publish(entity.NewGoalEvent(entity.EventGoalUpdated, uuid.New()))

	// A subscriber registered afterwards never sees past events.
	delivered := 0
	bus.Subscribe(entity.EventGoalUpdated, func(entity.DomainEvent) {
		delivered++
	})
	if delivered != 0 {
		t.Errorf("expected late subscriber to see no past events, got %d", delivered)
	}
}
