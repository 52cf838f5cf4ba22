// Package notifier bridges the aggregator's snapshot-changed subscription to
// other local processes over Redis pub/sub.
package notifier

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/life-planner/backend/internal/domain/entity"
)

func TestRedisSnapshotNotifier_Publish(t *testing.T) {
	mr := miniredis.RunT(t)

	n, err := NewRedisSnapshotNotifier("redis://"+mr.Addr(), "planner:snapshot")
	if err != nil {
		t.Fatalf("notifier setup failed: %v", err)
	}
	defer n.Close()

	sub := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer sub.Close()

	ctx := context.Background()
	pubsub := sub.Subscribe(ctx, "planner:snapshot")
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		t.Fatalf("subscription failed: %v", err)
	}

	generatedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	n.OnSnapshot(entity.HomeSnapshot{
		GeneratedAt: generatedAt,
		Rings:       entity.Rings{Goals: 0.375},
	})

	select {
	case msg := <-pubsub.Channel():
		if !strings.HasPrefix(msg.Payload, generatedAt.Format(time.RFC3339Nano)) {
			t.Errorf("expected payload to start with the snapshot timestamp, got %q", msg.Payload)
		}
		if !strings.Contains(msg.Payload, "goals=0.3750") {
			t.Errorf("expected payload to carry the goals ring, got %q", msg.Payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected a published notification")
	}
}

func TestRedisSnapshotNotifier_PublishFailureIsSwallowed(t *testing.T) {
	mr := miniredis.RunT(t)

	n, err := NewRedisSnapshotNotifier("redis://"+mr.Addr(), "planner:snapshot")
	if err != nil {
		t.Fatalf("notifier setup failed: %v", err)
	}
	defer n.Close()

	// A dead Redis must not panic or propagate; recomputes go on without it.
	mr.Close()
	n.OnSnapshot(entity.HomeSnapshot{GeneratedAt: time.Now().UTC()})
}

func TestRedisSnapshotNotifier_RejectsBadURL(t *testing.T) {
	if _, err := NewRedisSnapshotNotifier("not-a-url", "planner:snapshot"); err == nil {
		t.Error("expected an error for an invalid Redis URL")
	}
}
