// Package notifier bridges the aggregator's snapshot-changed subscription to
// other local processes (widgets, menubar) over Redis pub/sub. The core never
// depends on it; without Redis configured the in-process subscription is the
// only notification channel.
package notifier

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/life-planner/backend/internal/domain/entity"
)

// RedisSnapshotNotifier publishes a small "snapshot changed" message whenever
// the aggregator swaps in a fresh home snapshot.
type RedisSnapshotNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisSnapshotNotifier creates a notifier publishing to the given channel.
func NewRedisSnapshotNotifier(url, channel string) (*RedisSnapshotNotifier, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	return &RedisSnapshotNotifier{
		client:  redis.NewClient(opts),
		channel: channel,
	}, nil
}

// OnSnapshot is the aggregator listener. Publish failures are logged and
// swallowed: a missing widget process must never affect a recompute.
func (n *RedisSnapshotNotifier) OnSnapshot(snapshot entity.HomeSnapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	payload := snapshot.GeneratedAt.UTC().Format(time.RFC3339Nano) +
		" goals=" + strconv.FormatFloat(snapshot.Rings.Goals, 'f', 4, 64)
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		slog.Warn("snapshot notification publish failed", "channel", n.channel, "error", err)
	}
}

// Close releases the Redis connection.
func (n *RedisSnapshotNotifier) Close() error {
	return n.client.Close()
}
