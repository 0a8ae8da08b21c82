package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"partsdesk/internal/core/ports"
)

// RedisNotifier is the Redis pub/sub backed Notifier. Topics map directly to
// Redis channels, so subscribers on other nodes see the same stream as local
// ones. Publish failures are logged and swallowed; notification delivery
// never fails the mutation that triggered it.
type RedisNotifier struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisNotifier creates a Redis-backed notifier on an existing client.
func NewRedisNotifier(client *redis.Client, logger *slog.Logger) *RedisNotifier {
	return &RedisNotifier{
		client: client,
		logger: logger.With("component", "notify-redis"),
	}
}

// Subscribe registers a subscriber on a topic via Redis pub/sub.
func (n *RedisNotifier) Subscribe(topic string) ports.Subscription {
	pubsub := n.client.Subscribe(context.Background(), topic)
	sub := &redisSubscription{
		pubsub: pubsub,
		events: make(chan []byte, subscriberBuffer),
	}

	go func() {
		defer close(sub.events)
		for msg := range pubsub.Channel() {
			select {
			case sub.events <- []byte(msg.Payload):
			default:
				n.logger.Warn("subscriber buffer full, skipping event", "topic", topic)
			}
		}
	}()

	return sub
}

// Publish serializes the payload and publishes it to the topic's channel.
func (n *RedisNotifier) Publish(topic string, payload ports.Payload) {
	data, err := encodePayload(payload)
	if err != nil {
		n.logger.Error("payload serialization failed", "topic", topic, "error", err)
		return
	}

	if err := n.client.Publish(context.Background(), topic, data).Err(); err != nil {
		n.logger.Error("publish failed", "topic", topic, "error", err)
	}
}

// redisSubscription is one live Redis pub/sub registration.
type redisSubscription struct {
	pubsub *redis.PubSub
	events chan []byte

	closeOnce sync.Once
}

// Events returns the delivery channel. It is closed when the subscription
// is closed.
func (s *redisSubscription) Events() <-chan []byte {
	return s.events
}

// Close unsubscribes from the Redis channel. The events channel closes once
// the forwarding goroutine drains.
func (s *redisSubscription) Close() {
	s.closeOnce.Do(func() {
		_ = s.pubsub.Close()
	})
}
