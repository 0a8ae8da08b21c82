// Package notify provides the change-notification fan-out: an in-process hub
// for single-node deployments and a Redis-backed variant for multi-node
// ones. Both are best-effort; a slow or gone subscriber never blocks or
// fails a publisher.
package notify

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"partsdesk/internal/core/ports"
)

// subscriberBuffer is the per-subscriber delivery queue length. A subscriber
// that falls this far behind starts losing events rather than slowing the
// hub down.
const subscriberBuffer = 16

// encodePayload is the wire encoding shared by every Notifier backend, so a
// consumer sees the same JSON regardless of which transport delivered it.
func encodePayload(payload ports.Payload) ([]byte, error) {
	return json.Marshal(payload)
}

// Hub is the in-process Notifier. Subscribers register per topic; publishes
// fan out to every open subscriber of that topic, skipping any whose buffer
// is full.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[uuid.UUID]*hubSubscription
	logger *slog.Logger
}

// NewHub creates an in-process notification hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		topics: make(map[string]map[uuid.UUID]*hubSubscription),
		logger: logger.With("component", "notify-hub"),
	}
}

// Subscribe registers a subscriber on a topic.
func (h *Hub) Subscribe(topic string) ports.Subscription {
	sub := &hubSubscription{
		id:     uuid.New(),
		topic:  topic,
		events: make(chan []byte, subscriberBuffer),
		hub:    h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.topics[topic] == nil {
		h.topics[topic] = make(map[uuid.UUID]*hubSubscription)
	}
	h.topics[topic][sub.id] = sub
	return sub
}

// Publish serializes the payload and delivers it to every open subscriber of
// the topic. Subscribers whose buffer is full are skipped.
func (h *Hub) Publish(topic string, payload ports.Payload) {
	data, err := encodePayload(payload)
	if err != nil {
		h.logger.Error("payload serialization failed", "topic", topic, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.topics[topic] {
		select {
		case sub.events <- data:
		default:
			h.logger.Warn("subscriber buffer full, skipping event",
				"topic", topic, "subscriber", sub.id)
		}
	}
}

func (h *Hub) unregister(sub *hubSubscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[sub.topic]
	if !ok {
		return
	}
	if _, ok = subs[sub.id]; !ok {
		return
	}

	delete(subs, sub.id)
	if len(subs) == 0 {
		delete(h.topics, sub.topic)
	}
	close(sub.events)
}

// hubSubscription is one live registration on the hub.
type hubSubscription struct {
	id     uuid.UUID
	topic  string
	events chan []byte
	hub    *Hub

	closeOnce sync.Once
}

// Events returns the delivery channel. It is closed when the subscription
// is closed.
func (s *hubSubscription) Events() <-chan []byte {
	return s.events
}

// Close deregisters the subscription. Closing twice is a no-op.
func (s *hubSubscription) Close() {
	s.closeOnce.Do(func() {
		s.hub.unregister(s)
	})
}
