package ports

// Payload is the change-notification message body. The "orderNo" key is
// always present; beyond that only changed fields are guaranteed, so
// consumers must tolerate partial payloads.
type Payload map[string]any

// Subscription is one live registration on a topic. Events delivers the
// JSON-serialized payloads published to the topic while the subscription is
// open; Close deregisters it. Closing is idempotent.
type Subscription interface {
	// Events returns the delivery channel. It is closed when the
	// subscription is closed.
	Events() <-chan []byte

	// Close deregisters the subscription and closes the Events channel.
	Close()
}

// Notifier is the topic-addressed publish/subscribe fan-out keyed by order
// identifier (topic = "order.<orderNumber>").
//
// Delivery is best-effort: a closed, errored, or slow subscriber is skipped,
// never retried, and never blocks delivery to others. Publishing never fails
// the caller's mutation, so there is no error return. Within one topic,
// publishes reach each open subscriber in call order; no ordering guarantee
// is made across topics, and there is no buffering for subscribers that
// connect later.
type Notifier interface {
	// Subscribe registers a subscriber on a topic.
	Subscribe(topic string) Subscription

	// Publish serializes the payload and delivers it to every currently-open
	// subscriber of the topic.
	Publish(topic string, payload Payload)
}
