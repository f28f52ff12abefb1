package ports

import "context"

// MessageHandler processes one message body. Returning nil acknowledges the message;
// an error leaves it to the broker's redelivery rules.
type MessageHandler func(ctx context.Context, body []byte) error

// MessageBroker moves opaque message bodies through named durable queues.
// Every message published on a queue is delivered to exactly one of the queue's
// consumers, at least once.
type MessageBroker interface {
	// Publish appends body to queue.
	Publish(ctx context.Context, queue string, body []byte) error

	// Consume delivers messages from queue to handler until ctx is done. consumer names
	// the caller among the competing consumers of the queue.
	Consume(ctx context.Context, queue, consumer string, handler MessageHandler) error

	// Close releases the broker's resources. Publish fails after Close.
	Close() error
}
