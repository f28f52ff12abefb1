// Package memory is an in-process message broker for single-process runs and tests.
// Each queue is one buffered channel shared by all of its consumers, so every message
// reaches exactly one consumer. Nothing survives a restart.
package memory

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"pizzeria/internal/core/ports"
)

// DefaultQueueCapacity bounds how many messages a queue holds before Publish blocks.
const DefaultQueueCapacity = 1024

var ErrBrokerClosed = errors.New("broker is closed")

// Broker implements ports.MessageBroker in memory.
type Broker struct {
	capacity int
	logger   *slog.Logger

	mu     sync.Mutex
	queues map[string]chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

var _ ports.MessageBroker = (*Broker)(nil)

// NewBroker creates a broker whose queues hold up to capacity messages each.
// A non-positive capacity means DefaultQueueCapacity.
func NewBroker(capacity int, logger *slog.Logger) *Broker {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Broker{
		capacity: capacity,
		logger:   logger.With("component", "memory_broker"),
		queues:   make(map[string]chan []byte),
		done:     make(chan struct{}),
	}
}

func (b *Broker) queue(name string) chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	q, ok := b.queues[name]
	if !ok {
		q = make(chan []byte, b.capacity)
		b.queues[name] = q
	}
	return q
}

// Publish enqueues a copy of body. It blocks while the queue is full.
func (b *Broker) Publish(ctx context.Context, queue string, body []byte) error {
	select {
	case <-b.done:
		return ErrBrokerClosed
	default:
	}

	msg := make([]byte, len(body))
	copy(msg, body)

	select {
	case b.queue(queue) <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-b.done:
		return ErrBrokerClosed
	}
}

// Consume hands messages to handler until ctx is done or the broker is closed.
// A message whose handler fails is put back on the queue for another attempt.
func (b *Broker) Consume(ctx context.Context, queue, consumer string, handler ports.MessageHandler) error {
	q := b.queue(queue)
	log := b.logger.With("queue", queue, "consumer", consumer)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-b.done:
			return nil
		case msg := <-q:
			if err := handler(ctx, msg); err != nil {
				b.requeue(q, msg, log, err)
			}
		}
	}
}

func (b *Broker) requeue(q chan []byte, msg []byte, log *slog.Logger, cause error) {
	select {
	case q <- msg:
		log.Warn("message handler failed, message requeued", "error", cause)
	default:
		log.Error("message handler failed and queue is full, message lost", "error", cause)
	}
}

// Len reports how many messages wait on queue.
func (b *Broker) Len(queue string) int {
	return len(b.queue(queue))
}

// Close stops all consumers and rejects further publishes.
func (b *Broker) Close() error {
	b.closeOnce.Do(func() { close(b.done) })
	return nil
}
