// Package redisstream is a durable message broker over Redis Streams.
//
// A queue is a stream with one consumer group named after the queue. Competing
// consumers join the group under their own names; XREADGROUP hands each entry to one of
// them and XACK removes it from the group's pending list once the handler succeeds.
// Entries whose handler failed, or whose consumer died, stay pending: the owner reads
// them again when it restarts, and any consumer claims them once they have been idle
// for ClaimIdle.
package redisstream

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"pizzeria/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const bodyField = "body"

var ErrBrokerClosed = errors.New("broker is closed")

// Options tune polling and redelivery.
type Options struct {
	// Block is how long one XREADGROUP waits for new entries.
	Block time.Duration
	// Count caps the entries fetched per read.
	Count int64
	// ClaimIdle is how long an entry must sit unacknowledged before another consumer
	// takes it over. Zero disables claiming.
	ClaimIdle time.Duration
	// MaxLen trims each stream to roughly this many entries. Zero keeps everything.
	MaxLen int64
}

func DefaultOptions() Options {
	return Options{
		Block:     time.Second,
		Count:     10,
		ClaimIdle: time.Minute,
	}
}

// Broker implements ports.MessageBroker on a Redis client.
type Broker struct {
	client *redis.Client
	opts   Options
	logger *slog.Logger

	done      chan struct{}
	closeOnce sync.Once
}

var _ ports.MessageBroker = (*Broker)(nil)

// NewBroker wraps client. The broker owns the client and closes it on Close.
func NewBroker(client *redis.Client, opts Options, logger *slog.Logger) *Broker {
	defaults := DefaultOptions()
	if opts.Block <= 0 {
		opts.Block = defaults.Block
	}
	if opts.Count <= 0 {
		opts.Count = defaults.Count
	}
	return &Broker{
		client: client,
		opts:   opts,
		logger: logger.With("component", "redis_broker"),
		done:   make(chan struct{}),
	}
}

// Publish appends body to the queue's stream.
func (b *Broker) Publish(ctx context.Context, queue string, body []byte) error {
	if b.closed() {
		return ErrBrokerClosed
	}

	args := &redis.XAddArgs{
		Stream: queue,
		Values: map[string]any{bodyField: body},
	}
	if b.opts.MaxLen > 0 {
		args.MaxLen = b.opts.MaxLen
		args.Approx = true
	}
	return b.client.XAdd(ctx, args).Err()
}

// Consume reads the queue as consumer until ctx is done or the broker is closed.
// Entries this consumer left pending on a previous run are handled first.
func (b *Broker) Consume(ctx context.Context, queue, consumer string, handler ports.MessageHandler) error {
	if err := b.ensureGroup(ctx, queue); err != nil {
		return err
	}
	log := b.logger.With("queue", queue, "consumer", consumer)

	if err := b.drainPending(ctx, queue, consumer, handler, log); err != nil {
		return b.stopped(ctx, err)
	}

	lastClaim := time.Now()
	for !b.closed() && ctx.Err() == nil {
		if b.opts.ClaimIdle > 0 && time.Since(lastClaim) >= b.opts.ClaimIdle {
			lastClaim = time.Now()
			if err := b.claimIdle(ctx, queue, consumer, handler, log); err != nil {
				log.WarnContext(ctx, "failed to claim idle entries", "error", err)
			}
		}

		streams, err := b.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    queue,
			Consumer: consumer,
			Streams:  []string{queue, ">"},
			Count:    b.opts.Count,
			Block:    b.opts.Block,
		}).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if stopErr := b.stopped(ctx, err); stopErr == nil {
				return nil
			}
			log.ErrorContext(ctx, "failed to read from stream", "error", err)
			b.pause(ctx, b.opts.Block)
			continue
		}

		for _, stream := range streams {
			b.handle(ctx, queue, stream.Messages, handler, log)
		}
	}
	return nil
}

func (b *Broker) drainPending(
	ctx context.Context,
	queue, consumer string,
	handler ports.MessageHandler,
	log *slog.Logger,
) error {
	start := "0"
	for {
		streams, err := b.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    queue,
			Consumer: consumer,
			Streams:  []string{queue, start},
			Count:    b.opts.Count,
			Block:    -1,
		}).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}

		var messages []redis.XMessage
		for _, stream := range streams {
			messages = append(messages, stream.Messages...)
		}
		if len(messages) == 0 {
			return nil
		}

		log.InfoContext(ctx, "redelivering pending entries", "count", len(messages))
		b.handle(ctx, queue, messages, handler, log)
		start = messages[len(messages)-1].ID
	}
}

func (b *Broker) claimIdle(
	ctx context.Context,
	queue, consumer string,
	handler ports.MessageHandler,
	log *slog.Logger,
) error {
	messages, _, err := b.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   queue,
		Group:    queue,
		Consumer: consumer,
		MinIdle:  b.opts.ClaimIdle,
		Start:    "0-0",
		Count:    b.opts.Count,
	}).Result()
	if err != nil {
		return err
	}
	if len(messages) > 0 {
		log.InfoContext(ctx, "claimed idle entries", "count", len(messages))
		b.handle(ctx, queue, messages, handler, log)
	}
	return nil
}

func (b *Broker) handle(
	ctx context.Context,
	queue string,
	messages []redis.XMessage,
	handler ports.MessageHandler,
	log *slog.Logger,
) {
	for _, msg := range messages {
		if ctx.Err() != nil {
			return
		}

		body, ok := messageBody(msg)
		if !ok {
			log.WarnContext(ctx, "stream entry without body, acknowledging", "id", msg.ID)
			b.ack(ctx, queue, msg.ID, log)
			continue
		}

		if err := handler(ctx, body); err != nil {
			log.WarnContext(ctx, "message handler failed, entry stays pending", "id", msg.ID, "error", err)
			continue
		}
		b.ack(ctx, queue, msg.ID, log)
	}
}

func (b *Broker) ack(ctx context.Context, queue, id string, log *slog.Logger) {
	if err := b.client.XAck(ctx, queue, queue, id).Err(); err != nil {
		log.ErrorContext(ctx, "failed to acknowledge entry", "id", id, "error", err)
	}
}

func (b *Broker) ensureGroup(ctx context.Context, queue string) error {
	err := b.client.XGroupCreateMkStream(ctx, queue, queue, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

// stopped returns nil when err is the result of shutting down, err otherwise.
func (b *Broker) stopped(ctx context.Context, err error) error {
	if ctx.Err() != nil || b.closed() || errors.Is(err, redis.ErrClosed) {
		return nil
	}
	return err
}

func (b *Broker) pause(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-b.done:
	case <-timer.C:
	}
}

func (b *Broker) closed() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// Close stops consumers and closes the Redis client.
func (b *Broker) Close() error {
	var err error
	b.closeOnce.Do(func() {
		close(b.done)
		err = b.client.Close()
	})
	return err
}

func messageBody(msg redis.XMessage) ([]byte, bool) {
	switch v := msg.Values[bodyField].(type) {
	case string:
		return []byte(v), true
	case []byte:
		return v, true
	default:
		return nil, false
	}
}
