// Package messaging runs the queue consumers of the kitchen and the delivery tracker.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"pizzeria/internal/core/ports"
	"pizzeria/internal/metrics"
)

// messageHandler decodes a JSON body into T and passes it to handle.
//
// Undecodable bodies and failing handlers are logged and acknowledged so one bad
// message never blocks the queue. The exception is a cancelled context: the message
// is left unacknowledged so the broker redelivers it to a live consumer. A panic in
// handle is recovered and treated as a failure.
func messageHandler[T any](
	queue string,
	logger *slog.Logger,
	m *metrics.Metrics,
	handle func(ctx context.Context, msg T) error,
) ports.MessageHandler {
	return func(ctx context.Context, body []byte) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorContext(ctx, "message processing panicked, dropping message", "panic", fmt.Sprint(r))
				m.MessageDropped(queue)
				err = nil
			}
		}()

		var msg T
		if err := json.Unmarshal(body, &msg); err != nil {
			logger.ErrorContext(ctx, "undecodable message, dropping", "error", err, "body", string(body))
			m.MessageDropped(queue)
			return nil
		}

		if err := handle(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return err
			}
			logger.ErrorContext(ctx, "message processing failed, dropping message", "error", err)
			m.MessageDropped(queue)
		}
		return nil
	}
}

// consumeAll runs one Consume loop per consumer name and waits for all of them.
// It returns the first error any loop reported.
func consumeAll(
	ctx context.Context,
	broker ports.MessageBroker,
	queue string,
	consumers []string,
	handler ports.MessageHandler,
) error {
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	for _, consumer := range consumers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := broker.Consume(ctx, queue, consumer, handler); err != nil {
				once.Do(func() { firstErr = fmt.Errorf("consumer %s on %s: %w", consumer, queue, err) })
			}
		}()
	}
	wg.Wait()
	return firstErr
}
