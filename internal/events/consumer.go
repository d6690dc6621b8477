package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Handler is the invalidation side of the feed assembler
type Handler interface {
	HandlePostCreated(ctx context.Context, authorID int64) error
}

// Consumer is the single-consumer loop draining the notification queue.
// A notification is considered acknowledged only once the handler has
// succeeded; on failure it is retried with exponential backoff rather than
// dropped, because a missed invalidation leaves followers reading stale
// feeds until TTL expiry.
type Consumer struct {
	queue   *Queue
	handler Handler
	logger  *slog.Logger

	maxInterval time.Duration
}

// NewConsumer creates a consumer draining queue into handler
func NewConsumer(queue *Queue, handler Handler, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{
		queue:       queue,
		handler:     handler,
		logger:      logger,
		maxInterval: 30 * time.Second,
	}
}

// Run processes notifications until ctx is canceled
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("notification consumer started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("notification consumer shutting down")
			return ctx.Err()
		case n := <-c.queue.Messages():
			if n.Event != EventPostCreated {
				c.logger.Debug("ignoring unknown event", "event", n.Event)
				continue
			}
			if err := c.process(ctx, n); err != nil {
				// Only happens on shutdown mid-retry
				return err
			}
		}
	}
}

// process retries the invalidation until it succeeds or ctx is canceled
func (c *Consumer) process(ctx context.Context, n Notification) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxInterval = c.maxInterval
	bo.MaxElapsedTime = 0 // retry until shutdown

	attempt := 0
	operation := func() error {
		attempt++
		err := c.handler.HandlePostCreated(ctx, n.AuthorID)
		if err != nil {
			c.logger.Warn("invalidation failed, will retry",
				"author", n.AuthorID,
				"attempt", attempt,
				"error", err)
		}
		return err
	}

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return err
	}

	c.logger.Debug("notification handled", "event", n.Event, "author", n.AuthorID)
	return nil
}
