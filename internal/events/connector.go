package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Connector maintains the WebSocket connection to the notification stream
// and feeds decoded notifications into the queue. The producer side is
// fire-and-forget, so the connector's only job is to never miss a readable
// message: it reconnects forever with exponential backoff.
type Connector struct {
	wsURL  string
	queue  *Queue
	logger *slog.Logger
}

// NewConnector creates a connector for the notification stream at wsURL
func NewConnector(wsURL string, queue *Queue, logger *slog.Logger) *Connector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Connector{
		wsURL:  wsURL,
		queue:  queue,
		logger: logger,
	}
}

// Start consumes the stream until ctx is canceled, reconnecting on errors
func (c *Connector) Start(ctx context.Context) error {
	c.logger.Info("starting notification stream connector", "url", c.wsURL)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxInterval = 30 * time.Second
	bo.MaxElapsedTime = 0 // never stop retrying

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("notification stream connector shutting down")
			return ctx.Err()
		default:
			if err := c.connect(ctx); err != nil {
				wait := bo.NextBackOff()
				c.logger.Warn("notification stream connection lost",
					"error", err,
					"retry_in", wait)
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return ctx.Err()
				}
				continue
			}
			bo.Reset()
		}
	}
}

// connect establishes the WebSocket connection and reads until it breaks
func (c *Connector) connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to dial notification stream: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			c.logger.Debug("failed to close websocket", "error", closeErr)
		}
	}()

	c.logger.Info("connected to notification stream")

	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		c.logger.Warn("failed to set read deadline", "error", err)
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	var closeOnce sync.Once

	// Keepalive pings; a failed ping tears the connection down
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
					closeOnce.Do(func() { close(done) })
					return
				}
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return fmt.Errorf("connection closed by ping failure")
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			closeOnce.Do(func() { close(done) })
			return fmt.Errorf("read error: %w", err)
		}

		var n Notification
		if err := json.Unmarshal(message, &n); err != nil {
			c.logger.Warn("failed to parse notification, skipping", "error", err)
			continue
		}

		if err := c.queue.Enqueue(ctx, n); err != nil {
			closeOnce.Do(func() { close(done) })
			return err
		}
	}
}
