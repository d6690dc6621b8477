package events

import "context"

// Queue is a bounded in-process notification queue between the stream
// connector and the consumer loop. A message leaves the queue only when the
// consumer takes it; the consumer holds it until handling succeeds, which
// preserves at-least-once semantics end to end.
type Queue struct {
	ch chan Notification
}

// NewQueue creates a queue holding up to size pending notifications
func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan Notification, size)}
}

// Enqueue adds a notification, blocking while the queue is full so a slow
// consumer applies backpressure to the connector instead of losing events.
func (q *Queue) Enqueue(ctx context.Context, n Notification) error {
	select {
	case q.ch <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Messages exposes the receive side for the consumer loop
func (q *Queue) Messages() <-chan Notification {
	return q.ch
}

// Pending returns the number of queued notifications
func (q *Queue) Pending() int {
	return len(q.ch)
}
