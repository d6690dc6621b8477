package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Actions recorded in the audit log
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
)

// Entry is a single audit-log record of a user-initiated mutation
type Entry struct {
	ID        uuid.UUID `json:"id"`
	ActorID   int64     `json:"actor_id"`
	Action    string    `json:"action"`
	TargetID  int64     `json:"target_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEntry builds an audit entry for an action the actor performed on target
func NewEntry(actorID int64, action string, targetID int64) Entry {
	return Entry{
		ID:        uuid.New(),
		ActorID:   actorID,
		Action:    action,
		TargetID:  targetID,
		CreatedAt: time.Now().UTC(),
	}
}

// Recorder persists audit entries and serves the admin listing
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
	List(ctx context.Context, limit, offset int) ([]Entry, error)
}
