package secondary

import (
	"context"
	"time"
)

// ChangePublisher defines the secondary port for change notification fan-out.
// Publish must not block on slow observers.
type ChangePublisher interface {
	Publish(ctx context.Context, change ChangeEvent)
}

// ChangeEvent describes one entity changed by a successful command.
type ChangeEvent struct {
	ID       string
	Kind     string // "player", "unit", "situation", "channel"
	EntityID string
	Action   string // "create", "update", "delete"
	Snapshot any    // copy of the record after the change; nil on delete
	At       time.Time
}
