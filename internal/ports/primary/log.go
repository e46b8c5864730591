package primary

import "context"

// AuditService defines the primary port for audit log queries.
type AuditService interface {
	// ListEntries retrieves audit entries matching the given filters.
	ListEntries(ctx context.Context, filters AuditFilters) ([]*AuditEntry, error)

	// PruneEntries deletes entries older than the specified number of days.
	PruneEntries(ctx context.Context, olderThanDays int) (int, error)
}

// AuditEntry represents an audit log entry at the port boundary.
type AuditEntry struct {
	ID         string
	Timestamp  string
	ActorID    string
	EntityType string
	EntityID   string
	Action     string // 'create', 'update', 'delete'
	FieldName  string // For updates only
	OldValue   string
	NewValue   string
}

// AuditFilters contains filter options for querying audit entries.
type AuditFilters struct {
	EntityType string
	EntityID   string
	ActorID    string
	Action     string
	Limit      int
}
