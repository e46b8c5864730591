package app

import (
	"context"
	"fmt"

	"github.com/example/dispatch/internal/apperr"
	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/ports/secondary"
)

var errAuditDisabled = apperr.New(apperr.CodeInvalidArgument, "audit log is disabled (audit_db is off)")

// AuditServiceImpl implements the AuditService interface.
type AuditServiceImpl struct {
	auditRepo secondary.AuditLogRepository
}

// NewAuditService creates a new AuditService with injected dependencies.
// A nil repository means auditing is disabled and every call fails.
func NewAuditService(auditRepo secondary.AuditLogRepository) *AuditServiceImpl {
	return &AuditServiceImpl{
		auditRepo: auditRepo,
	}
}

// ListEntries retrieves audit entries matching the given filters.
func (s *AuditServiceImpl) ListEntries(ctx context.Context, filters primary.AuditFilters) ([]*primary.AuditEntry, error) {
	if s.auditRepo == nil {
		return nil, errAuditDisabled
	}
	records, err := s.auditRepo.List(ctx, secondary.AuditLogFilters{
		EntityType: filters.EntityType,
		EntityID:   filters.EntityID,
		ActorID:    filters.ActorID,
		Action:     filters.Action,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]*primary.AuditEntry, len(records))
	for i, r := range records {
		entries[i] = recordToAuditEntry(r)
	}
	return entries, nil
}

// PruneEntries deletes entries older than the specified number of days.
func (s *AuditServiceImpl) PruneEntries(ctx context.Context, olderThanDays int) (int, error) {
	if s.auditRepo == nil {
		return 0, errAuditDisabled
	}
	if olderThanDays < 0 {
		return 0, fmt.Errorf("days must be non-negative, got %d", olderThanDays)
	}
	return s.auditRepo.PruneOlderThan(ctx, olderThanDays)
}

func recordToAuditEntry(r *secondary.AuditLogRecord) *primary.AuditEntry {
	return &primary.AuditEntry{
		ID:         r.ID,
		Timestamp:  r.Timestamp,
		ActorID:    r.ActorID,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Action:     r.Action,
		FieldName:  r.FieldName,
		OldValue:   r.OldValue,
		NewValue:   r.NewValue,
	}
}

// Ensure AuditServiceImpl implements the interface
var _ primary.AuditService = (*AuditServiceImpl)(nil)
