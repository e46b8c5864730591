package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/dispatch/internal/ports/primary"
)

// AuditAdapter is a thin adapter that translates CLI operations to AuditService calls.
type AuditAdapter struct {
	service primary.AuditService
	out     io.Writer
}

// NewAuditAdapter creates a new AuditAdapter with the given service.
func NewAuditAdapter(service primary.AuditService, out io.Writer) *AuditAdapter {
	return &AuditAdapter{
		service: service,
		out:     out,
	}
}

// List prints audit entries, newest first.
func (a *AuditAdapter) List(ctx context.Context, filters primary.AuditFilters) error {
	entries, err := a.service.ListEntries(ctx, filters)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No audit entries found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-20s %-12s %-7s %-10s %-12s %s\n", "TIME", "ACTOR", "ACTION", "KIND", "ID", "FIELDS")
	fmt.Fprintln(a.out, rule)
	for _, e := range entries {
		fmt.Fprintf(a.out, "%-20s %-12s %-7s %-10s %-12s %s\n",
			e.Timestamp, dash(e.ActorID), e.Action, e.EntityType, e.EntityID, dash(e.FieldName))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Prune deletes old audit entries.
func (a *AuditAdapter) Prune(ctx context.Context, days int) error {
	n, err := a.service.PruneEntries(ctx, days)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Pruned %d audit entries older than %d days\n", n, days)
	return nil
}
