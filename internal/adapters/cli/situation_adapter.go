package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/dispatch/internal/ports/primary"
)

// SituationAdapter is a thin adapter that translates CLI operations to SituationService calls.
type SituationAdapter struct {
	service primary.SituationService
	out     io.Writer
}

// NewSituationAdapter creates a new SituationAdapter with the given service.
func NewSituationAdapter(service primary.SituationService, out io.Writer) *SituationAdapter {
	return &SituationAdapter{
		service: service,
		out:     out,
	}
}

func activeLabel(s *primary.Situation) string {
	if s.Active {
		return color.New(color.FgGreen).Sprint("active")
	}
	return color.New(color.FgHiBlack).Sprint("closed")
}

func (a *SituationAdapter) printRoles(s *primary.Situation) {
	fmt.Fprintf(a.out, "✓ %s units=%s initiator=%s commander=%s\n",
		s.ID, dash(strings.Join(s.Units, ",")), dash(s.InitiatorID), dash(s.CommanderID))
}

// Create creates a situation.
func (a *SituationAdapter) Create(ctx context.Context, typ string, metadata map[string]string) error {
	s, err := a.service.CreateSituation(ctx, primary.CreateSituationRequest{Type: typ, Metadata: metadata})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Created situation %s (%s)\n", s.ID, s.Type)
	return nil
}

// List lists situations.
func (a *SituationAdapter) List(ctx context.Context, activeOnly bool) error {
	situations, err := a.service.ListSituations(ctx, primary.SituationFilters{ActiveOnly: activeOnly})
	if err != nil {
		return err
	}

	if len(situations) == 0 {
		fmt.Fprintln(a.out, "No situations found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-9s %-12s %-7s %-10s %-10s %s\n", "ID", "TYPE", "STATE", "INITIATOR", "COMMANDER", "UNITS")
	fmt.Fprintln(a.out, rule)
	for _, s := range situations {
		state := "active"
		if !s.Active {
			state = "closed"
		}
		fmt.Fprintf(a.out, "%-9s %-12s %s %-10s %-10s %s\n",
			s.ID, s.Type, pad(activeLabel(s), state, 7), dash(s.InitiatorID), dash(s.CommanderID), dash(strings.Join(s.Units, ", ")))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Show displays one situation.
func (a *SituationAdapter) Show(ctx context.Context, situationID string) error {
	s, err := a.service.GetSituation(ctx, situationID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nSituation: %s (%s)\n", s.ID, s.Type)
	fmt.Fprintf(a.out, "State:     %s\n", activeLabel(s))
	fmt.Fprintf(a.out, "Metadata:  %s\n", formatMetadata(s.Metadata))
	fmt.Fprintf(a.out, "Units:     %s\n", dash(strings.Join(s.Units, ", ")))
	fmt.Fprintf(a.out, "Initiator: %s\n", dash(s.InitiatorID))
	fmt.Fprintf(a.out, "Commander: %s\n", dash(s.CommanderID))
	fmt.Fprintf(a.out, "Created:   %s\n", s.CreatedAt.Format("2006-01-02 15:04:05"))
	if !s.ClosedAt.IsZero() {
		fmt.Fprintf(a.out, "Closed:    %s\n", s.ClosedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Attach attaches a unit.
func (a *SituationAdapter) Attach(ctx context.Context, situationID, unitID string, asInitiator bool) error {
	s, err := a.service.AttachUnit(ctx, primary.AttachUnitRequest{SituationID: situationID, UnitID: unitID, AsInitiator: asInitiator})
	if err != nil {
		return err
	}
	a.printRoles(s)
	return nil
}

// Detach detaches a unit.
func (a *SituationAdapter) Detach(ctx context.Context, situationID, unitID string) error {
	s, err := a.service.DetachUnit(ctx, situationID, unitID)
	if err != nil {
		return err
	}
	a.printRoles(s)
	return nil
}

// SetCommander assigns command explicitly.
func (a *SituationAdapter) SetCommander(ctx context.Context, situationID, unitID string) error {
	s, err := a.service.SetCommander(ctx, situationID, unitID)
	if err != nil {
		return err
	}
	a.printRoles(s)
	return nil
}

// SetMetadata replaces a situation's metadata.
func (a *SituationAdapter) SetMetadata(ctx context.Context, situationID string, metadata map[string]string) error {
	s, err := a.service.SetMetadata(ctx, situationID, metadata)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s metadata: %s\n", s.ID, formatMetadata(s.Metadata))
	return nil
}

// Close closes a situation.
func (a *SituationAdapter) Close(ctx context.Context, situationID string) error {
	s, err := a.service.CloseSituation(ctx, situationID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Situation %s closed\n", s.ID)
	return nil
}

// Open reopens a situation.
func (a *SituationAdapter) Open(ctx context.Context, situationID string) error {
	s, err := a.service.OpenSituation(ctx, situationID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Situation %s reopened\n", s.ID)
	return nil
}

// Remove deletes a situation.
func (a *SituationAdapter) Remove(ctx context.Context, situationID string) error {
	if err := a.service.RemoveSituation(ctx, situationID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Removed situation %s\n", situationID)
	return nil
}
