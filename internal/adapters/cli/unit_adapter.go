package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/dispatch/internal/ports/primary"
)

// UnitAdapter is a thin adapter that translates CLI operations to UnitService calls.
type UnitAdapter struct {
	service primary.UnitService
	out     io.Writer
}

// NewUnitAdapter creates a new UnitAdapter with the given service.
func NewUnitAdapter(service primary.UnitService, out io.Writer) *UnitAdapter {
	return &UnitAdapter{
		service: service,
		out:     out,
	}
}

func leadMark(u *primary.Unit) string {
	if u.Leading {
		return " (lead)"
	}
	return ""
}

// Create creates a unit.
func (a *UnitAdapter) Create(ctx context.Context, marking string, members []string, leading bool) error {
	u, err := a.service.CreateUnit(ctx, primary.CreateUnitRequest{Marking: marking, Members: members, Leading: leading})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Created unit %s [%s]%s with %s\n", u.ID, u.Marking, leadMark(u), strings.Join(u.Members, ", "))
	return nil
}

// List lists units, optionally only those attached to a situation.
func (a *UnitAdapter) List(ctx context.Context, situationID string) error {
	units, err := a.service.ListUnits(ctx, primary.UnitFilters{SituationID: situationID})
	if err != nil {
		return err
	}

	if len(units) == 0 {
		fmt.Fprintln(a.out, "No units found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-9s %-5s %-9s %-7s %-6s %s\n", "ID", "MARKING", "LEAD", "SITUATION", "CHANNEL", "CODE", "MEMBERS")
	fmt.Fprintln(a.out, rule)
	for _, u := range units {
		lead := ""
		if u.Leading {
			lead = "yes"
		}
		fmt.Fprintf(a.out, "%-10s %-9s %-5s %-9s %-7s %-6s %s\n",
			u.ID, u.Marking, lead, dash(u.SituationID), dash(u.ChannelID), dash(u.StatusCode), strings.Join(u.Members, ", "))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Show displays one unit.
func (a *UnitAdapter) Show(ctx context.Context, unitID string) error {
	u, err := a.service.GetUnit(ctx, unitID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nUnit:      %s [%s]\n", u.ID, u.Marking)
	fmt.Fprintf(a.out, "Leading:   %v (requested: %v)\n", u.Leading, u.LeadershipRequested)
	fmt.Fprintf(a.out, "Members:   %s\n", strings.Join(u.Members, ", "))
	fmt.Fprintf(a.out, "Situation: %s\n", dash(u.SituationID))
	fmt.Fprintf(a.out, "Channel:   %s\n", dash(u.ChannelID))
	fmt.Fprintf(a.out, "Code:      %s\n", dash(u.StatusCode))
	fmt.Fprintln(a.out)
	return nil
}

// AddMember adds an operative to a unit.
func (a *UnitAdapter) AddMember(ctx context.Context, unitID, name string) error {
	u, err := a.service.AddMember(ctx, unitID, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s joined %s%s\n", name, u.ID, leadMark(u))
	return nil
}

// RemoveMember removes an operative from a unit.
func (a *UnitAdapter) RemoveMember(ctx context.Context, unitID, name string) error {
	resp, err := a.service.RemoveMember(ctx, unitID, name)
	if err != nil {
		return err
	}
	if resp.UnitDeleted {
		fmt.Fprintf(a.out, "✓ %s left %s; unit disbanded\n", name, unitID)
		return nil
	}
	fmt.Fprintf(a.out, "✓ %s left %s\n", name, unitID)
	return nil
}

// SetLeadership sets the explicit leadership request.
func (a *UnitAdapter) SetLeadership(ctx context.Context, unitID string, leading bool) error {
	u, err := a.service.SetLeadership(ctx, unitID, leading)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s leading=%v\n", u.ID, u.Leading)
	return nil
}

// Rename changes a unit's marking.
func (a *UnitAdapter) Rename(ctx context.Context, unitID, marking string) error {
	u, err := a.service.RenameUnit(ctx, unitID, marking)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s renamed to [%s]\n", u.ID, u.Marking)
	return nil
}

// SetStatusCode sets a unit's status code.
func (a *UnitAdapter) SetStatusCode(ctx context.Context, unitID, code string) error {
	u, err := a.service.SetStatusCode(ctx, unitID, code)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s status code %s\n", u.ID, dash(u.StatusCode))
	return nil
}

// AssignChannel points a unit at a channel.
func (a *UnitAdapter) AssignChannel(ctx context.Context, unitID, channelID string) error {
	u, err := a.service.AssignChannel(ctx, unitID, channelID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s on %s\n", u.ID, u.ChannelID)
	return nil
}

// ClearChannel clears a unit's channel.
func (a *UnitAdapter) ClearChannel(ctx context.Context, unitID string) error {
	u, err := a.service.ClearChannel(ctx, unitID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s channel cleared\n", u.ID)
	return nil
}

// Remove deletes a unit.
func (a *UnitAdapter) Remove(ctx context.Context, unitID string) error {
	if err := a.service.RemoveUnit(ctx, unitID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Removed unit %s\n", unitID)
	return nil
}
