package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/dispatch/internal/ports/primary"
)

// PlayerAdapter is a thin adapter that translates CLI operations to PlayerService calls.
type PlayerAdapter struct {
	service primary.PlayerService
	out     io.Writer
}

// NewPlayerAdapter creates a new PlayerAdapter with the given service.
func NewPlayerAdapter(service primary.PlayerService, out io.Writer) *PlayerAdapter {
	return &PlayerAdapter{
		service: service,
		out:     out,
	}
}

// Report records a position report.
func (a *PlayerAdapter) Report(ctx context.Context, name string, x, y float64) error {
	p, err := a.service.ReportPosition(ctx, primary.ReportPositionRequest{Name: name, X: x, Y: y})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s at %s\n", p.Name, formatPosition(p))
	return nil
}

// Create creates an operative administratively.
func (a *PlayerAdapter) Create(ctx context.Context, name, rank, role string) error {
	p, err := a.service.CreatePlayer(ctx, primary.CreatePlayerRequest{Name: name, Rank: rank, Role: role})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Created player %s (%s)\n", p.Name, p.Rank)
	return nil
}

// List lists operatives.
func (a *PlayerAdapter) List(ctx context.Context, filters primary.PlayerFilters) error {
	players, err := a.service.ListPlayers(ctx, filters)
	if err != nil {
		return err
	}

	if len(players) == 0 {
		fmt.Fprintln(a.out, "No players found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-16s %-11s %-11s %-10s %-18s %s\n", "NAME", "STATUS", "RANK", "UNIT", "POSITION", "FLAGS")
	fmt.Fprintln(a.out, rule)
	for _, p := range players {
		flags := ""
		if !p.Alive {
			flags += " stale"
		}
		if p.Away {
			flags += " away"
		}
		fmt.Fprintf(a.out, "%-16s %s %-11s %-10s %-18s%s\n",
			p.Name, pad(colorStatus(p.Status), p.Status, 11), p.Rank, dash(p.UnitID), formatPosition(p), flags)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Show displays one operative.
func (a *PlayerAdapter) Show(ctx context.Context, name string) error {
	p, err := a.service.GetPlayer(ctx, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nPlayer:   %s\n", p.Name)
	fmt.Fprintf(a.out, "Status:   %s\n", colorStatus(p.Status))
	fmt.Fprintf(a.out, "Rank:     %s\n", p.Rank)
	if p.Role != "" {
		fmt.Fprintf(a.out, "Role:     %s\n", p.Role)
	}
	fmt.Fprintf(a.out, "Unit:     %s\n", dash(p.UnitID))
	fmt.Fprintf(a.out, "Position: %s\n", formatPosition(p))
	fmt.Fprintf(a.out, "Alive:    %v\n", p.Alive)
	fmt.Fprintf(a.out, "Away:     %v\n", p.Away)
	if !p.Sentinel {
		fmt.Fprintf(a.out, "Updated:  %s\n", p.LastUpdate.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintln(a.out)
	return nil
}

// SetStatus sets an operative's status.
func (a *PlayerAdapter) SetStatus(ctx context.Context, name, status string) error {
	p, err := a.service.SetStatus(ctx, name, status)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s is now %s\n", p.Name, colorStatus(p.Status))
	return nil
}

// SetRole sets an operative's role.
func (a *PlayerAdapter) SetRole(ctx context.Context, name, role string) error {
	p, err := a.service.SetRole(ctx, name, role)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s role set to %q\n", p.Name, p.Role)
	return nil
}

// SetRank sets an operative's rank.
func (a *PlayerAdapter) SetRank(ctx context.Context, name, rank string) error {
	p, err := a.service.SetRank(ctx, name, rank)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s rank set to %s (%s)\n", p.Name, p.Rank, colorStatus(p.Status))
	return nil
}

// Remove deletes an operative.
func (a *PlayerAdapter) Remove(ctx context.Context, name string) error {
	if err := a.service.RemovePlayer(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Removed player %s\n", name)
	return nil
}

// MarkAway runs the idle sweep.
func (a *PlayerAdapter) MarkAway(ctx context.Context) error {
	names, err := a.service.MarkIdleAway(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(a.out, "No idle players")
		return nil
	}
	for _, n := range names {
		fmt.Fprintf(a.out, "✓ %s marked away\n", n)
	}
	return nil
}
