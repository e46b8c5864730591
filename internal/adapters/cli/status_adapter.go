package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/dispatch/internal/ports/primary"
)

// StatusAdapter prints a one-screen summary across every registry.
type StatusAdapter struct {
	players    primary.PlayerService
	units      primary.UnitService
	situations primary.SituationService
	channels   primary.ChannelService
	out        io.Writer
}

// NewStatusAdapter creates a new StatusAdapter.
func NewStatusAdapter(players primary.PlayerService, units primary.UnitService, situations primary.SituationService, channels primary.ChannelService, out io.Writer) *StatusAdapter {
	return &StatusAdapter{
		players:    players,
		units:      units,
		situations: situations,
		channels:   channels,
		out:        out,
	}
}

// Show prints the summary.
func (a *StatusAdapter) Show(ctx context.Context) error {
	players, err := a.players.ListPlayers(ctx, primary.PlayerFilters{})
	if err != nil {
		return err
	}
	units, err := a.units.ListUnits(ctx, primary.UnitFilters{})
	if err != nil {
		return err
	}
	situations, err := a.situations.ListSituations(ctx, primary.SituationFilters{})
	if err != nil {
		return err
	}
	channels, err := a.channels.ListChannels(ctx)
	if err != nil {
		return err
	}

	alive, available := 0, 0
	for _, p := range players {
		if p.Alive {
			alive++
			if p.UnitID == "" && (p.Status == "unassigned" || p.Status == "on-duty") {
				available++
			}
		}
	}
	leading, attached := 0, 0
	for _, u := range units {
		if u.Leading {
			leading++
		}
		if u.SituationID != "" {
			attached++
		}
	}
	active := 0
	for _, s := range situations {
		if s.Active {
			active++
		}
	}
	busy := 0
	for _, c := range channels {
		if c.Busy {
			busy++
		}
	}

	bold := color.New(color.Bold)
	fmt.Fprintln(a.out)
	bold.Fprintln(a.out, "Dispatch status")
	fmt.Fprintln(a.out, rule)
	fmt.Fprintf(a.out, "Players:    %d total, %d alive, %d available\n", len(players), alive, available)
	fmt.Fprintf(a.out, "Units:      %d total, %d leading, %d attached\n", len(units), leading, attached)
	fmt.Fprintf(a.out, "Situations: %d total, %d active\n", len(situations), active)
	fmt.Fprintf(a.out, "Channels:   %d total, %d busy\n", len(channels), busy)
	fmt.Fprintln(a.out)
	return nil
}
