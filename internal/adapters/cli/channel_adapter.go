package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/dispatch/internal/ports/primary"
)

// ChannelAdapter is a thin adapter that translates CLI operations to ChannelService calls.
type ChannelAdapter struct {
	service primary.ChannelService
	out     io.Writer
}

// NewChannelAdapter creates a new ChannelAdapter with the given service.
func NewChannelAdapter(service primary.ChannelService, out io.Writer) *ChannelAdapter {
	return &ChannelAdapter{
		service: service,
		out:     out,
	}
}

func busyLabel(c *primary.Channel) (string, string) {
	if c.Busy {
		return color.New(color.FgRed).Sprint("busy"), "busy"
	}
	return color.New(color.FgGreen).Sprint("free"), "free"
}

// List lists the channel pool.
func (a *ChannelAdapter) List(ctx context.Context) error {
	channels, err := a.service.ListChannels(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\n%-6s %-10s %-5s %s\n", "ID", "NAME", "STATE", "SITUATION")
	fmt.Fprintln(a.out, rule)
	for _, c := range channels {
		label, plain := busyLabel(c)
		fmt.Fprintf(a.out, "%-6s %-10s %s %s\n", c.ID, c.Name, pad(label, plain, 5), dash(c.SituationID))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Show displays one channel.
func (a *ChannelAdapter) Show(ctx context.Context, channelID string) error {
	c, err := a.service.GetChannel(ctx, channelID)
	if err != nil {
		return err
	}
	label, _ := busyLabel(c)
	fmt.Fprintf(a.out, "%s %s %s %s\n", c.ID, c.Name, label, dash(c.SituationID))
	return nil
}
