package app

import (
	"context"
	"fmt"

	"github.com/example/dispatch/internal/ports/primary"
)

// ChannelServiceImpl implements the ChannelService interface.
type ChannelServiceImpl struct {
	c *Coordinator
}

// NewChannelService creates a new ChannelService on top of the coordinator.
func NewChannelService(c *Coordinator) *ChannelServiceImpl {
	return &ChannelServiceImpl{c: c}
}

// Seed creates the channel pool. It runs once at startup.
func (s *ChannelServiceImpl) Seed(ctx context.Context, names []string) error {
	c := s.c
	return c.run(ctx, "channel.seed", func(cs *changeSet) error {
		if err := c.channels.Seed(ctx, names); err != nil {
			return fmt.Errorf("failed to seed channels: %w", err)
		}
		channels, err := c.channels.List(ctx)
		if err != nil {
			return err
		}
		for _, ch := range channels {
			cs.created(kindChannel, ch.ID)
		}
		return nil
	})
}

// GetChannel retrieves a channel by ID.
func (s *ChannelServiceImpl) GetChannel(ctx context.Context, channelID string) (*primary.Channel, error) {
	record, err := s.c.channels.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return recordToChannel(record), nil
}

// ListChannels lists the whole pool in pool order.
func (s *ChannelServiceImpl) ListChannels(ctx context.Context) ([]*primary.Channel, error) {
	records, err := s.c.channels.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	channels := make([]*primary.Channel, len(records))
	for i, r := range records {
		channels[i] = recordToChannel(r)
	}
	return channels, nil
}

// Ensure ChannelServiceImpl implements the interface
var _ primary.ChannelService = (*ChannelServiceImpl)(nil)
