package primary

import "context"

// ChannelService defines the primary port for channel queries.
// Channel binding is driven by situation metadata, never set directly.
type ChannelService interface {
	// GetChannel retrieves a channel by ID.
	GetChannel(ctx context.Context, channelID string) (*Channel, error)

	// ListChannels lists the whole pool.
	ListChannels(ctx context.Context) ([]*Channel, error)
}

// Channel represents a radio channel at the port boundary.
type Channel struct {
	ID          string
	Name        string
	Busy        bool
	SituationID string
}
