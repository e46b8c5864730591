package memory

import (
	"context"
	"strings"

	"github.com/example/dispatch/internal/apperr"
	corechannel "github.com/example/dispatch/internal/core/channel"
	"github.com/example/dispatch/internal/ports/secondary"
)

// ChannelRepository implements secondary.ChannelRepository in memory.
type ChannelRepository struct {
	t *table[secondary.ChannelRecord]
}

// NewChannelRepository creates an unseeded channel pool.
func NewChannelRepository() *ChannelRepository {
	return &ChannelRepository{t: newTable("channel", cloneChannel)}
}

func cloneChannel(c *secondary.ChannelRecord) *secondary.ChannelRecord {
	cc := *c
	return &cc
}

// Seed creates the pool once.
func (r *ChannelRepository) Seed(ctx context.Context, names []string) error {
	if err := corechannel.ValidatePool(names); err != nil {
		return apperr.Wrap(apperr.CodeInvalidArgument, "invalid channel pool", err)
	}

	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if len(r.t.rows) > 0 {
		return apperr.Conflict("channel pool already seeded")
	}
	for i, name := range names {
		id := corechannel.GenerateChannelID(i)
		r.t.rows[id] = &secondary.ChannelRecord{ID: id, Name: strings.TrimSpace(name)}
		r.t.order = append(r.t.order, id)
	}
	return nil
}

// GetByID retrieves a channel by its ID.
func (r *ChannelRepository) GetByID(ctx context.Context, id string) (*secondary.ChannelRecord, error) {
	return r.t.get(id)
}

// List retrieves every channel in pool order.
func (r *ChannelRepository) List(ctx context.Context) ([]*secondary.ChannelRecord, error) {
	return r.t.list(nil), nil
}

// SetBusy sets the situation pointer and busy flag together.
func (r *ChannelRepository) SetBusy(ctx context.Context, id, situationID string) error {
	_, err := r.t.mutate(id, func(c *secondary.ChannelRecord) error {
		c.SituationID = situationID
		c.Busy = situationID != ""
		return nil
	})
	return err
}

// Ensure ChannelRepository implements the interface
var _ secondary.ChannelRepository = (*ChannelRepository)(nil)
