package primary

import (
	"context"
	"time"
)

// UnitService defines the primary port for unit operations.
type UnitService interface {
	// CreateUnit creates a unit with an initial non-empty member list.
	CreateUnit(ctx context.Context, req CreateUnitRequest) (*Unit, error)

	// GetUnit retrieves a unit by ID.
	GetUnit(ctx context.Context, unitID string) (*Unit, error)

	// ListUnits lists units with optional filters.
	ListUnits(ctx context.Context, filters UnitFilters) ([]*Unit, error)

	// AddMember adds an unaffiliated operative to a unit.
	AddMember(ctx context.Context, unitID, name string) (*Unit, error)

	// RemoveMember removes an operative from a unit. Removing the last
	// member deletes the unit.
	RemoveMember(ctx context.Context, unitID, name string) (*RemoveMemberResponse, error)

	// SetLeadership sets the explicit leadership request and recomputes member statuses.
	SetLeadership(ctx context.Context, unitID string, leading bool) (*Unit, error)

	// RenameUnit changes a unit's marking.
	RenameUnit(ctx context.Context, unitID, marking string) (*Unit, error)

	// SetStatusCode sets a unit's free-text status code.
	SetStatusCode(ctx context.Context, unitID, code string) (*Unit, error)

	// AssignChannel points a unit at a channel.
	AssignChannel(ctx context.Context, unitID, channelID string) (*Unit, error)

	// ClearChannel clears a unit's channel pointer.
	ClearChannel(ctx context.Context, unitID string) (*Unit, error)

	// RemoveUnit detaches every member and deletes the unit.
	RemoveUnit(ctx context.Context, unitID string) error
}

// CreateUnitRequest contains parameters for creating a unit.
type CreateUnitRequest struct {
	Marking string
	Members []string
	Leading bool
}

// RemoveMemberResponse contains the result of removing a member.
type RemoveMemberResponse struct {
	Unit        *Unit // nil when the unit was deleted
	UnitDeleted bool
}

// Unit represents a unit at the port boundary.
type Unit struct {
	ID                  string
	Marking             string
	Members             []string
	Leading             bool
	LeadershipRequested bool
	SituationID         string
	ChannelID           string
	StatusCode          string
	CreatedAt           time.Time
}

// UnitFilters contains filter options for listing units.
type UnitFilters struct {
	SituationID string
}
