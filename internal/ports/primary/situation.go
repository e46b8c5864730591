package primary

import (
	"context"
	"time"
)

// SituationService defines the primary port for situation operations.
type SituationService interface {
	// CreateSituation creates an active situation with no attached units.
	CreateSituation(ctx context.Context, req CreateSituationRequest) (*Situation, error)

	// GetSituation retrieves a situation by ID.
	GetSituation(ctx context.Context, situationID string) (*Situation, error)

	// ListSituations lists situations with optional filters.
	ListSituations(ctx context.Context, filters SituationFilters) ([]*Situation, error)

	// AttachUnit attaches a unit, detaching it from any other situation first,
	// then recomputes initiator and commander.
	AttachUnit(ctx context.Context, req AttachUnitRequest) (*Situation, error)

	// DetachUnit detaches a unit and reverts roles.
	DetachUnit(ctx context.Context, situationID, unitID string) (*Situation, error)

	// SetCommander explicitly assigns command to an attached unit.
	SetCommander(ctx context.Context, situationID, unitID string) (*Situation, error)

	// SetMetadata replaces a situation's metadata and re-binds channels.
	SetMetadata(ctx context.Context, situationID string, metadata map[string]string) (*Situation, error)

	// CloseSituation deactivates a situation and detaches every unit.
	CloseSituation(ctx context.Context, situationID string) (*Situation, error)

	// OpenSituation reactivates a situation. Nothing is re-attached.
	OpenSituation(ctx context.Context, situationID string) (*Situation, error)

	// RemoveSituation detaches everything and deletes the situation.
	RemoveSituation(ctx context.Context, situationID string) error
}

// CreateSituationRequest contains parameters for creating a situation.
type CreateSituationRequest struct {
	Type     string
	Metadata map[string]string
}

// AttachUnitRequest contains parameters for attaching a unit.
type AttachUnitRequest struct {
	SituationID string
	UnitID      string
	AsInitiator bool
}

// Situation represents a situation at the port boundary.
type Situation struct {
	ID          string
	Type        string
	Metadata    map[string]string
	Units       []string
	InitiatorID string
	CommanderID string
	Active      bool
	CreatedAt   time.Time
	ClosedAt    time.Time
}

// SituationFilters contains filter options for listing situations.
type SituationFilters struct {
	ActiveOnly bool
}
