// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"
)

// PlayerRepository defines the secondary port for the operative registry.
// Every method applies to a single record atomically: it either fully
// applies or returns an error before any field changes.
type PlayerRepository interface {
	// Create persists a new operative. Conflict if the name is taken.
	Create(ctx context.Context, player *PlayerRecord) error

	// UpsertPosition creates or updates an operative from a position report,
	// refreshing both timestamps and clearing the away flag.
	// Returns the stored record and whether it was newly created.
	UpsertPosition(ctx context.Context, name string, x, y float64, now time.Time) (*PlayerRecord, bool, error)

	// GetByName retrieves an operative by case-insensitive name.
	GetByName(ctx context.Context, name string) (*PlayerRecord, error)

	// List retrieves operatives matching the given filters, sorted by name.
	List(ctx context.Context, filters PlayerFilters) ([]*PlayerRecord, error)

	// SetStatus updates an operative's status.
	SetStatus(ctx context.Context, name, status string) error

	// SetRole updates an operative's free-text role.
	SetRole(ctx context.Context, name, role string) error

	// SetRank updates an operative's rank.
	SetRank(ctx context.Context, name string, rank int) error

	// AssignMembership points an operative at a unit without touching status.
	// Conflict if the operative already belongs to a different unit.
	AssignMembership(ctx context.Context, name, unitID string) error

	// ClearMembership nulls an operative's unit pointer without touching status.
	ClearMembership(ctx context.Context, name string) error

	// MarkAway sets the away flag on operatives whose last activity is more
	// than awayAfter before now. Returns the names newly marked.
	MarkAway(ctx context.Context, now time.Time, awayAfter time.Duration) ([]string, error)

	// Delete removes an operative record.
	Delete(ctx context.Context, name string) error
}

// PlayerRecord represents an operative as held by the registry.
type PlayerRecord struct {
	Name         string // display name; lookups ignore case
	X            float64
	Y            float64
	Status       string
	Rank         int
	Role         string
	UnitID       string // empty means no membership
	Away         bool
	LastUpdate   time.Time
	LastActivity time.Time
}

// PlayerFilters contains filter options for listing operatives.
// Alive and AvailableForUnit are evaluated at Now against TTL.
type PlayerFilters struct {
	Alive            bool
	AvailableForUnit bool
	UnitID           string
	Now              time.Time
	TTL              time.Duration
}

// UnitRepository defines the secondary port for the unit registry.
type UnitRepository interface {
	// NextID issues a fresh unit ID. IDs are never reused.
	NextID(ctx context.Context) (string, error)

	// Create persists a new unit. Conflict if the marking is in use.
	Create(ctx context.Context, unit *UnitRecord) error

	// GetByID retrieves a unit by its ID.
	GetByID(ctx context.Context, id string) (*UnitRecord, error)

	// List retrieves units matching the given filters, in creation order.
	List(ctx context.Context, filters UnitFilters) ([]*UnitRecord, error)

	// MarkingInUse reports whether another live unit uses the marking.
	MarkingInUse(ctx context.Context, marking, exceptID string) (bool, error)

	// AddMember appends a member name. Conflict if already present.
	AddMember(ctx context.Context, id, name string) error

	// RemoveMember drops a member name and returns how many remain.
	RemoveMember(ctx context.Context, id, name string) (int, error)

	// SetLeadership stores the leadership flag and the explicit request behind it.
	SetLeadership(ctx context.Context, id string, leading, requested bool) error

	// Rename changes the marking. Conflict if the marking is in use.
	Rename(ctx context.Context, id, marking string) error

	// SetStatusCode stores the free-text status code.
	SetStatusCode(ctx context.Context, id, code string) error

	// AttachToSituation sets the situation pointer.
	AttachToSituation(ctx context.Context, id, situationID string) error

	// DetachFromSituation clears the situation pointer.
	DetachFromSituation(ctx context.Context, id string) error

	// AssignChannel sets the channel pointer.
	AssignChannel(ctx context.Context, id, channelID string) error

	// ClearChannel clears the channel pointer.
	ClearChannel(ctx context.Context, id string) error

	// Delete removes a unit record.
	Delete(ctx context.Context, id string) error
}

// UnitRecord represents a unit as held by the registry.
type UnitRecord struct {
	ID                  string
	Marking             string
	Members             []string // member names in join order
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
	ChannelID   string
}

// SituationRepository defines the secondary port for the situation registry.
type SituationRepository interface {
	// NextID issues a fresh situation ID. IDs are never reused.
	NextID(ctx context.Context) (string, error)

	// Create persists a new situation.
	Create(ctx context.Context, situation *SituationRecord) error

	// GetByID retrieves a situation by its ID.
	GetByID(ctx context.Context, id string) (*SituationRecord, error)

	// List retrieves situations matching the given filters, in creation order.
	List(ctx context.Context, filters SituationFilters) ([]*SituationRecord, error)

	// AttachUnit adds a unit to the attachment set.
	// Returns whether the set was empty before the call.
	AttachUnit(ctx context.Context, id, unitID string) (bool, error)

	// DetachUnit removes a unit from the attachment set.
	DetachUnit(ctx context.Context, id, unitID string) error

	// SetRoles stores initiator and commander together.
	// Internal error if either is set but not attached.
	SetRoles(ctx context.Context, id, initiatorID, commanderID string) error

	// SetActive opens or closes a situation.
	SetActive(ctx context.Context, id string, active bool, now time.Time) error

	// SetMetadata replaces the metadata map.
	SetMetadata(ctx context.Context, id string, metadata map[string]string) error

	// Delete removes a situation record.
	Delete(ctx context.Context, id string) error
}

// SituationRecord represents a situation as held by the registry.
type SituationRecord struct {
	ID          string
	Type        string
	Metadata    map[string]string
	Units       []string // attached unit IDs in attachment order
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

// ChannelRepository defines the secondary port for the fixed channel pool.
type ChannelRepository interface {
	// Seed creates the pool once. Conflict if already seeded.
	Seed(ctx context.Context, names []string) error

	// GetByID retrieves a channel by its ID.
	GetByID(ctx context.Context, id string) (*ChannelRecord, error)

	// List retrieves every channel in pool order.
	List(ctx context.Context) ([]*ChannelRecord, error)

	// SetBusy sets the situation pointer and busy flag together.
	// An empty situationID frees the channel.
	SetBusy(ctx context.Context, id, situationID string) error
}

// ChannelRecord represents a radio channel as held by the registry.
type ChannelRecord struct {
	ID          string
	Name        string
	Busy        bool
	SituationID string
}

// Clock supplies the current time for staleness checks.
type Clock interface {
	Now() time.Time
}
