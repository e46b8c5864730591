// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"
	"time"
)

// PlayerService defines the primary port for operative operations.
type PlayerService interface {
	// ReportPosition creates or updates an operative from the simulation feed.
	// It never fails for a non-empty name.
	ReportPosition(ctx context.Context, req ReportPositionRequest) (*Player, error)

	// CreatePlayer creates an operative administratively, at the sentinel position.
	CreatePlayer(ctx context.Context, req CreatePlayerRequest) (*Player, error)

	// GetPlayer retrieves an operative by name.
	GetPlayer(ctx context.Context, name string) (*Player, error)

	// ListPlayers lists operatives with optional filters.
	ListPlayers(ctx context.Context, filters PlayerFilters) ([]*Player, error)

	// SetStatus sets an operative's status.
	SetStatus(ctx context.Context, name, status string) (*Player, error)

	// SetRole sets an operative's free-text role.
	SetRole(ctx context.Context, name, role string) (*Player, error)

	// SetRank sets an operative's rank. If the operative belongs to a unit,
	// unit leadership is recomputed, and if that unit is attached to a
	// situation the promotion scan runs again.
	SetRank(ctx context.Context, name, rank string) (*Player, error)

	// RemovePlayer deletes an operative, leaving its unit first.
	RemovePlayer(ctx context.Context, name string) error

	// MarkIdleAway flags operatives whose last activity is too old.
	MarkIdleAway(ctx context.Context) ([]string, error)
}

// ReportPositionRequest contains a position report from the simulation feed.
type ReportPositionRequest struct {
	Name string
	X    float64
	Y    float64
}

// CreatePlayerRequest contains parameters for creating an operative.
type CreatePlayerRequest struct {
	Name string
	Rank string // optional
	Role string // optional
}

// Player represents an operative at the port boundary.
type Player struct {
	Name         string
	X            float64
	Y            float64
	Sentinel     bool
	Status       string
	Rank         string
	Role         string
	UnitID       string
	Away         bool
	Alive        bool
	LastUpdate   time.Time
	LastActivity time.Time
}

// PlayerFilters contains filter options for listing operatives.
type PlayerFilters struct {
	AliveOnly     bool
	AvailableOnly bool // alive, unassigned or on-duty, no unit
	UnitID        string
}
