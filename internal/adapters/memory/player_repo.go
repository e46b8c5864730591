package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/example/dispatch/internal/apperr"
	coreplayer "github.com/example/dispatch/internal/core/player"
	"github.com/example/dispatch/internal/ports/secondary"
)

// PlayerRepository implements secondary.PlayerRepository in memory.
type PlayerRepository struct {
	t *table[secondary.PlayerRecord]
}

// NewPlayerRepository creates an empty operative registry.
func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{t: newTable("player", clonePlayer)}
}

func clonePlayer(p *secondary.PlayerRecord) *secondary.PlayerRecord {
	c := *p
	return &c
}

// Create persists a new operative.
func (r *PlayerRepository) Create(ctx context.Context, player *secondary.PlayerRecord) error {
	if strings.TrimSpace(player.Name) == "" {
		return apperr.InvalidArgument("player name is required")
	}
	return r.t.insert(coreplayer.NormalizeName(player.Name), player, nil)
}

// UpsertPosition creates or updates an operative from a position report.
func (r *PlayerRepository) UpsertPosition(ctx context.Context, name string, x, y float64, now time.Time) (*secondary.PlayerRecord, bool, error) {
	key := coreplayer.NormalizeName(name)
	if key == "" {
		return nil, false, apperr.InvalidArgument("player name is required")
	}

	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	row, ok := r.t.rows[key]
	created := !ok
	if created {
		row = &secondary.PlayerRecord{
			Name:   strings.TrimSpace(name),
			Status: string(coreplayer.InitialStatus()),
		}
		r.t.order = append(r.t.order, key)
	} else {
		row = clonePlayer(row)
	}
	row.X, row.Y = x, y
	row.LastUpdate = now
	row.LastActivity = now
	row.Away = false
	r.t.rows[key] = row

	return clonePlayer(row), created, nil
}

// GetByName retrieves an operative by case-insensitive name.
func (r *PlayerRepository) GetByName(ctx context.Context, name string) (*secondary.PlayerRecord, error) {
	return r.t.get(coreplayer.NormalizeName(name))
}

// List retrieves operatives matching the given filters, sorted by name.
func (r *PlayerRepository) List(ctx context.Context, filters secondary.PlayerFilters) ([]*secondary.PlayerRecord, error) {
	records := r.t.list(func(p *secondary.PlayerRecord) bool {
		if filters.UnitID != "" && p.UnitID != filters.UnitID {
			return false
		}
		if filters.Alive || filters.AvailableForUnit {
			alive := coreplayer.IsAlive(coreplayer.AliveContext{
				X: p.X, Y: p.Y, LastUpdate: p.LastUpdate, Now: filters.Now, TTL: filters.TTL,
			})
			if !alive {
				return false
			}
		}
		if filters.AvailableForUnit && !coreplayer.IsAvailableForUnit(coreplayer.Status(p.Status), p.UnitID) {
			return false
		}
		return true
	})
	slices.SortFunc(records, func(a, b *secondary.PlayerRecord) int {
		return strings.Compare(coreplayer.NormalizeName(a.Name), coreplayer.NormalizeName(b.Name))
	})
	return records, nil
}

// SetStatus updates an operative's status.
func (r *PlayerRepository) SetStatus(ctx context.Context, name, status string) error {
	_, err := r.t.mutate(coreplayer.NormalizeName(name), func(p *secondary.PlayerRecord) error {
		p.Status = status
		return nil
	})
	return err
}

// SetRole updates an operative's free-text role.
func (r *PlayerRepository) SetRole(ctx context.Context, name, role string) error {
	_, err := r.t.mutate(coreplayer.NormalizeName(name), func(p *secondary.PlayerRecord) error {
		p.Role = role
		return nil
	})
	return err
}

// SetRank updates an operative's rank.
func (r *PlayerRepository) SetRank(ctx context.Context, name string, rank int) error {
	_, err := r.t.mutate(coreplayer.NormalizeName(name), func(p *secondary.PlayerRecord) error {
		p.Rank = rank
		return nil
	})
	return err
}

// AssignMembership points an operative at a unit.
func (r *PlayerRepository) AssignMembership(ctx context.Context, name, unitID string) error {
	_, err := r.t.mutate(coreplayer.NormalizeName(name), func(p *secondary.PlayerRecord) error {
		if p.UnitID != "" && p.UnitID != unitID {
			return apperr.Conflict("player %s already belongs to unit %s", p.Name, p.UnitID)
		}
		p.UnitID = unitID
		return nil
	})
	return err
}

// ClearMembership nulls an operative's unit pointer.
func (r *PlayerRepository) ClearMembership(ctx context.Context, name string) error {
	_, err := r.t.mutate(coreplayer.NormalizeName(name), func(p *secondary.PlayerRecord) error {
		p.UnitID = ""
		return nil
	})
	return err
}

// MarkAway sets the away flag on idle operatives. Sentinel-position
// operatives have no activity feed and are never marked.
func (r *PlayerRepository) MarkAway(ctx context.Context, now time.Time, awayAfter time.Duration) ([]string, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	var marked []string
	for _, key := range r.t.order {
		row := r.t.rows[key]
		if row.Away || coreplayer.IsSentinel(row.X, row.Y) || !coreplayer.IsIdle(row.LastActivity, now, awayAfter) {
			continue
		}
		next := clonePlayer(row)
		next.Away = true
		r.t.rows[key] = next
		marked = append(marked, next.Name)
	}
	return marked, nil
}

// Delete removes an operative record.
func (r *PlayerRepository) Delete(ctx context.Context, name string) error {
	return r.t.remove(coreplayer.NormalizeName(name))
}

// Ensure PlayerRepository implements the interface
var _ secondary.PlayerRepository = (*PlayerRepository)(nil)
