package memory

import (
	"context"
	"maps"
	"slices"
	"sync/atomic"
	"time"

	"github.com/example/dispatch/internal/apperr"
	coresituation "github.com/example/dispatch/internal/core/situation"
	"github.com/example/dispatch/internal/ports/secondary"
)

// SituationRepository implements secondary.SituationRepository in memory.
type SituationRepository struct {
	t      *table[secondary.SituationRecord]
	issued atomic.Int64
}

// NewSituationRepository creates an empty situation registry.
func NewSituationRepository() *SituationRepository {
	return &SituationRepository{t: newTable("situation", cloneSituation)}
}

func cloneSituation(s *secondary.SituationRecord) *secondary.SituationRecord {
	c := *s
	c.Units = slices.Clone(s.Units)
	c.Metadata = maps.Clone(s.Metadata)
	if c.Metadata == nil {
		c.Metadata = map[string]string{}
	}
	return &c
}

// NextID issues a fresh situation ID.
func (r *SituationRepository) NextID(ctx context.Context) (string, error) {
	n := r.issued.Add(1)
	return coresituation.GenerateSituationID(int(n - 1)), nil
}

// Create persists a new situation.
func (r *SituationRepository) Create(ctx context.Context, situation *secondary.SituationRecord) error {
	return r.t.insert(situation.ID, situation, nil)
}

// GetByID retrieves a situation by its ID.
func (r *SituationRepository) GetByID(ctx context.Context, id string) (*secondary.SituationRecord, error) {
	return r.t.get(id)
}

// List retrieves situations matching the given filters, in creation order.
func (r *SituationRepository) List(ctx context.Context, filters secondary.SituationFilters) ([]*secondary.SituationRecord, error) {
	return r.t.list(func(s *secondary.SituationRecord) bool {
		return !filters.ActiveOnly || s.Active
	}), nil
}

// AttachUnit adds a unit to the attachment set.
func (r *SituationRepository) AttachUnit(ctx context.Context, id, unitID string) (bool, error) {
	var wasEmpty bool
	_, err := r.t.mutate(id, func(s *secondary.SituationRecord) error {
		if slices.Contains(s.Units, unitID) {
			return apperr.Conflict("unit %s is already attached to %s", unitID, id)
		}
		wasEmpty = len(s.Units) == 0
		s.Units = append(s.Units, unitID)
		return nil
	})
	return wasEmpty, err
}

// DetachUnit removes a unit from the attachment set.
func (r *SituationRepository) DetachUnit(ctx context.Context, id, unitID string) error {
	_, err := r.t.mutate(id, func(s *secondary.SituationRecord) error {
		i := slices.Index(s.Units, unitID)
		if i < 0 {
			return apperr.NotFound("unit %s is not attached to %s", unitID, id)
		}
		s.Units = slices.Delete(s.Units, i, i+1)
		return nil
	})
	return err
}

// SetRoles stores initiator and commander together.
func (r *SituationRepository) SetRoles(ctx context.Context, id, initiatorID, commanderID string) error {
	_, err := r.t.mutate(id, func(s *secondary.SituationRecord) error {
		for _, role := range []string{initiatorID, commanderID} {
			if role != "" && !slices.Contains(s.Units, role) {
				return apperr.Internal("role unit %s is not attached to %s", role, id)
			}
		}
		s.InitiatorID = initiatorID
		s.CommanderID = commanderID
		return nil
	})
	return err
}

// SetActive opens or closes a situation.
func (r *SituationRepository) SetActive(ctx context.Context, id string, active bool, now time.Time) error {
	_, err := r.t.mutate(id, func(s *secondary.SituationRecord) error {
		s.Active = active
		if active {
			s.ClosedAt = time.Time{}
		} else {
			s.ClosedAt = now
		}
		return nil
	})
	return err
}

// SetMetadata replaces the metadata map.
func (r *SituationRepository) SetMetadata(ctx context.Context, id string, metadata map[string]string) error {
	_, err := r.t.mutate(id, func(s *secondary.SituationRecord) error {
		s.Metadata = maps.Clone(metadata)
		return nil
	})
	return err
}

// Delete removes a situation record.
func (r *SituationRepository) Delete(ctx context.Context, id string) error {
	return r.t.remove(id)
}

// Ensure SituationRepository implements the interface
var _ secondary.SituationRepository = (*SituationRepository)(nil)
