package app

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	coresituation "github.com/example/dispatch/internal/core/situation"
	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/ports/secondary"
)

// SituationServiceImpl implements the SituationService interface.
type SituationServiceImpl struct {
	c *Coordinator
}

// NewSituationService creates a new SituationService on top of the coordinator.
func NewSituationService(c *Coordinator) *SituationServiceImpl {
	return &SituationServiceImpl{c: c}
}

// CreateSituation creates an active situation with no attached units.
func (s *SituationServiceImpl) CreateSituation(ctx context.Context, req primary.CreateSituationRequest) (*primary.Situation, error) {
	c := s.c
	guard := coresituation.CanCreateSituation(req.Type)
	if !guard.Allowed {
		return nil, guard.Error()
	}

	var situation *primary.Situation
	err := c.run(ctx, "situation.create", func(cs *changeSet) error {
		id, err := c.situations.NextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate situation ID: %w", err)
		}
		record := &secondary.SituationRecord{
			ID:        id,
			Type:      strings.TrimSpace(req.Type),
			Metadata:  maps.Clone(req.Metadata),
			Active:    true,
			CreatedAt: c.clock.Now(),
		}
		if record.Metadata == nil {
			record.Metadata = map[string]string{}
		}
		if err := c.situations.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to create situation: %w", err)
		}
		cs.created(kindSituation, id)

		if err := c.syncChannels(ctx, cs); err != nil {
			return err
		}
		created, err := c.situations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		situation = recordToSituation(created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return situation, nil
}

// GetSituation retrieves a situation by ID.
func (s *SituationServiceImpl) GetSituation(ctx context.Context, situationID string) (*primary.Situation, error) {
	record, err := s.c.situations.GetByID(ctx, situationID)
	if err != nil {
		return nil, err
	}
	return recordToSituation(record), nil
}

// ListSituations lists situations with optional filters.
func (s *SituationServiceImpl) ListSituations(ctx context.Context, filters primary.SituationFilters) ([]*primary.Situation, error) {
	records, err := s.c.situations.List(ctx, secondary.SituationFilters{ActiveOnly: filters.ActiveOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to list situations: %w", err)
	}
	situations := make([]*primary.Situation, len(records))
	for i, r := range records {
		situations[i] = recordToSituation(r)
	}
	return situations, nil
}

// AttachUnit attaches a unit, leaving any previous situation first.
func (s *SituationServiceImpl) AttachUnit(ctx context.Context, req primary.AttachUnitRequest) (*primary.Situation, error) {
	c := s.c
	return s.update(ctx, "situation.attach", req.SituationID, func(cs *changeSet, sit *secondary.SituationRecord) error {
		return c.attachUnit(ctx, cs, sit.ID, req.UnitID, req.AsInitiator)
	})
}

// DetachUnit detaches a unit and reverts roles.
func (s *SituationServiceImpl) DetachUnit(ctx context.Context, situationID, unitID string) (*primary.Situation, error) {
	c := s.c
	return s.update(ctx, "situation.detach", situationID, func(cs *changeSet, sit *secondary.SituationRecord) error {
		guard := coresituation.CanDetachUnit(coresituation.DetachContext{
			SituationID: sit.ID,
			UnitID:      unitID,
			Attached:    sit.Units,
		})
		if !guard.Allowed {
			return guard.Error()
		}
		return c.detachUnit(ctx, cs, sit.ID, unitID)
	})
}

// SetCommander assigns command to an attached unit.
func (s *SituationServiceImpl) SetCommander(ctx context.Context, situationID, unitID string) (*primary.Situation, error) {
	c := s.c
	return s.update(ctx, "situation.commander", situationID, func(cs *changeSet, sit *secondary.SituationRecord) error {
		guard := coresituation.CanSetCommander(coresituation.CommanderContext{
			SituationID: sit.ID,
			UnitID:      unitID,
			Attached:    sit.Units,
		})
		if !guard.Allowed {
			return guard.Error()
		}
		if sit.CommanderID == unitID {
			return nil
		}
		if err := c.situations.SetRoles(ctx, sit.ID, sit.InitiatorID, unitID); err != nil {
			return err
		}
		cs.touch(kindSituation, sit.ID, "roles")
		return nil
	})
}

// SetMetadata replaces a situation's metadata and re-binds channels.
func (s *SituationServiceImpl) SetMetadata(ctx context.Context, situationID string, metadata map[string]string) (*primary.Situation, error) {
	c := s.c
	return s.update(ctx, "situation.metadata", situationID, func(cs *changeSet, sit *secondary.SituationRecord) error {
		if metadata == nil {
			metadata = map[string]string{}
		}
		if err := c.situations.SetMetadata(ctx, sit.ID, metadata); err != nil {
			return err
		}
		cs.touch(kindSituation, sit.ID, "metadata")
		return c.syncChannels(ctx, cs)
	})
}

// CloseSituation deactivates a situation after detaching every unit.
// The record is kept for listing.
func (s *SituationServiceImpl) CloseSituation(ctx context.Context, situationID string) (*primary.Situation, error) {
	c := s.c
	return s.update(ctx, "situation.close", situationID, func(cs *changeSet, sit *secondary.SituationRecord) error {
		if err := c.detachAll(ctx, cs, sit); err != nil {
			return err
		}
		if sit.Active {
			if err := c.situations.SetActive(ctx, sit.ID, false, c.clock.Now()); err != nil {
				return err
			}
			cs.touch(kindSituation, sit.ID, "active")
		}
		return c.syncChannels(ctx, cs)
	})
}

// OpenSituation reactivates a closed situation.
func (s *SituationServiceImpl) OpenSituation(ctx context.Context, situationID string) (*primary.Situation, error) {
	c := s.c
	return s.update(ctx, "situation.open", situationID, func(cs *changeSet, sit *secondary.SituationRecord) error {
		if sit.Active {
			return nil
		}
		if err := c.situations.SetActive(ctx, sit.ID, true, c.clock.Now()); err != nil {
			return err
		}
		cs.touch(kindSituation, sit.ID, "active")
		return c.syncChannels(ctx, cs)
	})
}

// RemoveSituation detaches every unit, deletes the situation and frees its channel.
func (s *SituationServiceImpl) RemoveSituation(ctx context.Context, situationID string) error {
	c := s.c
	return c.run(ctx, "situation.remove", func(cs *changeSet) error {
		sit, err := c.situations.GetByID(ctx, situationID)
		if err != nil {
			return err
		}
		if err := c.detachAll(ctx, cs, sit); err != nil {
			return err
		}
		if err := c.situations.Delete(ctx, sit.ID); err != nil {
			return err
		}
		cs.touch(kindSituation, sit.ID, "")
		return c.syncChannels(ctx, cs)
	})
}

// detachAll detaches every unit attached to sit, in attachment order.
func (c *Coordinator) detachAll(ctx context.Context, cs *changeSet, sit *secondary.SituationRecord) error {
	for _, unitID := range slices.Clone(sit.Units) {
		if err := c.detachUnit(ctx, cs, sit.ID, unitID); err != nil {
			return fmt.Errorf("failed to detach %s: %w", unitID, err)
		}
	}
	return nil
}

// update runs fn against an existing situation and returns the result.
func (s *SituationServiceImpl) update(ctx context.Context, op, situationID string, fn func(cs *changeSet, sit *secondary.SituationRecord) error) (*primary.Situation, error) {
	c := s.c
	var situation *primary.Situation
	err := c.run(ctx, op, func(cs *changeSet) error {
		sit, err := c.situations.GetByID(ctx, situationID)
		if err != nil {
			return err
		}
		if err := fn(cs, sit); err != nil {
			return err
		}
		updated, err := c.situations.GetByID(ctx, sit.ID)
		if err != nil {
			return err
		}
		situation = recordToSituation(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return situation, nil
}

// Ensure SituationServiceImpl implements the interface
var _ primary.SituationService = (*SituationServiceImpl)(nil)
