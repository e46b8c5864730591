package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/dispatch/internal/apperr"
	coreunit "github.com/example/dispatch/internal/core/unit"
	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/ports/secondary"
)

// UnitServiceImpl implements the UnitService interface.
type UnitServiceImpl struct {
	c *Coordinator
}

// NewUnitService creates a new UnitService on top of the coordinator.
func NewUnitService(c *Coordinator) *UnitServiceImpl {
	return &UnitServiceImpl{c: c}
}

// candidate looks up a prospective member for the membership guards.
func (c *Coordinator) candidate(ctx context.Context, name string) (coreunit.MemberCandidate, *secondary.PlayerRecord, error) {
	p, err := c.players.GetByName(ctx, name)
	if err != nil {
		if err := ignoreNotFound(err); err != nil {
			return coreunit.MemberCandidate{}, nil, err
		}
		return coreunit.MemberCandidate{Name: strings.TrimSpace(name)}, nil, nil
	}
	return coreunit.MemberCandidate{Name: p.Name, Exists: true, UnitID: p.UnitID}, p, nil
}

// CreateUnit creates a unit with its initial members. Either every step
// applies or the registries are left as they were.
func (s *UnitServiceImpl) CreateUnit(ctx context.Context, req primary.CreateUnitRequest) (*primary.Unit, error) {
	c := s.c
	var unit *primary.Unit
	err := c.run(ctx, "unit.create", func(cs *changeSet) error {
		candidates := make([]coreunit.MemberCandidate, len(req.Members))
		previous := make(map[string]string, len(req.Members))
		for i, name := range req.Members {
			cand, p, err := c.candidate(ctx, name)
			if err != nil {
				return err
			}
			candidates[i] = cand
			if p != nil {
				previous[p.Name] = p.Status
			}
		}

		taken, err := c.units.MarkingInUse(ctx, req.Marking, "")
		if err != nil {
			return err
		}
		guard := coreunit.CanCreateUnit(coreunit.CreateContext{
			MarkingContext: coreunit.MarkingContext{
				Marking:      req.Marking,
				MaxLen:       c.rules.MarkingMaxLen,
				MarkingTaken: taken,
			},
			Members: candidates,
		})
		if !guard.Allowed {
			return guard.Error()
		}

		id, err := c.units.NextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate unit ID: %w", err)
		}
		members := make([]string, len(candidates))
		for i, cand := range candidates {
			members[i] = cand.Name
		}
		record := &secondary.UnitRecord{
			ID:                  id,
			Marking:             strings.TrimSpace(req.Marking),
			Members:             members,
			LeadershipRequested: req.Leading,
			CreatedAt:           c.clock.Now(),
		}
		if err := c.units.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to create unit: %w", err)
		}
		cs.created(kindUnit, id)

		var assigned []string
		rollback := func(cause error) error {
			var undo []error
			for i := len(assigned) - 1; i >= 0; i-- {
				name := assigned[i]
				undo = append(undo,
					c.players.ClearMembership(ctx, name),
					c.players.SetStatus(ctx, name, previous[name]))
			}
			undo = append(undo, c.units.Delete(ctx, id))
			cs.reset()
			if undoErr := errors.Join(undo...); undoErr != nil {
				c.logger.Warn("unit creation rolled back", "unit", id, "err", cause, "rollback_err", undoErr)
			} else {
				c.logger.Warn("unit creation rolled back", "unit", id, "err", cause)
			}
			return cause
		}

		for _, name := range members {
			if err := c.players.AssignMembership(ctx, name, id); err != nil {
				return rollback(fmt.Errorf("failed to assign %s to %s: %w", name, id, err))
			}
			assigned = append(assigned, name)
			cs.touch(kindPlayer, name, "unit")
		}
		if err := c.applyLeadership(ctx, cs, id); err != nil {
			return rollback(err)
		}

		created, err := c.units.GetByID(ctx, id)
		if err != nil {
			return err
		}
		unit = recordToUnit(created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// GetUnit retrieves a unit by ID.
func (s *UnitServiceImpl) GetUnit(ctx context.Context, unitID string) (*primary.Unit, error) {
	record, err := s.c.units.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}
	return recordToUnit(record), nil
}

// ListUnits lists units with optional filters.
func (s *UnitServiceImpl) ListUnits(ctx context.Context, filters primary.UnitFilters) ([]*primary.Unit, error) {
	records, err := s.c.units.List(ctx, secondary.UnitFilters{SituationID: filters.SituationID})
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	units := make([]*primary.Unit, len(records))
	for i, r := range records {
		units[i] = recordToUnit(r)
	}
	return units, nil
}

// AddMember adds an unaffiliated operative to a unit.
func (s *UnitServiceImpl) AddMember(ctx context.Context, unitID, name string) (*primary.Unit, error) {
	c := s.c
	return s.update(ctx, "unit.add-member", unitID, func(cs *changeSet, u *secondary.UnitRecord) error {
		cand, _, err := c.candidate(ctx, name)
		if err != nil {
			return err
		}
		guard := coreunit.CanAddMember(coreunit.AddMemberContext{UnitID: u.ID, Candidate: cand})
		if !guard.Allowed {
			return guard.Error()
		}

		if err := c.units.AddMember(ctx, u.ID, cand.Name); err != nil {
			return err
		}
		if err := c.players.AssignMembership(ctx, cand.Name, u.ID); err != nil {
			if _, undoErr := c.units.RemoveMember(ctx, u.ID, cand.Name); undoErr != nil {
				c.logger.Warn("member addition not undone", "unit", u.ID, "player", cand.Name, "err", err, "rollback_err", undoErr)
			}
			return fmt.Errorf("failed to assign %s to %s: %w", cand.Name, u.ID, err)
		}
		cs.touch(kindUnit, u.ID, "members")
		cs.touch(kindPlayer, cand.Name, "unit")

		if err := c.applyLeadership(ctx, cs, u.ID); err != nil {
			return err
		}
		if u.SituationID == "" {
			return nil
		}
		sit, err := c.situations.GetByID(ctx, u.SituationID)
		if err != nil {
			return err
		}
		return c.recomputeCommander(ctx, cs, sit.ID, rolesOf(sit), u.ID)
	})
}

// RemoveMember removes an operative from a unit, deleting the unit when it empties.
func (s *UnitServiceImpl) RemoveMember(ctx context.Context, unitID, name string) (*primary.RemoveMemberResponse, error) {
	c := s.c
	resp := &primary.RemoveMemberResponse{}
	err := c.run(ctx, "unit.remove-member", func(cs *changeSet) error {
		deleted, err := c.removeMember(ctx, cs, unitID, name)
		if err != nil {
			return err
		}
		resp.UnitDeleted = deleted
		if deleted {
			return nil
		}
		u, err := c.units.GetByID(ctx, unitID)
		if err != nil {
			return err
		}
		resp.Unit = recordToUnit(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// SetLeadership records the explicit leadership request and recomputes statuses.
func (s *UnitServiceImpl) SetLeadership(ctx context.Context, unitID string, leading bool) (*primary.Unit, error) {
	c := s.c
	return s.update(ctx, "unit.leadership", unitID, func(cs *changeSet, u *secondary.UnitRecord) error {
		if u.LeadershipRequested != leading {
			if err := c.units.SetLeadership(ctx, u.ID, u.Leading, leading); err != nil {
				return err
			}
			cs.touch(kindUnit, u.ID, "leadership")
		}
		return c.applyLeadership(ctx, cs, u.ID)
	})
}

// RenameUnit changes a unit's marking.
func (s *UnitServiceImpl) RenameUnit(ctx context.Context, unitID, marking string) (*primary.Unit, error) {
	c := s.c
	return s.update(ctx, "unit.rename", unitID, func(cs *changeSet, u *secondary.UnitRecord) error {
		taken, err := c.units.MarkingInUse(ctx, marking, u.ID)
		if err != nil {
			return err
		}
		guard := coreunit.CanUseMarking(coreunit.MarkingContext{
			Marking:      marking,
			MaxLen:       c.rules.MarkingMaxLen,
			MarkingTaken: taken,
		})
		if !guard.Allowed {
			return guard.Error()
		}
		if err := c.units.Rename(ctx, u.ID, strings.TrimSpace(marking)); err != nil {
			return err
		}
		cs.touch(kindUnit, u.ID, "marking")
		return nil
	})
}

// SetStatusCode sets a unit's free-text status code.
func (s *UnitServiceImpl) SetStatusCode(ctx context.Context, unitID, code string) (*primary.Unit, error) {
	c := s.c
	return s.update(ctx, "unit.status-code", unitID, func(cs *changeSet, u *secondary.UnitRecord) error {
		if err := c.units.SetStatusCode(ctx, u.ID, strings.TrimSpace(code)); err != nil {
			return err
		}
		cs.touch(kindUnit, u.ID, "status_code")
		return nil
	})
}

// AssignChannel points a unit at an existing channel.
func (s *UnitServiceImpl) AssignChannel(ctx context.Context, unitID, channelID string) (*primary.Unit, error) {
	c := s.c
	return s.update(ctx, "unit.channel", unitID, func(cs *changeSet, u *secondary.UnitRecord) error {
		ch, err := c.channels.GetByID(ctx, channelID)
		if err != nil {
			return err
		}
		if err := c.units.AssignChannel(ctx, u.ID, ch.ID); err != nil {
			return err
		}
		cs.touch(kindUnit, u.ID, "channel")
		return nil
	})
}

// ClearChannel clears a unit's channel pointer.
func (s *UnitServiceImpl) ClearChannel(ctx context.Context, unitID string) (*primary.Unit, error) {
	c := s.c
	return s.update(ctx, "unit.channel", unitID, func(cs *changeSet, u *secondary.UnitRecord) error {
		if u.ChannelID == "" {
			return nil
		}
		if err := c.units.ClearChannel(ctx, u.ID); err != nil {
			return err
		}
		cs.touch(kindUnit, u.ID, "channel")
		return nil
	})
}

// RemoveUnit detaches every member and deletes the unit.
func (s *UnitServiceImpl) RemoveUnit(ctx context.Context, unitID string) error {
	c := s.c
	return c.run(ctx, "unit.remove", func(cs *changeSet) error {
		return c.deleteUnit(ctx, cs, unitID)
	})
}

// update runs fn against an existing unit and returns the result.
func (s *UnitServiceImpl) update(ctx context.Context, op, unitID string, fn func(cs *changeSet, u *secondary.UnitRecord) error) (*primary.Unit, error) {
	c := s.c
	var unit *primary.Unit
	err := c.run(ctx, op, func(cs *changeSet) error {
		u, err := c.units.GetByID(ctx, unitID)
		if err != nil {
			return err
		}
		if err := fn(cs, u); err != nil {
			return err
		}
		updated, err := c.units.GetByID(ctx, u.ID)
		if err != nil {
			return apperr.Internal("unit %s vanished during %s", u.ID, op)
		}
		unit = recordToUnit(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// Ensure UnitServiceImpl implements the interface
var _ primary.UnitService = (*UnitServiceImpl)(nil)
