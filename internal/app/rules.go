package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/dispatch/internal/apperr"
	corechannel "github.com/example/dispatch/internal/core/channel"
	coreplayer "github.com/example/dispatch/internal/core/player"
	"github.com/example/dispatch/internal/core/rank"
	coresituation "github.com/example/dispatch/internal/core/situation"
	coreunit "github.com/example/dispatch/internal/core/unit"
	"github.com/example/dispatch/internal/ports/secondary"
)

// The helpers in this file run inside Coordinator.run and assume mu is held.

// loadMembers fetches the player record behind every member of u.
// A member name without a player record is a corrupted pointer.
func (c *Coordinator) loadMembers(ctx context.Context, u *secondary.UnitRecord) ([]*secondary.PlayerRecord, error) {
	members := make([]*secondary.PlayerRecord, 0, len(u.Members))
	for _, name := range u.Members {
		p, err := c.players.GetByName(ctx, name)
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Internal("unit %s lists member %s with no player record", u.ID, name)
		}
		if err != nil {
			return nil, err
		}
		members = append(members, p)
	}
	return members, nil
}

func toCoreMembers(players []*secondary.PlayerRecord) []coreunit.Member {
	members := make([]coreunit.Member, len(players))
	for i, p := range players {
		members[i] = coreunit.Member{Name: p.Name, Rank: rank.Rank(p.Rank)}
	}
	return members
}

// applyLeadership recomputes a unit's leadership flag and pushes the
// resulting status to every member whose status differs.
func (c *Coordinator) applyLeadership(ctx context.Context, cs *changeSet, unitID string) error {
	u, err := c.units.GetByID(ctx, unitID)
	if err != nil {
		return err
	}
	players, err := c.loadMembers(ctx, u)
	if err != nil {
		return err
	}

	plan := coreunit.PlanLeadership(u.LeadershipRequested, toCoreMembers(players), c.rules.SeniorThreshold)
	for i, assign := range plan.Statuses {
		if players[i].Status == string(assign.Status) {
			continue
		}
		if err := c.players.SetStatus(ctx, assign.Name, string(assign.Status)); err != nil {
			return fmt.Errorf("failed to set status of %s: %w", assign.Name, err)
		}
		cs.touch(kindPlayer, assign.Name, "status")
	}

	if plan.Leading != u.Leading {
		if err := c.units.SetLeadership(ctx, unitID, plan.Leading, u.LeadershipRequested); err != nil {
			return err
		}
		cs.touch(kindUnit, unitID, "leading")
	}
	return nil
}

// attachedUnits summarizes every unit attached to s for role planning.
func (c *Coordinator) attachedUnits(ctx context.Context, s *secondary.SituationRecord) ([]coresituation.AttachedUnit, error) {
	attached := make([]coresituation.AttachedUnit, 0, len(s.Units))
	for _, unitID := range s.Units {
		u, err := c.units.GetByID(ctx, unitID)
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Internal("situation %s lists unit %s which does not exist", s.ID, unitID)
		}
		if err != nil {
			return nil, err
		}
		players, err := c.loadMembers(ctx, u)
		if err != nil {
			return nil, err
		}
		attached = append(attached, coresituation.AttachedUnit{
			UnitID:   unitID,
			BestRank: coreunit.BestRank(toCoreMembers(players)),
		})
	}
	return attached, nil
}

// recomputeCommander runs the commander rule for a situation. trigger names
// the unit that was just attached or whose member rank changed; it may be
// empty to only repair dangling roles. A promoted unit gets its leadership
// recomputed so its members' statuses follow.
func (c *Coordinator) recomputeCommander(ctx context.Context, cs *changeSet, situationID string, roles coresituation.Roles, trigger string) error {
	s, err := c.situations.GetByID(ctx, situationID)
	if err != nil {
		return err
	}
	attached, err := c.attachedUnits(ctx, s)
	if err != nil {
		return err
	}

	result := coresituation.RecomputeCommander(coresituation.CommanderInput{
		Roles:     roles,
		Attached:  attached,
		Trigger:   trigger,
		Threshold: c.rules.SeniorThreshold,
	})

	if result.Roles.Initiator != s.InitiatorID || result.Roles.Commander != s.CommanderID {
		if err := c.situations.SetRoles(ctx, situationID, result.Roles.Initiator, result.Roles.Commander); err != nil {
			return err
		}
		cs.touch(kindSituation, situationID, "roles")
	}

	if result.Promoted {
		c.logger.Debug("commander promoted", "situation", situationID, "unit", trigger)
		return c.applyLeadership(ctx, cs, trigger)
	}
	return nil
}

func rolesOf(s *secondary.SituationRecord) coresituation.Roles {
	return coresituation.Roles{Initiator: s.InitiatorID, Commander: s.CommanderID}
}

// attachUnit attaches a unit exclusively: it leaves any other situation first.
func (c *Coordinator) attachUnit(ctx context.Context, cs *changeSet, situationID, unitID string, asInitiator bool) error {
	s, err := c.situations.GetByID(ctx, situationID)
	if err != nil {
		return err
	}
	u, err := c.units.GetByID(ctx, unitID)
	if err != nil {
		return err
	}

	if u.SituationID == situationID {
		roles := rolesOf(s)
		if asInitiator {
			roles = coresituation.ApplyAttach(roles, unitID, false, true)
		}
		return c.recomputeCommander(ctx, cs, situationID, roles, unitID)
	}

	if u.SituationID != "" {
		if err := c.detachUnit(ctx, cs, u.SituationID, unitID); err != nil {
			return fmt.Errorf("failed to detach %s from %s: %w", unitID, u.SituationID, err)
		}
	}

	wasEmpty, err := c.situations.AttachUnit(ctx, situationID, unitID)
	if err != nil {
		return err
	}
	cs.touch(kindSituation, situationID, "units")

	if err := c.units.AttachToSituation(ctx, unitID, situationID); err != nil {
		return err
	}
	cs.touch(kindUnit, unitID, "situation")

	roles := coresituation.ApplyAttach(rolesOf(s), unitID, wasEmpty, asInitiator)
	return c.recomputeCommander(ctx, cs, situationID, roles, unitID)
}

// detachUnit removes a unit from a situation and reverts roles.
// A unit record that has already disappeared is tolerated.
func (c *Coordinator) detachUnit(ctx context.Context, cs *changeSet, situationID, unitID string) error {
	s, err := c.situations.GetByID(ctx, situationID)
	if err != nil {
		return err
	}

	if err := c.situations.DetachUnit(ctx, situationID, unitID); err != nil {
		return err
	}
	cs.touch(kindSituation, situationID, "units")

	if err := ignoreNotFound(c.units.DetachFromSituation(ctx, unitID)); err != nil {
		return err
	}
	cs.touch(kindUnit, unitID, "situation")

	roles := coresituation.ApplyDetach(rolesOf(s), unitID)
	return c.recomputeCommander(ctx, cs, situationID, roles, "")
}

// releaseMember clears membership and resets status for a player that left a unit.
func (c *Coordinator) releaseMember(ctx context.Context, cs *changeSet, name string) error {
	if err := c.players.ClearMembership(ctx, name); err != nil {
		return err
	}
	if err := c.players.SetStatus(ctx, name, string(coreplayer.DetachedStatus())); err != nil {
		return err
	}
	cs.touch(kindPlayer, name, "unit")
	return nil
}

// removeMember takes one player out of a unit, deleting the unit when it
// becomes empty. Returns whether the unit was deleted.
func (c *Coordinator) removeMember(ctx context.Context, cs *changeSet, unitID, name string) (bool, error) {
	u, err := c.units.GetByID(ctx, unitID)
	if err != nil {
		return false, err
	}

	isMember := false
	for _, m := range u.Members {
		if coreplayer.NormalizeName(m) == coreplayer.NormalizeName(name) {
			isMember = true
			name = m
			break
		}
	}
	guard := coreunit.CanRemoveMember(coreunit.RemoveMemberContext{UnitID: unitID, Name: name, IsMember: isMember})
	if !guard.Allowed {
		return false, guard.Error()
	}

	remaining, err := c.units.RemoveMember(ctx, unitID, name)
	if err != nil {
		return false, err
	}
	cs.touch(kindUnit, unitID, "members")

	if err := ignoreNotFound(c.releaseMember(ctx, cs, name)); err != nil {
		return false, err
	}

	if remaining == 0 {
		return true, c.deleteUnit(ctx, cs, unitID)
	}
	return false, c.applyLeadership(ctx, cs, unitID)
}

// deleteUnit detaches a unit from its situation, releases every member and
// deletes the record.
func (c *Coordinator) deleteUnit(ctx context.Context, cs *changeSet, unitID string) error {
	u, err := c.units.GetByID(ctx, unitID)
	if err != nil {
		return err
	}

	if u.SituationID != "" {
		if err := c.detachUnit(ctx, cs, u.SituationID, unitID); err != nil {
			return fmt.Errorf("failed to detach %s from %s: %w", unitID, u.SituationID, err)
		}
	}

	for _, name := range u.Members {
		if err := ignoreNotFound(c.releaseMember(ctx, cs, name)); err != nil {
			return err
		}
	}

	if err := c.units.Delete(ctx, unitID); err != nil {
		return err
	}
	cs.touch(kindUnit, unitID, "")
	c.logger.Debug("unit deleted", "unit", unitID)
	return nil
}

// syncChannels binds every channel to the situation its metadata claims.
func (c *Coordinator) syncChannels(ctx context.Context, cs *changeSet) error {
	channels, err := c.channels.List(ctx)
	if err != nil {
		return err
	}
	situations, err := c.situations.List(ctx, secondary.SituationFilters{})
	if err != nil {
		return err
	}

	states := make([]corechannel.State, len(channels))
	for i, ch := range channels {
		states[i] = corechannel.State{ID: ch.ID, Name: ch.Name, SituationID: ch.SituationID}
	}
	refs := make([]corechannel.SituationRef, len(situations))
	for i, s := range situations {
		refs[i] = corechannel.SituationRef{ID: s.ID, Active: s.Active, Metadata: s.Metadata}
	}

	for _, b := range corechannel.Reconcile(states, refs) {
		if err := c.channels.SetBusy(ctx, b.ChannelID, b.SituationID); err != nil {
			return err
		}
		cs.touch(kindChannel, b.ChannelID, "situation")
	}
	return nil
}
