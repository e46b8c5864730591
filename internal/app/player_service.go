package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/dispatch/internal/apperr"
	coreplayer "github.com/example/dispatch/internal/core/player"
	"github.com/example/dispatch/internal/core/rank"
	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/ports/secondary"
)

// PlayerServiceImpl implements the PlayerService interface.
type PlayerServiceImpl struct {
	c *Coordinator
}

// NewPlayerService creates a new PlayerService on top of the coordinator.
func NewPlayerService(c *Coordinator) *PlayerServiceImpl {
	return &PlayerServiceImpl{c: c}
}

// ReportPosition creates or updates an operative from a position report.
// Reports touch a single record, so they skip the coordinator lock and the
// audit log.
func (s *PlayerServiceImpl) ReportPosition(ctx context.Context, req primary.ReportPositionRequest) (*primary.Player, error) {
	c := s.c
	record, created, err := c.players.UpsertPosition(ctx, req.Name, req.X, req.Y, c.clock.Now())
	if err != nil {
		return nil, err
	}

	cs := newChangeSet()
	cs.quiet = true
	if created {
		cs.created(kindPlayer, record.Name)
		c.logger.Info("player joined", "player", record.Name)
	} else {
		cs.touch(kindPlayer, record.Name, "position")
	}
	c.flush(ctx, cs)

	return c.recordToPlayer(record), nil
}

// CreatePlayer creates an operative at the sentinel position.
func (s *PlayerServiceImpl) CreatePlayer(ctx context.Context, req primary.CreatePlayerRequest) (*primary.Player, error) {
	c := s.c
	r := rank.Unranked
	if req.Rank != "" {
		parsed, err := rank.Parse(req.Rank)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInvalidArgument, "invalid rank", err)
		}
		r = parsed
	}

	var player *primary.Player
	err := c.run(ctx, "player.create", func(cs *changeSet) error {
		_, err := c.players.GetByName(ctx, req.Name)
		exists := err == nil
		if err := ignoreNotFound(err); err != nil {
			return err
		}
		guard := coreplayer.CanCreatePlayer(coreplayer.CreateContext{Name: req.Name, Exists: exists})
		if !guard.Allowed {
			return guard.Error()
		}

		now := c.clock.Now()
		record := &secondary.PlayerRecord{
			Name:         strings.TrimSpace(req.Name),
			X:            coreplayer.SentinelX,
			Y:            coreplayer.SentinelY,
			Status:       string(coreplayer.InitialStatus()),
			Rank:         int(r),
			Role:         req.Role,
			LastUpdate:   now,
			LastActivity: now,
		}
		if err := c.players.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to create player: %w", err)
		}
		cs.created(kindPlayer, record.Name)
		player = c.recordToPlayer(record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

// GetPlayer retrieves an operative by name.
func (s *PlayerServiceImpl) GetPlayer(ctx context.Context, name string) (*primary.Player, error) {
	record, err := s.c.players.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.c.recordToPlayer(record), nil
}

// ListPlayers lists operatives with optional filters.
func (s *PlayerServiceImpl) ListPlayers(ctx context.Context, filters primary.PlayerFilters) ([]*primary.Player, error) {
	c := s.c
	records, err := c.players.List(ctx, secondary.PlayerFilters{
		Alive:            filters.AliveOnly,
		AvailableForUnit: filters.AvailableOnly,
		UnitID:           filters.UnitID,
		Now:              c.clock.Now(),
		TTL:              c.rules.AliveTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	players := make([]*primary.Player, len(records))
	for i, r := range records {
		players[i] = c.recordToPlayer(r)
	}
	return players, nil
}

// SetStatus sets an operative's status.
func (s *PlayerServiceImpl) SetStatus(ctx context.Context, name, status string) (*primary.Player, error) {
	parsed, err := coreplayer.ParseStatus(status)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidArgument, "invalid status", err)
	}
	return s.update(ctx, "player.status", name, func(cs *changeSet, p *secondary.PlayerRecord) error {
		if err := s.c.players.SetStatus(ctx, p.Name, string(parsed)); err != nil {
			return err
		}
		cs.touch(kindPlayer, p.Name, "status")
		return nil
	})
}

// SetRole sets an operative's free-text role.
func (s *PlayerServiceImpl) SetRole(ctx context.Context, name, role string) (*primary.Player, error) {
	return s.update(ctx, "player.role", name, func(cs *changeSet, p *secondary.PlayerRecord) error {
		if err := s.c.players.SetRole(ctx, p.Name, role); err != nil {
			return err
		}
		cs.touch(kindPlayer, p.Name, "role")
		return nil
	})
}

// SetRank sets an operative's rank, then recomputes leadership of its unit
// and reruns promotion where that unit is attached.
func (s *PlayerServiceImpl) SetRank(ctx context.Context, name, rankName string) (*primary.Player, error) {
	r, err := rank.Parse(rankName)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidArgument, "invalid rank", err)
	}
	c := s.c
	return s.update(ctx, "player.rank", name, func(cs *changeSet, p *secondary.PlayerRecord) error {
		if err := c.players.SetRank(ctx, p.Name, int(r)); err != nil {
			return err
		}
		cs.touch(kindPlayer, p.Name, "rank")

		if p.UnitID == "" {
			return nil
		}
		if err := c.applyLeadership(ctx, cs, p.UnitID); err != nil {
			return fmt.Errorf("failed to recompute leadership of %s: %w", p.UnitID, err)
		}
		u, err := c.units.GetByID(ctx, p.UnitID)
		if err != nil {
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

// RemovePlayer deletes an operative, leaving its unit first.
func (s *PlayerServiceImpl) RemovePlayer(ctx context.Context, name string) error {
	c := s.c
	return c.run(ctx, "player.remove", func(cs *changeSet) error {
		p, err := c.players.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if p.UnitID != "" {
			if _, err := c.removeMember(ctx, cs, p.UnitID, p.Name); err != nil {
				return fmt.Errorf("failed to leave unit %s: %w", p.UnitID, err)
			}
		}
		if err := c.players.Delete(ctx, p.Name); err != nil {
			return err
		}
		cs.touch(kindPlayer, p.Name, "")
		return nil
	})
}

// MarkIdleAway flags operatives whose last activity is older than the away threshold.
func (s *PlayerServiceImpl) MarkIdleAway(ctx context.Context) ([]string, error) {
	c := s.c
	var marked []string
	err := c.run(ctx, "player.away", func(cs *changeSet) error {
		names, err := c.players.MarkAway(ctx, c.clock.Now(), c.rules.AwayAfter)
		if err != nil {
			return err
		}
		for _, name := range names {
			cs.touch(kindPlayer, name, "away")
		}
		marked = names
		return nil
	})
	return marked, err
}

// update runs fn against an existing operative and returns the result.
func (s *PlayerServiceImpl) update(ctx context.Context, op, name string, fn func(cs *changeSet, p *secondary.PlayerRecord) error) (*primary.Player, error) {
	c := s.c
	var player *primary.Player
	err := c.run(ctx, op, func(cs *changeSet) error {
		p, err := c.players.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if err := fn(cs, p); err != nil {
			return err
		}
		updated, err := c.players.GetByName(ctx, p.Name)
		if err != nil {
			return err
		}
		player = c.recordToPlayer(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

// Ensure PlayerServiceImpl implements the interface
var _ primary.PlayerService = (*PlayerServiceImpl)(nil)
