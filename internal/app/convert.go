package app

import (
	"maps"
	"slices"

	coreplayer "github.com/example/dispatch/internal/core/player"
	"github.com/example/dispatch/internal/core/rank"
	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/ports/secondary"
)

func (c *Coordinator) recordToPlayer(r *secondary.PlayerRecord) *primary.Player {
	return &primary.Player{
		Name:     r.Name,
		X:        r.X,
		Y:        r.Y,
		Sentinel: coreplayer.IsSentinel(r.X, r.Y),
		Status:   r.Status,
		Rank:     rank.Rank(r.Rank).String(),
		Role:     r.Role,
		UnitID:   r.UnitID,
		Away:     r.Away,
		Alive: coreplayer.IsAlive(coreplayer.AliveContext{
			X: r.X, Y: r.Y, LastUpdate: r.LastUpdate, Now: c.clock.Now(), TTL: c.rules.AliveTTL,
		}),
		LastUpdate:   r.LastUpdate,
		LastActivity: r.LastActivity,
	}
}

func recordToUnit(r *secondary.UnitRecord) *primary.Unit {
	return &primary.Unit{
		ID:                  r.ID,
		Marking:             r.Marking,
		Members:             slices.Clone(r.Members),
		Leading:             r.Leading,
		LeadershipRequested: r.LeadershipRequested,
		SituationID:         r.SituationID,
		ChannelID:           r.ChannelID,
		StatusCode:          r.StatusCode,
		CreatedAt:           r.CreatedAt,
	}
}

func recordToSituation(r *secondary.SituationRecord) *primary.Situation {
	return &primary.Situation{
		ID:          r.ID,
		Type:        r.Type,
		Metadata:    maps.Clone(r.Metadata),
		Units:       slices.Clone(r.Units),
		InitiatorID: r.InitiatorID,
		CommanderID: r.CommanderID,
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
		ClosedAt:    r.ClosedAt,
	}
}

func recordToChannel(r *secondary.ChannelRecord) *primary.Channel {
	return &primary.Channel{
		ID:          r.ID,
		Name:        r.Name,
		Busy:        r.Busy,
		SituationID: r.SituationID,
	}
}
