package app

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/example/dispatch/internal/adapters/memory"
	corechannel "github.com/example/dispatch/internal/core/channel"
	coreplayer "github.com/example/dispatch/internal/core/player"
	"github.com/example/dispatch/internal/core/rank"
	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/ports/secondary"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingPublisher keeps every published change for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []secondary.ChangeEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, change secondary.ChangeEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, change)
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

func (p *recordingPublisher) find(kind, id string) []secondary.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []secondary.ChangeEvent
	for _, e := range p.events {
		if e.Kind == kind && strings.EqualFold(e.EntityID, id) {
			out = append(out, e)
		}
	}
	return out
}

// mockLogWriter records audit calls as "action kind id".
type mockLogWriter struct {
	mu      sync.Mutex
	entries []string
}

func (m *mockLogWriter) add(action, kind, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, action+" "+kind+" "+id)
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	m.add("create", entityType, entityID)
	return nil
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	m.add("update", entityType, entityID)
	return nil
}

func (m *mockLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	m.add("delete", entityType, entityID)
	return nil
}

type fixture struct {
	ctx        context.Context
	clock      *fakeClock
	pub        *recordingPublisher
	audit      *mockLogWriter
	reg        Registries
	coord      *Coordinator
	players    *PlayerServiceImpl
	units      *UnitServiceImpl
	situations *SituationServiceImpl
	channels   *ChannelServiceImpl
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, Registries{
		Players:    memory.NewPlayerRepository(),
		Units:      memory.NewUnitRepository(),
		Situations: memory.NewSituationRepository(),
		Channels:   memory.NewChannelRepository(),
	})
}

func newFixtureWith(t *testing.T, reg Registries) *fixture {
	t.Helper()
	return newLoggedFixture(t, reg, nil)
}

// newLoggedFixture is newFixtureWith with the coordinator logging to logger.
func newLoggedFixture(t *testing.T, reg Registries, logger *slog.Logger) *fixture {
	t.Helper()
	f := &fixture{
		ctx:   context.Background(),
		clock: &fakeClock{now: t0},
		pub:   &recordingPublisher{},
		audit: &mockLogWriter{},
		reg:   reg,
	}
	f.coord = NewCoordinator(reg, f.clock, f.pub, f.audit, logger, DefaultRules())
	f.players = NewPlayerService(f.coord)
	f.units = NewUnitService(f.coord)
	f.situations = NewSituationService(f.coord)
	f.channels = NewChannelService(f.coord)
	if err := f.channels.Seed(f.ctx, corechannel.DefaultPool); err != nil {
		t.Fatalf("seed channels: %v", err)
	}
	f.pub.reset()
	f.audit.entries = nil
	return f
}

func (f *fixture) player(t *testing.T, name, rank string) *primary.Player {
	t.Helper()
	p, err := f.players.CreatePlayer(f.ctx, primary.CreatePlayerRequest{Name: name, Rank: rank})
	if err != nil {
		t.Fatalf("CreatePlayer(%s) failed: %v", name, err)
	}
	return p
}

func (f *fixture) unit(t *testing.T, marking string, members ...string) *primary.Unit {
	t.Helper()
	u, err := f.units.CreateUnit(f.ctx, primary.CreateUnitRequest{Marking: marking, Members: members})
	if err != nil {
		t.Fatalf("CreateUnit(%s) failed: %v", marking, err)
	}
	return u
}

func (f *fixture) situation(t *testing.T, typ string, metadata map[string]string) *primary.Situation {
	t.Helper()
	s, err := f.situations.CreateSituation(f.ctx, primary.CreateSituationRequest{Type: typ, Metadata: metadata})
	if err != nil {
		t.Fatalf("CreateSituation(%s) failed: %v", typ, err)
	}
	return s
}

func (f *fixture) attach(t *testing.T, situationID, unitID string) *primary.Situation {
	t.Helper()
	s, err := f.situations.AttachUnit(f.ctx, primary.AttachUnitRequest{SituationID: situationID, UnitID: unitID})
	if err != nil {
		t.Fatalf("AttachUnit(%s, %s) failed: %v", situationID, unitID, err)
	}
	return s
}

func (f *fixture) status(t *testing.T, name string) string {
	t.Helper()
	p, err := f.players.GetPlayer(f.ctx, name)
	if err != nil {
		t.Fatalf("GetPlayer(%s) failed: %v", name, err)
	}
	return p.Status
}

// checkInvariants verifies every cross-registry invariant over the whole state.
func (f *fixture) checkInvariants(t *testing.T) {
	t.Helper()
	ctx := f.ctx
	players, _ := f.reg.Players.List(ctx, secondary.PlayerFilters{})
	units, _ := f.reg.Units.List(ctx, secondary.UnitFilters{})
	situations, _ := f.reg.Situations.List(ctx, secondary.SituationFilters{})
	channels, _ := f.reg.Channels.List(ctx)

	memberOf := make(map[string][]string)
	unitByID := make(map[string]*secondary.UnitRecord)
	for _, u := range units {
		unitByID[u.ID] = u
		if len(u.Members) == 0 {
			t.Errorf("unit %s persists with no members", u.ID)
		}
		for _, m := range u.Members {
			key := strings.ToLower(m)
			memberOf[key] = append(memberOf[key], u.ID)
		}
	}
	threshold := DefaultRules().SeniorThreshold
	playerByName := make(map[string]*secondary.PlayerRecord, len(players))
	for _, p := range players {
		playerByName[strings.ToLower(p.Name)] = p
	}
	for _, u := range units {
		anySenior := false
		for _, m := range u.Members {
			p := playerByName[strings.ToLower(m)]
			if p == nil {
				t.Errorf("unit %s lists unknown member %s", u.ID, m)
				continue
			}
			if rank.IsSenior(rank.Rank(p.Rank), threshold) {
				anySenior = true
			}
			want := coreplayer.MemberStatus(u.Leading, rank.Rank(p.Rank), threshold)
			if p.Status != string(want) {
				t.Errorf("member %s of %s has status %q, want %q", p.Name, u.ID, p.Status, want)
			}
		}
		if want := u.LeadershipRequested || anySenior; u.Leading != want {
			t.Errorf("unit %s leading=%v, want %v", u.ID, u.Leading, want)
		}
	}

	for _, p := range players {
		owners := memberOf[strings.ToLower(p.Name)]
		switch {
		case p.UnitID == "" && len(owners) != 0:
			t.Errorf("player %s has no unit but is listed by %v", p.Name, owners)
		case p.UnitID != "" && (len(owners) != 1 || owners[0] != p.UnitID):
			t.Errorf("player %s points at %s but is listed by %v", p.Name, p.UnitID, owners)
		}
	}

	sitByID := make(map[string]*secondary.SituationRecord)
	for _, s := range situations {
		sitByID[s.ID] = s
		if len(s.Units) == 0 && (s.InitiatorID != "" || s.CommanderID != "") {
			t.Errorf("situation %s has roles %q/%q with no units", s.ID, s.InitiatorID, s.CommanderID)
		}
		if s.CommanderID != "" && !slices.Contains(s.Units, s.CommanderID) {
			t.Errorf("situation %s commander %s not attached", s.ID, s.CommanderID)
		}
		for _, id := range s.Units {
			if u := unitByID[id]; u == nil || u.SituationID != s.ID {
				t.Errorf("situation %s lists %s which does not point back", s.ID, id)
			}
		}
	}
	for _, u := range units {
		if u.SituationID == "" {
			continue
		}
		if s := sitByID[u.SituationID]; s == nil || !slices.Contains(s.Units, u.ID) {
			t.Errorf("unit %s points at %s which does not list it", u.ID, u.SituationID)
		}
	}

	for _, ch := range channels {
		s := sitByID[ch.SituationID]
		want := ch.SituationID != "" && s != nil && s.Active
		if ch.Busy != want {
			t.Errorf("channel %s busy=%v, situation %q", ch.Name, ch.Busy, ch.SituationID)
		}
	}
}
