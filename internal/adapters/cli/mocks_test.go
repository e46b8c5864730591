package cli

import (
	"context"

	"github.com/example/dispatch/internal/ports/primary"
)

// mockPlayerService implements primary.PlayerService for testing
type mockPlayerService struct {
	reportPositionFn func(ctx context.Context, req primary.ReportPositionRequest) (*primary.Player, error)
	createPlayerFn   func(ctx context.Context, req primary.CreatePlayerRequest) (*primary.Player, error)
	getPlayerFn      func(ctx context.Context, name string) (*primary.Player, error)
	listPlayersFn    func(ctx context.Context, filters primary.PlayerFilters) ([]*primary.Player, error)
	setStatusFn      func(ctx context.Context, name, status string) (*primary.Player, error)
	removePlayerFn   func(ctx context.Context, name string) error
	markIdleAwayFn   func(ctx context.Context) ([]string, error)

	// Track calls for verification
	lastCreateReq primary.CreatePlayerRequest
	lastFilters   primary.PlayerFilters
}

func (m *mockPlayerService) ReportPosition(ctx context.Context, req primary.ReportPositionRequest) (*primary.Player, error) {
	if m.reportPositionFn != nil {
		return m.reportPositionFn(ctx, req)
	}
	return &primary.Player{Name: req.Name, X: req.X, Y: req.Y, Status: "unassigned", Alive: true}, nil
}

func (m *mockPlayerService) CreatePlayer(ctx context.Context, req primary.CreatePlayerRequest) (*primary.Player, error) {
	m.lastCreateReq = req
	if m.createPlayerFn != nil {
		return m.createPlayerFn(ctx, req)
	}
	return &primary.Player{Name: req.Name, Rank: req.Rank, Sentinel: true, Status: "unassigned"}, nil
}

func (m *mockPlayerService) GetPlayer(ctx context.Context, name string) (*primary.Player, error) {
	if m.getPlayerFn != nil {
		return m.getPlayerFn(ctx, name)
	}
	return &primary.Player{Name: name, Status: "unassigned", Rank: "officer"}, nil
}

func (m *mockPlayerService) ListPlayers(ctx context.Context, filters primary.PlayerFilters) ([]*primary.Player, error) {
	m.lastFilters = filters
	if m.listPlayersFn != nil {
		return m.listPlayersFn(ctx, filters)
	}
	return []*primary.Player{}, nil
}

func (m *mockPlayerService) SetStatus(ctx context.Context, name, status string) (*primary.Player, error) {
	if m.setStatusFn != nil {
		return m.setStatusFn(ctx, name, status)
	}
	return &primary.Player{Name: name, Status: status}, nil
}

func (m *mockPlayerService) SetRole(ctx context.Context, name, role string) (*primary.Player, error) {
	return &primary.Player{Name: name, Role: role}, nil
}

func (m *mockPlayerService) SetRank(ctx context.Context, name, rank string) (*primary.Player, error) {
	return &primary.Player{Name: name, Rank: rank, Status: "leading"}, nil
}

func (m *mockPlayerService) RemovePlayer(ctx context.Context, name string) error {
	if m.removePlayerFn != nil {
		return m.removePlayerFn(ctx, name)
	}
	return nil
}

func (m *mockPlayerService) MarkIdleAway(ctx context.Context) ([]string, error) {
	if m.markIdleAwayFn != nil {
		return m.markIdleAwayFn(ctx)
	}
	return nil, nil
}

// mockUnitService implements primary.UnitService for testing
type mockUnitService struct {
	createUnitFn   func(ctx context.Context, req primary.CreateUnitRequest) (*primary.Unit, error)
	listUnitsFn    func(ctx context.Context, filters primary.UnitFilters) ([]*primary.Unit, error)
	removeMemberFn func(ctx context.Context, unitID, name string) (*primary.RemoveMemberResponse, error)

	lastCreateReq primary.CreateUnitRequest
	lastFilters   primary.UnitFilters
}

func (m *mockUnitService) CreateUnit(ctx context.Context, req primary.CreateUnitRequest) (*primary.Unit, error) {
	m.lastCreateReq = req
	if m.createUnitFn != nil {
		return m.createUnitFn(ctx, req)
	}
	return &primary.Unit{ID: "UNIT-001", Marking: req.Marking, Members: req.Members, Leading: req.Leading}, nil
}

func (m *mockUnitService) GetUnit(ctx context.Context, unitID string) (*primary.Unit, error) {
	return &primary.Unit{ID: unitID, Marking: "3B", Members: []string{"alice"}}, nil
}

func (m *mockUnitService) ListUnits(ctx context.Context, filters primary.UnitFilters) ([]*primary.Unit, error) {
	m.lastFilters = filters
	if m.listUnitsFn != nil {
		return m.listUnitsFn(ctx, filters)
	}
	return []*primary.Unit{}, nil
}

func (m *mockUnitService) AddMember(ctx context.Context, unitID, name string) (*primary.Unit, error) {
	return &primary.Unit{ID: unitID}, nil
}

func (m *mockUnitService) RemoveMember(ctx context.Context, unitID, name string) (*primary.RemoveMemberResponse, error) {
	if m.removeMemberFn != nil {
		return m.removeMemberFn(ctx, unitID, name)
	}
	return &primary.RemoveMemberResponse{Unit: &primary.Unit{ID: unitID}}, nil
}

func (m *mockUnitService) SetLeadership(ctx context.Context, unitID string, leading bool) (*primary.Unit, error) {
	return &primary.Unit{ID: unitID, Leading: leading}, nil
}

func (m *mockUnitService) RenameUnit(ctx context.Context, unitID, marking string) (*primary.Unit, error) {
	return &primary.Unit{ID: unitID, Marking: marking}, nil
}

func (m *mockUnitService) SetStatusCode(ctx context.Context, unitID, code string) (*primary.Unit, error) {
	return &primary.Unit{ID: unitID, StatusCode: code}, nil
}

func (m *mockUnitService) AssignChannel(ctx context.Context, unitID, channelID string) (*primary.Unit, error) {
	return &primary.Unit{ID: unitID, ChannelID: channelID}, nil
}

func (m *mockUnitService) ClearChannel(ctx context.Context, unitID string) (*primary.Unit, error) {
	return &primary.Unit{ID: unitID}, nil
}

func (m *mockUnitService) RemoveUnit(ctx context.Context, unitID string) error {
	return nil
}

// mockSituationService implements primary.SituationService for testing
type mockSituationService struct {
	attachUnitFn     func(ctx context.Context, req primary.AttachUnitRequest) (*primary.Situation, error)
	listSituationsFn func(ctx context.Context, filters primary.SituationFilters) ([]*primary.Situation, error)

	lastCreateReq primary.CreateSituationRequest
	lastAttachReq primary.AttachUnitRequest
}

func (m *mockSituationService) CreateSituation(ctx context.Context, req primary.CreateSituationRequest) (*primary.Situation, error) {
	m.lastCreateReq = req
	return &primary.Situation{ID: "SIT-001", Type: req.Type, Metadata: req.Metadata, Active: true}, nil
}

func (m *mockSituationService) GetSituation(ctx context.Context, situationID string) (*primary.Situation, error) {
	return &primary.Situation{ID: situationID, Type: "fire", Active: true}, nil
}

func (m *mockSituationService) ListSituations(ctx context.Context, filters primary.SituationFilters) ([]*primary.Situation, error) {
	if m.listSituationsFn != nil {
		return m.listSituationsFn(ctx, filters)
	}
	return []*primary.Situation{}, nil
}

func (m *mockSituationService) AttachUnit(ctx context.Context, req primary.AttachUnitRequest) (*primary.Situation, error) {
	m.lastAttachReq = req
	if m.attachUnitFn != nil {
		return m.attachUnitFn(ctx, req)
	}
	return &primary.Situation{ID: req.SituationID, Units: []string{req.UnitID}, InitiatorID: req.UnitID, CommanderID: req.UnitID}, nil
}

func (m *mockSituationService) DetachUnit(ctx context.Context, situationID, unitID string) (*primary.Situation, error) {
	return &primary.Situation{ID: situationID}, nil
}

func (m *mockSituationService) SetCommander(ctx context.Context, situationID, unitID string) (*primary.Situation, error) {
	return &primary.Situation{ID: situationID, CommanderID: unitID}, nil
}

func (m *mockSituationService) SetMetadata(ctx context.Context, situationID string, metadata map[string]string) (*primary.Situation, error) {
	return &primary.Situation{ID: situationID, Metadata: metadata}, nil
}

func (m *mockSituationService) CloseSituation(ctx context.Context, situationID string) (*primary.Situation, error) {
	return &primary.Situation{ID: situationID}, nil
}

func (m *mockSituationService) OpenSituation(ctx context.Context, situationID string) (*primary.Situation, error) {
	return &primary.Situation{ID: situationID, Active: true}, nil
}

func (m *mockSituationService) RemoveSituation(ctx context.Context, situationID string) error {
	return nil
}

// mockChannelService implements primary.ChannelService for testing
type mockChannelService struct {
	channels []*primary.Channel
}

func (m *mockChannelService) GetChannel(ctx context.Context, channelID string) (*primary.Channel, error) {
	for _, c := range m.channels {
		if c.ID == channelID {
			return c, nil
		}
	}
	return &primary.Channel{ID: channelID}, nil
}

func (m *mockChannelService) ListChannels(ctx context.Context) ([]*primary.Channel, error) {
	return m.channels, nil
}

// mockAuditService implements primary.AuditService for testing
type mockAuditService struct {
	entries    []*primary.AuditEntry
	pruneErr   error
	lastPruned int
}

func (m *mockAuditService) ListEntries(ctx context.Context, filters primary.AuditFilters) ([]*primary.AuditEntry, error) {
	return m.entries, nil
}

func (m *mockAuditService) PruneEntries(ctx context.Context, olderThanDays int) (int, error) {
	m.lastPruned = olderThanDays
	if m.pruneErr != nil {
		return 0, m.pruneErr
	}
	return 3, nil
}
