package wire

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/example/dispatch/internal/apperr"
	"github.com/example/dispatch/internal/config"
	"github.com/example/dispatch/internal/ctxutil"
	"github.com/example/dispatch/internal/db"
	"github.com/example/dispatch/internal/ports/primary"
)

func testLogger() *slog.Logger {
	return NewLogger(io.Discard, slog.LevelDebug)
}

func TestBuild_WiresAuditAndHub(t *testing.T) {
	ctx := ctxutil.WithActor(context.Background(), "ops-7")
	cfg := config.Default()
	cfg.AuditDB = db.MemoryPath
	cfg.Channels = []string{"OPS-1", "OPS-2"}

	svc, err := Build(ctx, cfg, testLogger())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer svc.Close()

	channels, err := svc.Channels.ListChannels(ctx)
	if err != nil {
		t.Fatalf("ListChannels failed: %v", err)
	}
	if len(channels) != 2 || channels[0].Name != "OPS-1" {
		t.Errorf("channels = %+v", channels)
	}

	events, cancel := svc.Hub.Subscribe(16)
	defer cancel()

	if _, err := svc.Players.CreatePlayer(ctx, primary.CreatePlayerRequest{Name: "alice", Rank: "captain"}); err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}
	unit, err := svc.Units.CreateUnit(ctx, primary.CreateUnitRequest{Marking: "3B", Members: []string{"alice"}})
	if err != nil {
		t.Fatalf("CreateUnit failed: %v", err)
	}
	if !unit.Leading {
		t.Error("captain should make the unit leading")
	}

	select {
	case ev := <-events:
		if ev.Kind != "player" || ev.EntityID != "alice" || ev.Action != "create" {
			t.Errorf("first event = %+v", ev)
		}
	default:
		t.Fatal("expected a change event on the hub")
	}

	entries, err := svc.Audit.ListEntries(ctx, primary.AuditFilters{EntityType: "unit"})
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected unit audit entries")
	}
	if entries[len(entries)-1].ActorID != "ops-7" {
		t.Errorf("actor = %q, want ops-7", entries[len(entries)-1].ActorID)
	}
}

func TestBuild_AuditOff(t *testing.T) {
	cfg := config.Default()
	cfg.AuditDB = config.AuditOff

	svc, err := Build(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer svc.Close()

	if _, err := svc.Players.CreatePlayer(context.Background(), primary.CreatePlayerRequest{Name: "bob"}); err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}
	if _, err := svc.Audit.ListEntries(context.Background(), primary.AuditFilters{}); err == nil {
		t.Error("expected an error when auditing is disabled")
	}
}

func TestBuild_RulesFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.AuditDB = config.AuditOff
	cfg.SeniorRank = "captain"

	svc, err := Build(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer svc.Close()

	ctx := context.Background()
	if _, err := svc.Players.CreatePlayer(ctx, primary.CreatePlayerRequest{Name: "carol", Rank: "sergeant"}); err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}
	unit, err := svc.Units.CreateUnit(ctx, primary.CreateUnitRequest{Marking: "7A", Members: []string{"carol"}})
	if err != nil {
		t.Fatalf("CreateUnit failed: %v", err)
	}
	if unit.Leading {
		t.Error("sergeant is below a captain threshold and must not lead")
	}
}

func TestBuild_BadChannelPoolClosesAudit(t *testing.T) {
	cfg := config.Default()
	cfg.AuditDB = db.MemoryPath
	cfg.Channels = []string{"OPS-1", "ops-1"}

	svc, err := Build(context.Background(), cfg, testLogger())
	if err == nil {
		svc.Close()
		t.Fatal("expected a duplicate channel pool to fail the build")
	}
	if svc != nil {
		t.Errorf("services = %+v, want nil on failure", svc)
	}
	if apperr.CodeOf(err) != apperr.CodeInvalidArgument {
		t.Errorf("code = %v, want invalid argument (err: %v)", apperr.CodeOf(err), err)
	}
}
