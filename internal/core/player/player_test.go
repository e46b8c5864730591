package player

import (
	"testing"
	"time"

	"github.com/example/dispatch/internal/apperr"
	"github.com/example/dispatch/internal/core/rank"
)

func TestMemberStatus(t *testing.T) {
	tests := []struct {
		name    string
		leading bool
		rank    rank.Rank
		want    Status
	}{
		{name: "leading unit senior member", leading: true, rank: rank.Sergeant, want: StatusLeading},
		{name: "leading unit junior member", leading: true, rank: rank.Officer, want: StatusOnDuty},
		{name: "plain unit senior member", leading: false, rank: rank.Captain, want: StatusOnDuty},
		{name: "leading unit unranked member", leading: true, rank: rank.Unranked, want: StatusOnDuty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MemberStatus(tt.leading, tt.rank, rank.DefaultSeniorThreshold); got != tt.want {
				t.Errorf("MemberStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	if got, err := ParseStatus("On-Duty"); err != nil || got != StatusOnDuty {
		t.Errorf("ParseStatus(On-Duty) = %q, %v", got, err)
	}
	if _, err := ParseStatus("asleep"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestIsAlive(t *testing.T) {
	now := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)
	ttl := 5 * time.Minute

	tests := []struct {
		name string
		ctx  AliveContext
		want bool
	}{
		{
			name: "fresh report",
			ctx:  AliveContext{X: 10, Y: 20, LastUpdate: now.Add(-time.Minute), Now: now, TTL: ttl},
			want: true,
		},
		{
			name: "exactly at ttl",
			ctx:  AliveContext{X: 10, Y: 20, LastUpdate: now.Add(-ttl), Now: now, TTL: ttl},
			want: true,
		},
		{
			name: "stale report",
			ctx:  AliveContext{X: 10, Y: 20, LastUpdate: now.Add(-time.Hour), Now: now, TTL: ttl},
			want: false,
		},
		{
			name: "sentinel never expires",
			ctx:  AliveContext{X: SentinelX, Y: SentinelY, LastUpdate: now.Add(-24 * time.Hour), Now: now, TTL: ttl},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAlive(tt.ctx); got != tt.want {
				t.Errorf("IsAlive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsAvailableForUnit(t *testing.T) {
	tests := []struct {
		status Status
		unitID string
		want   bool
	}{
		{StatusUnassigned, "", true},
		{StatusOnDuty, "", true},
		{StatusOnDuty, "UNIT-001", false},
		{StatusLeading, "", false},
		{StatusOffDuty, "", false},
	}

	for _, tt := range tests {
		if got := IsAvailableForUnit(tt.status, tt.unitID); got != tt.want {
			t.Errorf("IsAvailableForUnit(%q, %q) = %v, want %v", tt.status, tt.unitID, got, tt.want)
		}
	}
}

func TestIsIdle(t *testing.T) {
	now := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)
	if !IsIdle(now.Add(-3*time.Minute), now, 2*time.Minute) {
		t.Error("expected idle after 3m with 2m threshold")
	}
	if IsIdle(now.Add(-time.Minute), now, 2*time.Minute) {
		t.Error("expected active after 1m with 2m threshold")
	}
	if IsIdle(now.Add(-time.Hour), now, 0) {
		t.Error("zero threshold disables away tracking")
	}
}

func TestCanCreatePlayer(t *testing.T) {
	tests := []struct {
		name     string
		ctx      CreateContext
		wantCode apperr.Code
		allowed  bool
	}{
		{name: "new name", ctx: CreateContext{Name: "Alice"}, allowed: true},
		{name: "blank name", ctx: CreateContext{Name: "  "}, wantCode: apperr.CodeInvalidArgument},
		{name: "taken name", ctx: CreateContext{Name: "Alice", Exists: true}, wantCode: apperr.CodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanCreatePlayer(tt.ctx)
			if result.Allowed != tt.allowed {
				t.Fatalf("Allowed = %v, want %v", result.Allowed, tt.allowed)
			}
			if !tt.allowed && apperr.CodeOf(result.Error()) != tt.wantCode {
				t.Errorf("code = %q, want %q", apperr.CodeOf(result.Error()), tt.wantCode)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	if NormalizeName("  Alice ") != NormalizeName("ALICE") {
		t.Error("names should normalize case-insensitively")
	}
}
