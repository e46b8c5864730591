package situation

import (
	"testing"

	"github.com/example/dispatch/internal/core/rank"
)

func TestApplyAttach(t *testing.T) {
	tests := []struct {
		name        string
		roles       Roles
		unitID      string
		wasEmpty    bool
		asInitiator bool
		want        Roles
	}{
		{
			name:     "first unit becomes initiator and commander",
			unitID:   "UNIT-001",
			wasEmpty: true,
			want:     Roles{Initiator: "UNIT-001", Commander: "UNIT-001"},
		},
		{
			name:   "second unit leaves roles alone",
			roles:  Roles{Initiator: "UNIT-001", Commander: "UNIT-001"},
			unitID: "UNIT-002",
			want:   Roles{Initiator: "UNIT-001", Commander: "UNIT-001"},
		},
		{
			name:        "explicit initiator takes over initiator only",
			roles:       Roles{Initiator: "UNIT-001", Commander: "UNIT-001"},
			unitID:      "UNIT-002",
			asInitiator: true,
			want:        Roles{Initiator: "UNIT-002", Commander: "UNIT-001"},
		},
		{
			name:   "non-empty set with no initiator keeps commander unset",
			roles:  Roles{},
			unitID: "UNIT-003",
			want:   Roles{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyAttach(tt.roles, tt.unitID, tt.wasEmpty, tt.asInitiator)
			if got != tt.want {
				t.Errorf("ApplyAttach() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestApplyDetach(t *testing.T) {
	tests := []struct {
		name   string
		roles  Roles
		unitID string
		want   Roles
	}{
		{
			name:   "commander reverts to initiator",
			roles:  Roles{Initiator: "UNIT-001", Commander: "UNIT-002"},
			unitID: "UNIT-002",
			want:   Roles{Initiator: "UNIT-001", Commander: "UNIT-001"},
		},
		{
			name:   "initiator detached keeps other commander",
			roles:  Roles{Initiator: "UNIT-001", Commander: "UNIT-002"},
			unitID: "UNIT-001",
			want:   Roles{Initiator: "", Commander: "UNIT-002"},
		},
		{
			name:   "initiator and commander detached clears both",
			roles:  Roles{Initiator: "UNIT-001", Commander: "UNIT-001"},
			unitID: "UNIT-001",
			want:   Roles{},
		},
		{
			name:   "unrelated unit",
			roles:  Roles{Initiator: "UNIT-001", Commander: "UNIT-001"},
			unitID: "UNIT-009",
			want:   Roles{Initiator: "UNIT-001", Commander: "UNIT-001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyDetach(tt.roles, tt.unitID); got != tt.want {
				t.Errorf("ApplyDetach() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRecomputeCommander(t *testing.T) {
	unitA := AttachedUnit{UnitID: "UNIT-A", BestRank: rank.Officer}
	unitB := AttachedUnit{UnitID: "UNIT-B", BestRank: rank.Sergeant}
	unitC := AttachedUnit{UnitID: "UNIT-C", BestRank: rank.Sergeant}
	unitD := AttachedUnit{UnitID: "UNIT-D", BestRank: rank.Captain}

	tests := []struct {
		name         string
		in           CommanderInput
		wantRoles    Roles
		wantPromoted bool
	}{
		{
			name: "senior unit takes command from junior initiator",
			in: CommanderInput{
				Roles:    Roles{Initiator: "UNIT-A", Commander: "UNIT-A"},
				Attached: []AttachedUnit{unitA, unitB},
				Trigger:  "UNIT-B",
			},
			wantRoles:    Roles{Initiator: "UNIT-A", Commander: "UNIT-B"},
			wantPromoted: true,
		},
		{
			name: "equal rank does not move command",
			in: CommanderInput{
				Roles:    Roles{Initiator: "UNIT-A", Commander: "UNIT-B"},
				Attached: []AttachedUnit{unitA, unitB, unitC},
				Trigger:  "UNIT-C",
			},
			wantRoles: Roles{Initiator: "UNIT-A", Commander: "UNIT-B"},
		},
		{
			name: "more senior unit moves command again",
			in: CommanderInput{
				Roles:    Roles{Initiator: "UNIT-A", Commander: "UNIT-B"},
				Attached: []AttachedUnit{unitA, unitB, unitD},
				Trigger:  "UNIT-D",
			},
			wantRoles:    Roles{Initiator: "UNIT-A", Commander: "UNIT-D"},
			wantPromoted: true,
		},
		{
			name: "junior trigger never promotes",
			in: CommanderInput{
				Roles:    Roles{Initiator: "UNIT-B", Commander: "UNIT-B"},
				Attached: []AttachedUnit{unitB, unitA},
				Trigger:  "UNIT-A",
			},
			wantRoles: Roles{Initiator: "UNIT-B", Commander: "UNIT-B"},
		},
		{
			name: "senior trigger fills an empty commander",
			in: CommanderInput{
				Attached: []AttachedUnit{unitA, unitB},
				Trigger:  "UNIT-B",
			},
			wantRoles:    Roles{Commander: "UNIT-B"},
			wantPromoted: true,
		},
		{
			name: "dangling commander falls back to initiator",
			in: CommanderInput{
				Roles:    Roles{Initiator: "UNIT-A", Commander: "UNIT-GONE"},
				Attached: []AttachedUnit{unitA},
			},
			wantRoles: Roles{Initiator: "UNIT-A", Commander: "UNIT-A"},
		},
		{
			name: "empty attachment set clears both roles",
			in: CommanderInput{
				Roles: Roles{Initiator: "UNIT-A", Commander: "UNIT-B"},
			},
			wantRoles: Roles{},
		},
		{
			name: "trigger already commanding",
			in: CommanderInput{
				Roles:    Roles{Initiator: "UNIT-A", Commander: "UNIT-B"},
				Attached: []AttachedUnit{unitA, unitB},
				Trigger:  "UNIT-B",
			},
			wantRoles: Roles{Initiator: "UNIT-A", Commander: "UNIT-B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Threshold = rank.DefaultSeniorThreshold
			got := RecomputeCommander(tt.in)

			if got.Roles != tt.wantRoles {
				t.Errorf("Roles = %+v, want %+v", got.Roles, tt.wantRoles)
			}
			if got.Promoted != tt.wantPromoted {
				t.Errorf("Promoted = %v, want %v", got.Promoted, tt.wantPromoted)
			}
		})
	}
}
