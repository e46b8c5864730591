package unit

import (
	"testing"

	"github.com/example/dispatch/internal/core/player"
	"github.com/example/dispatch/internal/core/rank"
)

func TestPlanLeadership(t *testing.T) {
	tests := []struct {
		name         string
		requested    bool
		members      []Member
		wantLeading  bool
		wantStatuses []player.Status
	}{
		{
			name:         "officer only is not leading",
			members:      []Member{{Name: "Alice", Rank: rank.Officer}},
			wantLeading:  false,
			wantStatuses: []player.Status{player.StatusOnDuty},
		},
		{
			name:         "sergeant makes unit leading",
			members:      []Member{{Name: "Bob", Rank: rank.Sergeant}},
			wantLeading:  true,
			wantStatuses: []player.Status{player.StatusLeading},
		},
		{
			name:         "mixed unit only promotes the senior member",
			members:      []Member{{Name: "Alice", Rank: rank.Officer}, {Name: "Bob", Rank: rank.Lieutenant}},
			wantLeading:  true,
			wantStatuses: []player.Status{player.StatusOnDuty, player.StatusLeading},
		},
		{
			name:         "explicit request without senior member",
			requested:    true,
			members:      []Member{{Name: "Alice", Rank: rank.Officer}},
			wantLeading:  true,
			wantStatuses: []player.Status{player.StatusOnDuty},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := PlanLeadership(tt.requested, tt.members, rank.DefaultSeniorThreshold)

			if plan.Leading != tt.wantLeading {
				t.Errorf("Leading = %v, want %v", plan.Leading, tt.wantLeading)
			}
			if len(plan.Statuses) != len(tt.wantStatuses) {
				t.Fatalf("got %d statuses, want %d", len(plan.Statuses), len(tt.wantStatuses))
			}
			for i, want := range tt.wantStatuses {
				if plan.Statuses[i].Status != want {
					t.Errorf("status[%d] (%s) = %q, want %q", i, plan.Statuses[i].Name, plan.Statuses[i].Status, want)
				}
			}
		})
	}
}

func TestBestRank(t *testing.T) {
	members := []Member{{Name: "a", Rank: rank.Officer}, {Name: "b", Rank: rank.Corporal}}
	if got := BestRank(members); got != rank.Corporal {
		t.Errorf("BestRank() = %v, want corporal", got)
	}
	if got := BestRank(nil); got != rank.Unranked {
		t.Errorf("BestRank(nil) = %v, want unranked", got)
	}
}
