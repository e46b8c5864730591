package unit

import (
	"github.com/example/dispatch/internal/core/player"
	"github.com/example/dispatch/internal/core/rank"
)

// Member pairs a member's name with its rank for leadership planning.
type Member struct {
	Name string
	Rank rank.Rank
}

// StatusAssignment is a member status the caller must apply.
type StatusAssignment struct {
	Name   string
	Status player.Status
}

// LeadershipPlan is the outcome of a leadership recompute.
type LeadershipPlan struct {
	Leading  bool
	Statuses []StatusAssignment
}

// IsLeading reports whether a unit leads: explicitly requested, or carrying
// at least one senior-ranked member.
func IsLeading(requested bool, members []Member, threshold rank.Rank) bool {
	if requested {
		return true
	}
	for _, m := range members {
		if rank.IsSenior(m.Rank, threshold) {
			return true
		}
	}
	return false
}

// PlanLeadership recomputes the leadership flag and every member's status.
// Each status is leading when the flag is set and the member is senior,
// on-duty otherwise.
func PlanLeadership(requested bool, members []Member, threshold rank.Rank) LeadershipPlan {
	plan := LeadershipPlan{Leading: IsLeading(requested, members, threshold)}
	plan.Statuses = make([]StatusAssignment, len(members))
	for i, m := range members {
		plan.Statuses[i] = StatusAssignment{
			Name:   m.Name,
			Status: player.MemberStatus(plan.Leading, m.Rank, threshold),
		}
	}
	return plan
}

// BestRank returns the most senior rank among members.
func BestRank(members []Member) rank.Rank {
	ranks := make([]rank.Rank, len(members))
	for i, m := range members {
		ranks[i] = m.Rank
	}
	return rank.MostSenior(ranks)
}
