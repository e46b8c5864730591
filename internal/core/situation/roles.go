package situation

import (
	"slices"

	"github.com/example/dispatch/internal/core/rank"
)

// Roles holds the two distinguished unit roles of a situation.
type Roles struct {
	Initiator string
	Commander string
}

// AttachedUnit is an attached unit summarized for role planning.
type AttachedUnit struct {
	UnitID   string
	BestRank rank.Rank // most senior member rank, Unranked for none
}

// ApplyAttach returns the roles after unitID joins the attachment set.
// The unit becomes initiator when the set was empty before the attach or
// when asInitiator is set. An unset commander defaults to the initiator.
func ApplyAttach(roles Roles, unitID string, wasEmpty, asInitiator bool) Roles {
	if wasEmpty || asInitiator {
		roles.Initiator = unitID
	}
	if roles.Commander == "" {
		roles.Commander = roles.Initiator
	}
	return roles
}

// ApplyDetach returns the roles after unitID leaves the attachment set.
// A detached initiator is cleared; a detached commander reverts to the
// (possibly empty) initiator.
func ApplyDetach(roles Roles, unitID string) Roles {
	if roles.Initiator == unitID {
		roles.Initiator = ""
	}
	if roles.Commander == unitID {
		roles.Commander = roles.Initiator
	}
	return roles
}

// CommanderInput is everything RecomputeCommander needs, pre-fetched by the caller.
type CommanderInput struct {
	Roles     Roles
	Attached  []AttachedUnit // attachment order
	Trigger   string         // unit just attached or whose member rank changed
	Threshold rank.Rank
}

// CommanderResult is the outcome of a commander recompute.
type CommanderResult struct {
	Roles Roles
	// Promoted is set when Trigger took over command. The caller must then
	// raise the trigger unit's leadership flag.
	Promoted bool
}

// RecomputeCommander repairs dangling role pointers and runs the promotion scan.
//
// A role pointing at a unit that is no longer attached is cleared (commander
// falls back to the initiator). Then, when the trigger unit carries a senior
// member that strictly outranks the current commander's best member, command
// moves to the trigger unit. Equal rank never moves command.
func RecomputeCommander(in CommanderInput) CommanderResult {
	roles := in.Roles
	byID := make(map[string]AttachedUnit, len(in.Attached))
	for _, u := range in.Attached {
		byID[u.UnitID] = u
	}

	if _, ok := byID[roles.Initiator]; !ok {
		roles.Initiator = ""
	}
	if _, ok := byID[roles.Commander]; !ok {
		roles.Commander = roles.Initiator
	}
	if len(in.Attached) == 0 {
		return CommanderResult{Roles: Roles{}}
	}

	trigger, ok := byID[in.Trigger]
	if !ok || !rank.IsSenior(trigger.BestRank, in.Threshold) {
		return CommanderResult{Roles: roles}
	}
	if roles.Commander == trigger.UnitID {
		return CommanderResult{Roles: roles}
	}
	if current, ok := byID[roles.Commander]; ok && rank.AtLeast(current.BestRank, trigger.BestRank) {
		return CommanderResult{Roles: roles}
	}

	roles.Commander = trigger.UnitID
	return CommanderResult{Roles: roles, Promoted: true}
}

// IsAttached reports whether unitID is in the attachment list.
func IsAttached(attached []string, unitID string) bool {
	return slices.Contains(attached, unitID)
}
