package unit

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/example/dispatch/internal/apperr"
	"github.com/example/dispatch/internal/core/player"
)

// DefaultMarkingMaxLen is the default bound on a unit marking.
const DefaultMarkingMaxLen = 8

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Code    apperr.Code
	Reason  string
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return apperr.New(r.Code, r.Reason)
}

func deny(code apperr.Code, format string, args ...any) GuardResult {
	return GuardResult{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// MemberCandidate describes a prospective member, pre-fetched by the caller.
type MemberCandidate struct {
	Name   string
	Exists bool
	UnitID string // current membership, empty if unaffiliated
}

// MarkingContext provides context for marking validation.
type MarkingContext struct {
	Marking      string
	MaxLen       int
	MarkingTaken bool
}

// CreateContext provides context for unit creation guards.
type CreateContext struct {
	MarkingContext
	Members []MemberCandidate
}

// CanUseMarking evaluates whether a marking is acceptable for a unit.
// Rule: Markings are required, bounded in length and unique among live units.
func CanUseMarking(ctx MarkingContext) GuardResult {
	marking := strings.TrimSpace(ctx.Marking)
	if marking == "" {
		return deny(apperr.CodeInvalidArgument, "unit marking is required")
	}
	maxLen := ctx.MaxLen
	if maxLen <= 0 {
		maxLen = DefaultMarkingMaxLen
	}
	if utf8.RuneCountInString(marking) > maxLen {
		return deny(apperr.CodeConflict, "marking %q exceeds %d characters", marking, maxLen)
	}
	if ctx.MarkingTaken {
		return deny(apperr.CodeConflict, "marking %q is already in use", marking)
	}
	return GuardResult{Allowed: true}
}

// CanCreateUnit evaluates whether a unit can be created with the given members.
// Rule: At least one member; every member exists, appears once and belongs to no unit.
func CanCreateUnit(ctx CreateContext) GuardResult {
	if r := CanUseMarking(ctx.MarkingContext); !r.Allowed {
		return r
	}
	if len(ctx.Members) == 0 {
		return deny(apperr.CodeConflict, "a unit needs at least one member")
	}

	seen := make(map[string]bool, len(ctx.Members))
	for _, m := range ctx.Members {
		key := player.NormalizeName(m.Name)
		if seen[key] {
			return deny(apperr.CodeConflict, "player %s listed more than once", m.Name)
		}
		seen[key] = true

		if r := CanAddMember(AddMemberContext{Candidate: m}); !r.Allowed {
			return r
		}
	}
	return GuardResult{Allowed: true}
}

// AddMemberContext provides context for adding one member to a unit.
type AddMemberContext struct {
	UnitID    string
	Candidate MemberCandidate
}

// CanAddMember evaluates whether a player can join a unit.
// Rule: The player must exist and must not belong to any unit.
func CanAddMember(ctx AddMemberContext) GuardResult {
	m := ctx.Candidate
	if !m.Exists {
		return deny(apperr.CodeNotFound, "player %s not found", m.Name)
	}
	if m.UnitID != "" {
		if m.UnitID == ctx.UnitID {
			return deny(apperr.CodeConflict, "player %s is already a member of %s", m.Name, m.UnitID)
		}
		return deny(apperr.CodeConflict, "player %s already belongs to unit %s", m.Name, m.UnitID)
	}
	return GuardResult{Allowed: true}
}

// RemoveMemberContext provides context for removing a member from a unit.
type RemoveMemberContext struct {
	UnitID   string
	Name     string
	IsMember bool
}

// CanRemoveMember evaluates whether a player can leave a unit.
// Rule: Only current members can be removed.
func CanRemoveMember(ctx RemoveMemberContext) GuardResult {
	if !ctx.IsMember {
		return deny(apperr.CodeNotFound, "player %s is not a member of %s", ctx.Name, ctx.UnitID)
	}
	return GuardResult{Allowed: true}
}
