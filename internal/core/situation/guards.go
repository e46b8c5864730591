package situation

import (
	"fmt"
	"strings"

	"github.com/example/dispatch/internal/apperr"
)

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

// CanCreateSituation evaluates whether a situation can be created.
// Rule: A type tag is required.
func CanCreateSituation(situationType string) GuardResult {
	if strings.TrimSpace(situationType) == "" {
		return GuardResult{Code: apperr.CodeInvalidArgument, Reason: "situation type is required"}
	}
	return GuardResult{Allowed: true}
}

// CommanderContext provides context for an explicit commander assignment.
type CommanderContext struct {
	SituationID string
	UnitID      string
	Attached    []string
}

// CanSetCommander evaluates whether a unit can be made commander.
// Rule: The commander must be attached to the situation.
func CanSetCommander(ctx CommanderContext) GuardResult {
	if !IsAttached(ctx.Attached, ctx.UnitID) {
		return GuardResult{
			Code:   apperr.CodeConflict,
			Reason: fmt.Sprintf("unit %s is not attached to %s", ctx.UnitID, ctx.SituationID),
		}
	}
	return GuardResult{Allowed: true}
}

// DetachContext provides context for detaching a unit.
type DetachContext struct {
	SituationID string
	UnitID      string
	Attached    []string
}

// CanDetachUnit evaluates whether a unit can be detached.
// Rule: Only attached units can be detached.
func CanDetachUnit(ctx DetachContext) GuardResult {
	if !IsAttached(ctx.Attached, ctx.UnitID) {
		return GuardResult{
			Code:   apperr.CodeNotFound,
			Reason: fmt.Sprintf("unit %s is not attached to %s", ctx.UnitID, ctx.SituationID),
		}
	}
	return GuardResult{Allowed: true}
}
