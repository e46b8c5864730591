package player

import (
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

// CreateContext provides context for explicit operative creation.
type CreateContext struct {
	Name   string
	Exists bool
}

// CanCreatePlayer evaluates whether an operative can be created explicitly.
// Rule: Names are required and unique ignoring case.
func CanCreatePlayer(ctx CreateContext) GuardResult {
	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{Code: apperr.CodeInvalidArgument, Reason: "player name is required"}
	}
	if ctx.Exists {
		return GuardResult{Code: apperr.CodeConflict, Reason: "player " + ctx.Name + " already exists"}
	}
	return GuardResult{Allowed: true}
}
