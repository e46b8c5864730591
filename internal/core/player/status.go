// Package player contains the pure business logic for operative records.
// This is part of the Functional Core - no I/O, only pure functions.
package player

import (
	"fmt"
	"strings"

	"github.com/example/dispatch/internal/core/rank"
)

// Status represents the duty state of an operative.
type Status string

const (
	StatusUnassigned Status = "unassigned"
	StatusOnDuty     Status = "on-duty"
	StatusLeading    Status = "leading"
	StatusOffDuty    Status = "off-duty"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusUnassigned, StatusOnDuty, StatusLeading, StatusOffDuty:
		return st, nil
	default:
		return "", fmt.Errorf("unknown status %q (want unassigned, on-duty, leading or off-duty)", s)
	}
}

// InitialStatus returns the status of a freshly created operative.
func InitialStatus() Status {
	return StatusUnassigned
}

// MemberStatus derives a unit member's status from the unit's leadership
// flag and the member's own rank.
func MemberStatus(unitLeading bool, r, threshold rank.Rank) Status {
	if unitLeading && rank.IsSenior(r, threshold) {
		return StatusLeading
	}
	return StatusOnDuty
}

// DetachedStatus is the status an operative takes when it leaves a unit.
func DetachedStatus() Status {
	return StatusUnassigned
}

// IsAvailableForUnit reports whether an operative may join a new unit.
func IsAvailableForUnit(status Status, unitID string) bool {
	if unitID != "" {
		return false
	}
	return status == StatusUnassigned || status == StatusOnDuty
}
