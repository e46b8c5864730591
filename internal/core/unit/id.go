// Package unit contains the pure business logic for unit operations.
// This is part of the Functional Core - no I/O, only pure functions.
package unit

import "fmt"

// GenerateUnitID generates a unit ID from the last issued number.
// The format is UNIT-XXX where XXX is a zero-padded 3-digit number.
func GenerateUnitID(lastIssued int) string {
	return fmt.Sprintf("UNIT-%03d", lastIssued+1)
}
