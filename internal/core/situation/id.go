// Package situation contains the pure business logic for situation roles.
// This is part of the Functional Core - no I/O, only pure functions.
package situation

import "fmt"

// GenerateSituationID generates a situation ID from the last issued number.
func GenerateSituationID(lastIssued int) string {
	return fmt.Sprintf("SIT-%03d", lastIssued+1)
}
