// Package channel contains the pure business logic for the radio channel pool.
// This is part of the Functional Core - no I/O, only pure functions.
package channel

import (
	"fmt"
	"strings"
)

// MetadataKey is the situation metadata field that names a channel.
const MetadataKey = "channel"

// DefaultPool is the channel pool used when none is configured.
var DefaultPool = []string{"TAC-1", "TAC-2", "TAC-3", "TAC-4"}

// GenerateChannelID generates a channel ID from its pool position.
func GenerateChannelID(index int) string {
	return fmt.Sprintf("CH-%02d", index+1)
}

// State is a channel as seen by the reconciler.
type State struct {
	ID          string
	Name        string
	SituationID string
}

// SituationRef is a situation as seen by the reconciler. Callers pass
// situations in creation order.
type SituationRef struct {
	ID       string
	Active   bool
	Metadata map[string]string
}

// Binding is a channel pointer change the caller must apply. An empty
// SituationID frees the channel.
type Binding struct {
	ChannelID   string
	SituationID string
}

// Reconcile computes the channel bindings implied by situation metadata.
// A channel stays with its current situation while that situation is active
// and still names it; otherwise it goes to the earliest active situation
// naming it (case-insensitive), or is freed. Only changed channels are returned.
func Reconcile(channels []State, situations []SituationRef) []Binding {
	first := make(map[string]string)
	claims := make(map[string]bool)
	for _, s := range situations {
		if !s.Active {
			continue
		}
		name := normalize(s.Metadata[MetadataKey])
		if name == "" {
			continue
		}
		claims[name+"/"+s.ID] = true
		if _, taken := first[name]; !taken {
			first[name] = s.ID
		}
	}

	var changes []Binding
	for _, c := range channels {
		name := normalize(c.Name)
		if c.SituationID != "" && claims[name+"/"+c.SituationID] {
			continue
		}
		if want := first[name]; want != c.SituationID {
			changes = append(changes, Binding{ChannelID: c.ID, SituationID: want})
		}
	}
	return changes
}

// ValidatePool rejects empty or duplicate channel names.
func ValidatePool(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("channel pool is empty")
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		key := normalize(n)
		if key == "" {
			return fmt.Errorf("channel name is empty")
		}
		if seen[key] {
			return fmt.Errorf("duplicate channel name %q", n)
		}
		seen[key] = true
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
