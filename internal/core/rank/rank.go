// Package rank defines the ordered rank scale used to drive leadership.
// This is part of the Functional Core - no I/O, only pure functions.
package rank

import (
	"fmt"
	"strconv"
	"strings"
)

// Rank is a position on the rank scale. Lower values are more senior.
// The zero value is Unranked, which sorts below every named rank.
type Rank int

const (
	Unranked   Rank = 0
	Chief      Rank = 1
	Captain    Rank = 2
	Lieutenant Rank = 3
	Sergeant   Rank = 4
	Corporal   Rank = 5
	Officer    Rank = 6
	Cadet      Rank = 7
)

// DefaultSeniorThreshold is the most junior rank still treated as senior.
const DefaultSeniorThreshold = Sergeant

var names = map[Rank]string{
	Unranked:   "unranked",
	Chief:      "chief",
	Captain:    "captain",
	Lieutenant: "lieutenant",
	Sergeant:   "sergeant",
	Corporal:   "corporal",
	Officer:    "officer",
	Cadet:      "cadet",
}

// String returns the lowercase rank name.
func (r Rank) String() string {
	if n, ok := names[r]; ok {
		return n
	}
	return fmt.Sprintf("rank(%d)", int(r))
}

// Valid reports whether r is Unranked or a named rank.
func (r Rank) Valid() bool {
	_, ok := names[r]
	return ok
}

// Parse accepts a rank name (case-insensitive) or its numeric value.
func Parse(s string) (Rank, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Unranked, fmt.Errorf("rank is required")
	}
	for r, n := range names {
		if n == s {
			return r, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Rank(n).Valid() {
		return Rank(n), nil
	}
	return Unranked, fmt.Errorf("unknown rank %q", s)
}

// seniority maps Unranked past every named rank so comparisons stay a strict order.
func seniority(r Rank) int {
	if r == Unranked {
		return int(Cadet) + 1
	}
	return int(r)
}

// MoreSenior reports whether a strictly outranks b.
func MoreSenior(a, b Rank) bool {
	return seniority(a) < seniority(b)
}

// AtLeast reports whether a is as senior as b or more.
func AtLeast(a, b Rank) bool {
	return seniority(a) <= seniority(b)
}

// IsSenior reports whether r is at or above the senior threshold.
func IsSenior(r, threshold Rank) bool {
	return r != Unranked && AtLeast(r, threshold)
}

// MostSenior returns the most senior rank in ranks, or Unranked when empty.
func MostSenior(ranks []Rank) Rank {
	best := Unranked
	for _, r := range ranks {
		if MoreSenior(r, best) {
			best = r
		}
	}
	return best
}
