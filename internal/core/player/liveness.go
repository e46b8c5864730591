package player

import (
	"strings"
	"time"
)

// Sentinel coordinates mark an administratively created operative with no
// physical position. Such operatives never expire.
const (
	SentinelX = -1e9
	SentinelY = -1e9
)

// IsSentinel reports whether (x, y) is the reserved sentinel pair.
func IsSentinel(x, y float64) bool {
	return x == SentinelX && y == SentinelY
}

// NormalizeName returns the case-insensitive registry key for a name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AliveContext carries the fields needed to decide liveness.
type AliveContext struct {
	X, Y       float64
	LastUpdate time.Time
	Now        time.Time
	TTL        time.Duration
}

// IsAlive reports whether an operative is alive at ctx.Now.
// Sentinel-position operatives are always alive.
func IsAlive(ctx AliveContext) bool {
	if IsSentinel(ctx.X, ctx.Y) {
		return true
	}
	return ctx.Now.Sub(ctx.LastUpdate) <= ctx.TTL
}

// IsIdle reports whether the last activity is older than awayAfter.
func IsIdle(lastActivity, now time.Time, awayAfter time.Duration) bool {
	return awayAfter > 0 && now.Sub(lastActivity) > awayAfter
}
