// Package version reports build information injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/example/dispatch/internal/version.Commit=$(git rev-parse HEAD)"
package version

import "fmt"

// These variables are set at build time via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version line shown by "dispatch --version".
func String() string {
	return fmt.Sprintf("dispatch %s (commit: %s, built: %s)", Version, shortCommit(), BuildTime)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
