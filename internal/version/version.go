// Package version carries build metadata stamped in by the linker.
package version

import "fmt"

// Set with -ldflags "-X github.com/dkoosis/regdash/internal/version.Version=..."
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String formats the build metadata for `regdash version`.
func String() string {
	return fmt.Sprintf("regdash %s (commit %s, built %s)", Version, CommitHash, BuildDate)
}
