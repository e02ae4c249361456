// Package build holds version information stamped in at link time.
package build

import "fmt"

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("fwrelease %s (commit %s, built %s)", Version, Commit, BuildDate)
}
