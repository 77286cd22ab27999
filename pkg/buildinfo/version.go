// Package buildinfo holds version metadata injected at build time.
package buildinfo

import "fmt"

// Populated via -ldflags at release build time; the defaults identify a
// development build.
var (
	Version = "dev"     // semantic version (e.g., "v1.2.3")
	Commit  = "none"    // git commit SHA
	Date    = "unknown" // build timestamp
)

// String returns a single-line human-readable version description.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
