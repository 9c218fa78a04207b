// Package version holds the build-time version variables for the
// cloudpulse binary. The zero values are used for local builds; a release
// pipeline injects the real values via -ldflags.
package version

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns the formatted version string printed by `cloudpulse version`.
func Info() string {
	return fmt.Sprintf(
		"cloudpulse version %s\ncommit: %s\nbuilt: %s\n",
		Version,
		Commit,
		Date,
	)
}
