// Package build holds version metadata injected at link time.
package build

// These are set via -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
