// Package version exposes build-time version information.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is set via ldflags in release builds:
// go build -ldflags "-X git.home.luguber.info/inful/portfolio/internal/version.Version=v1.0.0".
var Version = "unknown"

// Build metadata, also set via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Resolved returns Version, falling back to the main module version recorded
// by the Go toolchain when ldflags were not used.
func Resolved() string {
	if Version != "unknown" && Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// String is the one line shown by --version.
func String() string {
	return fmt.Sprintf("portfolio %s (commit %s, built %s)", Resolved(), GitCommit, BuildTime)
}
