// Package version reports the shopcart build version.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is overridden at build time with -ldflags "-X .../version.Version=...".
var Version = "development"

// Commit is the git commit hash, set the same way as Version.
var Commit = "unknown"

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns the version with the commit appended when known.
func String() string {
	commit := resolveCommit()
	if commit != "unknown" {
		return Version + "+" + commit
	}
	return Version
}

// Full returns the version line printed by the version command.
func Full() string {
	return fmt.Sprintf("shopcart version %s (%s %s/%s)", String(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// resolveCommit falls back to the VCS revision embedded by go build.
func resolveCommit() string {
	if Commit != "unknown" {
		return Commit
	}
	info, ok := readBuildInfo()
	if !ok {
		return Commit
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			if len(s.Value) > 7 {
				return s.Value[:7]
			}
			return s.Value
		}
	}
	return Commit
}
