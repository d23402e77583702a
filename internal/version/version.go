// Package version exposes build metadata for the neviweb-cfg binary.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Version and Commit are normally stamped at build time:
//
//	go build -ldflags="-X github.com/nevihome/neviweb/internal/version.Version=v0.4.0 \
//	                   -X github.com/nevihome/neviweb/internal/version.Commit=abc123"
//
// When the ldflags are absent (plain `go install`, local builds) the values
// are recovered from the embedded VCS build info, falling back to a dated
// dev string.
var (
	// Version is the semantic version of the application
	Version = ""
	// Commit is the git commit hash
	Commit = ""
)

func init() {
	if Version == "" || Commit == "" {
		fromBuildInfo()
	}

	if Version == "" {
		Version = fmt.Sprintf("dev-%s", time.Now().Format("20060102-150405"))
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fromBuildInfo fills Version and Commit from the VCS stamps Go embeds
// when the binary is built inside a git checkout.
func fromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}

	if Commit == "" {
		if rev := settings["vcs.revision"]; rev != "" {
			Commit = shortHash(rev)
			if settings["vcs.modified"] == "true" {
				Commit += "-dirty"
			}
		}
	}

	// Build info carries no tags, so derive a dev version from the commit
	// date instead.
	if Version == "" {
		if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
			Version = fmt.Sprintf("dev-%s", t.Format("20060102"))
		}
	}
}

func shortHash(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
