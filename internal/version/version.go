// Package version exposes the build version of the divelink tools.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Version and Commit can be injected at build time:
//
//	go build -ldflags="-X github.com/divelog/divelink/internal/version.Version=v1.2.3 \
//	                   -X github.com/divelog/divelink/internal/version.Commit=abc123"
//
// Without ldflags they are derived from the VCS stamp Go embeds when
// building inside a repository, falling back to a timestamped dev version.
var (
	Version = ""
	Commit  = ""
)

func init() {
	if Version == "" || Commit == "" {
		fromBuildInfo()
	}
	if Version == "" {
		Version = "dev-" + time.Now().Format("20060102-150405")
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fromBuildInfo fills in whatever the VCS stamp provides. Tags are not part
// of the build info, so the version can only be derived from the commit date.
func fromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}

	if rev := settings["vcs.revision"]; Commit == "" && rev != "" {
		if len(rev) > 7 {
			rev = rev[:7]
		}
		if settings["vcs.modified"] == "true" {
			rev += "-dirty"
		}
		Commit = rev
	}

	if Version == "" {
		if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
			Version = "dev-" + t.Format("20060102")
		}
	}
}

// Full returns the version together with the commit hash.
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
