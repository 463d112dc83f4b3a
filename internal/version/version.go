// Package version reports how the webpulse binary was built.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// These variables are set at build time using -ldflags, for example
// -X github.com/conneroisu/webpulse/internal/version.Version=v1.2.0
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

var readBuildInfo = debug.ReadBuildInfo

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit,omitempty"`
	BuildTime time.Time `json:"build_time,omitempty"`
	GoVersion string    `json:"go_version"`
	Platform  string    `json:"platform"`
	Module    string    `json:"module,omitempty"`
	Dirty     bool      `json:"dirty"`
	Release   bool      `json:"release"`
}

// Get collects build information. Values injected with -ldflags win over
// the VCS stamps the Go toolchain embeds.
func Get() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: parseTime(BuildTime),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		info.Module = bi.Main.Path
		if (info.Version == "" || info.Version == "dev") && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = setting.Value
				}
			case "vcs.time":
				if info.BuildTime.IsZero() {
					info.BuildTime = parseTime(setting.Value)
				}
			case "vcs.modified":
				info.Dirty = setting.Value == "true"
			}
		}
	}

	if info.Version == "" {
		info.Version = "dev"
	}
	info.Release = IsRelease(info.Version)

	return info
}

// IsRelease reports whether v is a semantic version without a prerelease
// suffix.
func IsRelease(v string) bool {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.IsValid(v) && semver.Prerelease(v) == "" && semver.Build(v) == ""
}

// Short returns the version with an abbreviated commit.
func (i BuildInfo) Short() string {
	commit := i.GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}

	switch {
	case commit == "":
		return i.Version
	case i.Version == "dev":
		return "dev-" + commit
	default:
		return fmt.Sprintf("%s (%s)", i.Version, commit)
	}
}

// String returns a multi-line description.
func (i BuildInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "webpulse %s", i.Short())
	if i.Dirty {
		b.WriteString(" (dirty)")
	}
	b.WriteString("\n")
	if !i.BuildTime.IsZero() {
		fmt.Fprintf(&b, "Built: %s\n", i.BuildTime.UTC().Format("2006-01-02 15:04:05 UTC"))
	}
	fmt.Fprintf(&b, "Go: %s\n", i.GoVersion)
	fmt.Fprintf(&b, "Platform: %s\n", i.Platform)
	if i.Release {
		b.WriteString("Build type: release\n")
	} else {
		b.WriteString("Build type: development\n")
	}
	return b.String()
}

// parseTime parses an RFC 3339 timestamp, returning the zero time on error.
func parseTime(value string) time.Time {
	if value == "" || value == "unknown" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
