package version

import (
	"runtime/debug"
	"strings"
	"time"
)

// Stamped by release builds:
//
//	go build -ldflags "-X .../version.Version=v1.4.0 -X .../version.Commit=8f2c91d -X .../version.Date=2026-08-01T10:00:00Z"
//
// Local and go-install builds leave these empty and Current falls back
// to the VCS stamp baked into the binary.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Build identifies the running binary.
type Build struct {
	// Version is the release tag, or "dev" for unstamped builds.
	Version string `json:"version"`
	// Commit is the short VCS revision.
	Commit string `json:"commit,omitempty"`
	// Date is the build timestamp in RFC 3339.
	Date string `json:"date,omitempty"`
	// Go is the toolchain that produced the binary.
	Go string `json:"go,omitempty"`
	// Dirty marks builds from a tree with uncommitted changes.
	Dirty bool `json:"dirty,omitempty"`
}

// Current resolves the build identity. Values stamped via ldflags win;
// missing ones are filled from debug.ReadBuildInfo when available.
func Current() Build {
	b := Build{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	b.Go = info.GoVersion

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = shortCommit(s.Value)
			}
		case "vcs.time":
			if b.Date == "" {
				b.Date = s.Value
			}
		case "vcs.modified":
			b.Dirty = s.Value == "true"
		}
	}
	return b
}

// Released reports whether this is a stamped release build.
func (b Build) Released() bool {
	return b.Version != "dev" && !b.Dirty
}

// String renders the identity for --version output:
// "v1.4.0 (8f2c91d, built 2026-08-01)" with unknown parts omitted.
func (b Build) String() string {
	var sb strings.Builder
	sb.WriteString(b.Version)
	if b.Dirty {
		sb.WriteString("-dirty")
	}

	var extra []string
	if b.Commit != "" {
		extra = append(extra, b.Commit)
	}
	if day := buildDay(b.Date); day != "" {
		extra = append(extra, "built "+day)
	}
	if len(extra) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(extra, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// buildDay reduces an RFC 3339 timestamp to its date, empty on any
// other input.
func buildDay(date string) string {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
