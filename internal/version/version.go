// Package version reports the binary's version from linker flags or the
// embedded build info.
package version

import (
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

const fallbackModule = "pkt.systems/tabdeck"

// release is set via -ldflags "-X pkt.systems/tabdeck/internal/version.release=v1.2.3".
var release string

// Info describes how the running binary was built.
type Info struct {
	Version  string
	Commit   string
	Modified bool
}

// String renders the version, with a +dirty marker for modified trees.
func (i Info) String() string {
	if i.Modified {
		return i.Version + "+dirty"
	}
	return i.Version
}

var resolve = sync.OnceValue(func() Info {
	if v := strings.TrimSpace(release); v != "" {
		return Info{Version: strings.TrimSuffix(v, "+dirty"), Modified: strings.HasSuffix(v, "+dirty")}
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{Version: "v0.0.0-unknown"}
	}
	return fromBuildInfo(info)
})

// Current returns Info for the running binary.
func Current() Info {
	return resolve()
}

// Module returns the main module path, or a compiled-in fallback when build
// info is unavailable.
func Module() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if path := strings.TrimSpace(info.Main.Path); path != "" {
			return path
		}
	}
	return fallbackModule
}

func fromBuildInfo(info *debug.BuildInfo) Info {
	out := Info{Version: strings.TrimSpace(info.Main.Version)}
	var stamp string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			out.Commit = setting.Value
		case "vcs.time":
			stamp = setting.Value
		case "vcs.modified":
			out.Modified = setting.Value == "true"
		}
	}
	if out.Version != "" && out.Version != "(devel)" {
		return out
	}
	out.Version = pseudoVersion(out.Commit, stamp)
	return out
}

// pseudoVersion builds a v0.0.0 pseudo-version from the VCS stamp, matching
// what go install would record for an untagged commit.
func pseudoVersion(revision, stamp string) string {
	if revision == "" || stamp == "" {
		return "v0.0.0-unknown"
	}
	at, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return "v0.0.0-unknown"
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	return "v0.0.0-" + at.UTC().Format("20060102150405") + "-" + revision
}
