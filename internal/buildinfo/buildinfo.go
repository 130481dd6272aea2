// Package buildinfo identifies the running binary in window titles and logs.
package buildinfo

import "runtime/debug"

// Set at build time via -ldflags "-X tangerine/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = ""
)

// Short returns the release version, else a short VCS revision, else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if c := commit(); c != "" {
		if len(c) > 7 {
			c = c[:7]
		}
		return c
	}
	return "dev"
}

func commit() string {
	if Commit != "" {
		return Commit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
