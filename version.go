package statmeta

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the semantic version of the statmeta library.
const Version = "0.1.0"

// VersionInfo describes the running build.
type VersionInfo struct {
	// Version is the semantic version (e.g., "0.1.0")
	Version string
	// GitCommit is the VCS revision the binary was built from
	GitCommit string
	// BuildTime is the build or commit timestamp
	BuildTime string
	// GoVersion is the Go version used to build
	GoVersion string
}

// String formats the info on one line.
func (v VersionInfo) String() string {
	return fmt.Sprintf("statmeta %s (commit %s, built %s, %s)",
		v.Version, v.GitCommit, v.BuildTime, v.GoVersion)
}

// GetVersionInfo returns detailed version information.
//
// GitCommit and BuildTime come from -ldflags when set:
//
//	go build -ldflags="-X github.com/simonhull/statmeta.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/statmeta.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Otherwise they fall back to the VCS stamp embedded by the go command, and
// to "unknown" when there is none.
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "unknown":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildTime == "unknown":
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

// Variables populated at build time via -ldflags.
var (
	gitCommit = "unknown"
	buildTime = "unknown"
)
