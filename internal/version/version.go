// Package version provides build-time version information.
//
// Variables are set at build time via ldflags:
//
//	go build -ldflags "-X github.com/rickgao/homesale-sim/internal/version.Version=1.0.0 \
//	                   -X github.com/rickgao/homesale-sim/internal/version.Commit=$(git rev-parse --short HEAD)" \
//	    ./cmd/simulator
package version

import "log/slog"

// Build-time variables (set via ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info is a snapshot of the build variables.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
}

// Get returns the current build info.
func Get() Info {
	return Info{Version: Version, Commit: Commit, BuildTime: BuildTime}
}

// String returns a formatted version string.
func (i Info) String() string {
	return i.Version + " (" + i.Commit + ") built " + i.BuildTime
}

// LogValue groups the build info under one slog key.
func (i Info) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("version", i.Version),
		slog.String("commit", i.Commit),
		slog.String("built", i.BuildTime),
	)
}
