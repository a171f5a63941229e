package app

import "fmt"

// Set via ldflags, e.g.
//
//	go build -ldflags "-X github.com/heartmarshall/flashcard-tutor/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildInfo is the machine-readable form of the build variables.
type BuildInfo struct {
	Version   string `json:"version"   yaml:"version"`
	Commit    string `json:"commit"    yaml:"commit"`
	BuildTime string `json:"buildTime" yaml:"build_time"`
}

// Info returns the current build variables.
func Info() BuildInfo {
	return BuildInfo{Version: Version, Commit: Commit, BuildTime: BuildTime}
}

// BuildVersion formats the build variables for startup logs and the CLI.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
