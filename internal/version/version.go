package version

import (
	"fmt"
	"runtime"
	"strings"
)

var (
	// These variables are set during build time
	Version   = "1.0.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// BuildInfo contains build and runtime information.
type BuildInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetBuildInfo returns the build information for the current binary.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// FullVersion returns a formatted string with complete version information.
func FullVersion() string {
	info := GetBuildInfo()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("claude-clear %s\n", info.Version))
	b.WriteString(fmt.Sprintf("  Build Date: %s\n", info.BuildDate))
	b.WriteString(fmt.Sprintf("  Commit:     %s\n", info.GitCommit))
	b.WriteString(fmt.Sprintf("  Go Version: %s\n", info.GoVersion))
	b.WriteString(fmt.Sprintf("  Platform:   %s\n", info.Platform))

	return b.String()
}
