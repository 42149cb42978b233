package version

import (
	"fmt"
	"runtime"
)

// Name is the binary name used in version strings and the User-Agent
const Name = "ghpr"

// Build information, set at build time via ldflags:
//
//	-X github.com/teranos/ghpr/version.Version=v1.2.0
var (
	CommitHash = "dev"
	BuildTime  = "unknown"
	Version    = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", Name, i.Version, i.Short(), i.BuildTime)
}

// Short returns the commit hash truncated to 7 characters
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

// UserAgent is sent with every GitHub API request, which GitHub requires
func (i Info) UserAgent() string {
	return fmt.Sprintf("%s/%s (%s)", Name, i.Version, i.Platform)
}
