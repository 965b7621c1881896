package version

import (
	"fmt"
	"runtime"
)

// Build information, set via -ldflags "-X github.com/soxofaan/jsonfold/pkg/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info holds version information
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns version information
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// GetVersion returns just the version string
func GetVersion() string {
	return Version
}

func (i Info) String() string {
	return fmt.Sprintf("jsonfold version %s\ncommit: %s\nbuilt: %s\ngo: %s\nplatform: %s",
		i.Version, i.Commit, i.Date, i.GoVersion, i.Platform)
}
