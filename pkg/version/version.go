// Package version holds build metadata for projtext.
package version

import (
	"fmt"
	"runtime"
)

// AppName is the name reported in logs, reports and version output.
const AppName = "projtext"

// Set with -ldflags "-X projtext/pkg/version.Version=1.2.3" and likewise for
// Commit and BuildTime.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string
}

// Get collects the build variables and the Go runtime details.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Generator is the short identifier written into run reports,
// e.g. "projtext 1.2.3".
func (i Info) Generator() string {
	return AppName + " " + i.Version
}

// String renders Info on one line, e.g.
// projtext version 1.2.3 (commit: abcdefg) built at 2024-04-27T15:04:05Z with go1.23.1 on linux/amd64
func (i Info) String() string {
	return fmt.Sprintf("%s version %s (commit: %s) built at %s with %s on %s",
		AppName, i.Version, i.GitCommit, i.BuildTime, i.GoVersion, i.Platform)
}
