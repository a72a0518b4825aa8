// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X src.liveui.sh/pkg/buildinfo.Var=value" to "go build" or
// "go get".
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"src.liveui.sh/pkg/prog"
)

// Version identifies the version of liveui. On development commits, it
// identifies the next release.
const Version = "v0.1.0"

// VersionSuffix is appended to Version in the output of "liveui -version" and
// "liveui -buildinfo" to build the full version string. This can be overridden
// when building liveui.
var VersionSuffix = "-dev.unknown"

// Reproducible identifies whether the build is reproducible. This can be
// overridden when building liveui.
var Reproducible = "false"

// Type of the build information, as shown with -buildinfo -json.
type info struct {
	Version      string `json:"version"`
	GoVersion    string `json:"goversion"`
	Reproducible bool   `json:"reproducible"`
}

func currentInfo() info {
	return info{Version + VersionSuffix, runtime.Version(), Reproducible == "true"}
}

// Program is the buildinfo subprogram.
type Program struct{}

// Run prints the version with -version, and the build information with
// -buildinfo.
func (Program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.Version && !f.BuildInfo {
		return prog.ErrNotSuitable
	}
	bi := currentInfo()
	if f.Version {
		if f.JSON {
			fmt.Fprintln(fds[1], mustToJSON(bi.Version))
		} else {
			fmt.Fprintln(fds[1], bi.Version)
		}
		return nil
	}
	if f.JSON {
		fmt.Fprintln(fds[1], mustToJSON(bi))
	} else {
		fmt.Fprintln(fds[1], "Version:", bi.Version)
		fmt.Fprintln(fds[1], "Go version:", bi.GoVersion)
		fmt.Fprintln(fds[1], "Reproducible build:", bi.Reproducible)
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
