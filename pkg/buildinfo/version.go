// Package buildinfo reports which evotree binary is running.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/evotree/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/evotree/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/evotree/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// A binary installed with go install carries no ldflags; [Resolve] then
// falls back to the module version and VCS stamp embedded by the toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"
	// Commit is the git commit SHA.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// Info is a resolved build stamp.
type Info struct {
	Version string
	Commit  string
	Date    string
}

var resolve = sync.OnceValue(func() Info {
	info, _ := debug.ReadBuildInfo()
	return fromBuildInfo(Info{Version: Version, Commit: Commit, Date: Date}, info)
})

// Resolve returns the build stamp, preferring ldflags over toolchain data.
func Resolve() Info { return resolve() }

func fromBuildInfo(stamp Info, bi *debug.BuildInfo) Info {
	if bi == nil {
		return stamp
	}
	if stamp.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		stamp.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if stamp.Commit == "none" {
				stamp.Commit = s.Value
			}
		case "vcs.time":
			if stamp.Date == "unknown" {
				stamp.Date = s.Value
			}
		}
	}
	return stamp
}

// String returns the formatted build information.
func String() string {
	i := Resolve()
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", i.Version, i.Commit, i.Date)
}

// Template returns the version template string for cobra.
func Template() string {
	i := Resolve()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", i.Version, i.Commit, i.Date)
}
