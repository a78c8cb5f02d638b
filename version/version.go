package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// These variables are set during build time
var (
	// Version is the current version
	Version = "0.0.0"

	// Branch is current branch name the code is built off.
	Branch = "unknown"

	// Revision is the short commit hash of source tree
	Revision = "unknown"

	// BuiltAt is the build time
	BuiltAt = "unknown"
)

// Info contains version information
type Info struct {
	Version   string `json:"version"`
	Branch    string `json:"branch"`
	Revision  string `json:"revision"`
	BuiltAt   string `json:"builtAt"`
	GoVersion string `json:"goVersion"`
}

// GetVersionInfo returns version information, falling back to the
// module build info embedded by the Go toolchain when the link-time
// variables were not set.
func GetVersionInfo() Info {
	version := Version
	revision := Revision
	builtAt := BuiltAt

	if info, ok := debug.ReadBuildInfo(); ok {
		if version == "0.0.0" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if revision == "unknown" && len(setting.Value) >= 7 {
					revision = setting.Value[:7]
				}
			case "vcs.time":
				if builtAt == "unknown" {
					builtAt = setting.Value
				}
			}
		}
	}

	if builtAt == "unknown" {
		builtAt = time.Now().Format(time.RFC3339)
	}

	return Info{
		Version:   version,
		Branch:    Branch,
		Revision:  revision,
		BuiltAt:   builtAt,
		GoVersion: runtime.Version(),
	}
}

// String returns a string representation of version information
func (i Info) String() string {
	return fmt.Sprintf("Version: %s\nBranch: %s\nRevision: %s\nBuilt At: %s\nGo Version: %s",
		i.Version, i.Branch, i.Revision, i.BuiltAt, i.GoVersion)
}

// JSON returns a JSON representation of version information
func (i Info) JSON() (string, error) {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Print prints version information to stdout
func Print() {
	fmt.Println(GetVersionInfo().String())
}
