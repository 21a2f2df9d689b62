// Package misc keeps build and identity helpers with no dependencies on the
// rest of the program.
package misc

import "runtime/debug"

// set by the build (-ldflags "-X refx/misc.version=... -X refx/misc.gitHash=...")
var (
	version = "dev"
	gitHash = ""
)

// GetAppName returns program name used in logs, reports and cache paths.
func GetAppName() string {
	return "refx"
}

// GetVersion returns program version set at build time or module version when
// installed with "go install".
func GetVersion() string {
	if version != "dev" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}

// GetGitHash returns vcs revision recorded in the binary.
func GetGitHash() string {
	if len(gitHash) != 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
