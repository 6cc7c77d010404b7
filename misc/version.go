// Package misc keeps program identity helpers used all over the place.
package misc

import (
	"runtime/debug"
)

const appName = "bookc"

// GetAppName returns short program name used for logging, temporary
// directories and the like.
func GetAppName() string {
	return appName
}

// GetVersion returns module version recorded in the build info, "devel" when
// program was built outside of module context.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && len(bi.Main.Version) != 0 {
		return bi.Main.Version
	}
	return "devel"
}

// GetGitHash returns VCS revision recorded in the build info.
func GetGitHash() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
