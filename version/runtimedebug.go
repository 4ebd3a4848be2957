// Package version reports what the running binary was built from.
package version

import (
	"errors"
	"runtime/debug"
)

var ErrNoBuildInfo = errors.New("build info is not available")

// develVersion is reported for binaries built outside module mode or from a
// working tree.
const develVersion = "(devel)"

// BuildInfo returns the build information
func BuildInfo() (*debug.BuildInfo, error) {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return nil, ErrNoBuildInfo
	}

	return bi, nil
}

// Version returns the main module version of the binary.
func Version() string {
	bi, err := BuildInfo()
	if err != nil || bi.Main.Version == "" {
		return develVersion
	}
	return bi.Main.Version
}

// Settings returns the build settings (vcs revision, GOOS, flags...) by key.
func Settings() map[string]string {
	res := make(map[string]string)

	bi, err := BuildInfo()
	if err != nil {
		return res
	}

	for _, s := range bi.Settings {
		res[s.Key] = s.Value
	}
	return res
}
