// Package version exposes build metadata injected at link time.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Set via -ldflags "-X github.com/rshade/tablekit/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Populated by the linker.
var (
	version   = "0.0.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the normalized semantic version, or the raw string when
// it does not parse.
func GetVersion() string {
	return Normalize(version)
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// Normalize strips a leading "v" and canonicalizes a semantic version such as
// "v1.2" to "1.2.0". Unparseable input is returned trimmed but otherwise unchanged.
func Normalize(v string) string {
	v = strings.TrimSpace(v)
	sv, err := semver.NewVersion(v)
	if err != nil {
		return v
	}
	return sv.String()
}

// IsPrerelease reports whether v carries a prerelease tag such as "-dev" or "-rc.1".
func IsPrerelease(v string) bool {
	sv, err := semver.NewVersion(v)
	return err == nil && sv.Prerelease() != ""
}

// String is the one-line form printed by the version command.
func String() string {
	return fmt.Sprintf("tablekit %s (commit %s, built %s)", GetVersion(), gitCommit, buildDate)
}
