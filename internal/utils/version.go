package utils

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver"
)

// CheckVersion compares the semver release reported by a daemon against minVersion.
// Build metadata like the commit is ignored, pre-releases rank below their release.
func CheckVersion(name string, version string, minVersion string) error {
	parsed, err := semver.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return fmt.Errorf("could not parse %s version %q: %w", name, version, err)
	}
	minimum, err := semver.NewVersion(minVersion)
	if err != nil {
		return fmt.Errorf("could not parse minimal %s version %q: %w", name, minVersion, err)
	}
	if parsed.LessThan(minimum) {
		return fmt.Errorf("%s %s is older than the minimal supported version %s", name, parsed, minimum)
	}
	return nil
}
