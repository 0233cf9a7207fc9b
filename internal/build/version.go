package build

// Commit is set via ldflags and ends up as semver build metadata
var Commit string

var Version = "0.1.0"

// GetVersion returns the release as semver, e.g. v0.1.0+5f3a2c1
func GetVersion() string {
	if Commit == "" {
		return "v" + Version
	}
	return "v" + Version + "+" + Commit
}
