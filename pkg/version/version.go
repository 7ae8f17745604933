// Package version reports the daemon build, set at link time:
//
//	go build -ldflags "-X github.com/ohmyphone/daemon/pkg/version.version=1.2.0 -X github.com/ohmyphone/daemon/pkg/version.buildID=$(git rev-parse --short HEAD)"
package version

//nolint:gochecknoglobals // These are intentionally global for ldflags injection
var (
	version = "dev"
	buildID = "dev"
)

// GetVersion returns the current version
func GetVersion() string {
	return version
}

// GetBuildID returns the current build ID
func GetBuildID() string {
	return buildID
}

// GetFullVersion returns version with build ID
func GetFullVersion() string {
	return version + " (build: " + buildID + ")"
}
