// Package version exposes the build version of the carbonpilot binary.
package version

// ver is overridden at build time via
// -ldflags "-X github.com/carbonpilot/carbonpilot/pkg/version.ver=v1.2.3".
var ver = "dev" //nolint:gochecknoglobals // Set by the linker

// GetVersion returns the version string baked into the binary.
func GetVersion() string {
	return ver
}
