// Package version exposes the linter's build-time version string.
package version

import "runtime"

var version = "dev"

// Version returns the current version string.
func Version() string {
	return version
}

// GoVersion returns the Go toolchain version used for the build.
func GoVersion() string {
	return runtime.Version()
}
