// Package version exposes build version information.
package version

import (
	"fmt"
	"runtime"
)

// version is overridden at build time via
// -ldflags "-X github.com/HerbHall/dockpulse/internal/version.version=v1.2.3".
var version = "dev"

// Short returns the bare version string.
func Short() string {
	return version
}

// Info returns a human-readable version line.
func Info() string {
	return fmt.Sprintf("dockpulse %s (%s/%s)", version, runtime.GOOS, runtime.GOARCH)
}
