// Package version holds the build version, set at link time with
// -ldflags "-X github.com/usestring/schemamap/internal/version.Version=v1.2.3".
package version

// Version is the release version of the schemamap binaries.
var Version = "dev"
