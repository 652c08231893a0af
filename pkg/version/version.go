// Package version exposes build metadata for the running binary.
package version

// Set at build time via -ldflags "-X ...".
var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"
	// Commit is the git revision the binary was built from.
	Commit = "unknown"
	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"
)
