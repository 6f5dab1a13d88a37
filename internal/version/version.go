package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/palchukovsky/logreader/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/palchukovsky/logreader/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/palchukovsky/logreader/internal/version.Date={{.Date}}
)

// String renders the build information on three lines
func String(app string) string {
	return fmt.Sprintf("%s version %s\n  commit: %s\n  built:  %s\n", app, Version, Commit, Date)
}
