// Package version provides version information and build metadata for tidy-counts.
//
// Version information comes from, in order of preference:
//   - Compile-time variables (Version, Commit, Date) set via -ldflags
//   - Runtime build info from debug.ReadBuildInfo()
//   - Fallback defaults for development builds
//
// Release builds set the variables with:
//
//	-ldflags "-X github.com/dendrascience/tidy-counts/version.Version=v1.0.0 -X github.com/dendrascience/tidy-counts/version.Commit=abc123"
//
// GetFullVersion is what the CLI shows for --version; PrintVersion backs the
// -version flag of the single-pass binaries under cmd/.
package version
