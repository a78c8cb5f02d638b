// Package version provides build-time version information for binaries
// built from the facet module.
//
// This package exposes:
//   - Application version (from git tags or module build info)
//   - Git branch and commit information
//   - Build timestamp
//   - Go version used for compilation
//
// # Version Variables
//
// These variables are set at build time using ldflags:
//
//	var (
//	    Version  = "0.0.0"   // Semantic version from git tags
//	    Branch   = "unknown" // Git branch name
//	    Revision = "unknown" // Git commit hash (short)
//	    BuiltAt  = "unknown" // Build timestamp
//	)
//
// # Build Integration
//
// Set version information during build with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/facet/version.Version=1.2.3 \
//	  -X github.com/ncobase/facet/version.Branch=main \
//	  -X github.com/ncobase/facet/version.Revision=abc123 \
//	  -X 'github.com/ncobase/facet/version.BuiltAt=$(date)'"
//
// When the variables are left at their defaults, GetVersionInfo falls
// back to the VCS metadata the Go toolchain embeds in the binary.
//
// # Retrieving Version Info
//
// Get structured version information:
//
//	info := version.GetVersionInfo()
//	fmt.Printf("Version: %s\n", info.Version)
//
// Print a human-readable form:
//
//	version.Print()
package version
