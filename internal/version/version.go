package version

// Build information, overridden at link time:
//
//	-X github.com/arthur-debert/packdeps/internal/version.Version=v1.2.3
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
