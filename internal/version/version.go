package version

// Build information set by ldflags:
//
//	-X github.com/arthur-debert/winregi/internal/version.Version={{.Version}}
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
