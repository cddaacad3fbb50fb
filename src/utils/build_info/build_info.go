package build_info

// Set during building with ldflags
var (
	Version   = "dev"
	BuildDate = "unknown"
)
