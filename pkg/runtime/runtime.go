package runtime

// Set via ldflags at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	Timestamp = "unknown"
)
