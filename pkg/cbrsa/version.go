package cbrsa

var (
	Version = "v0.0.0-in-progress"
	Commit  = "unknown"
)

// ModuleVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func ModuleVersion() string {
	return Version
}

// BuildCommit returns the commit the binary was built from, or "unknown".
func BuildCommit() string {
	return Commit
}
