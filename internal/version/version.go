// Package version holds build metadata injected via ldflags.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// UserAgent identifies schemagen in Solr admin requests.
func UserAgent() string {
	return "schemagen/" + Version
}

// String is the one-line build description printed by "schemagen version".
func String() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
