// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	App = "shikisync"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent identifies the client to Shikimori, which rejects API requests without one.
	UserAgent = App + "/" + Version
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
