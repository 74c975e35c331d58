// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths and CLI branding.
	App = "avbridge"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is sent with requests to the extended track metadata service.
	UserAgent = "avbridge/" + Version
)

// Build metadata, overridden through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
