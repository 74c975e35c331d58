// Package platform detects the host TV platform version from its user agent.
package platform

import (
	"regexp"

	"github.com/anisan-cli/avbridge/version"
	"github.com/samber/mo"
)

var tizenPattern = regexp.MustCompile(`(?i)Tizen (\d+\.\d+)`)

// Version extracts the Tizen version from a user agent string.
func Version(userAgent string) mo.Option[string] {
	m := tizenPattern.FindStringSubmatch(userAgent)
	if len(m) < 2 {
		return mo.None[string]()
	}
	return mo.Some(m[1])
}

// AtLeast reports whether the platform is unknown or not older than min.
// Unknown platforms are assumed to be recent.
func AtLeast(userAgent, min string) bool {
	v, ok := Version(userAgent).Get()
	if !ok {
		return true
	}

	c, err := version.Compare(v, min)
	if err != nil {
		return true
	}
	return c >= 0
}
