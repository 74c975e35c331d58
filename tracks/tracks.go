// Package tracks reconciles the decoder's native audio and text tracks with the
// stable composite ids exposed to the player UI.
package tracks

import (
	"strconv"
	"strings"

	"github.com/anisan-cli/avbridge/constant"
)

// Mode is the playback mode of a track.
type Mode string

const (
	Showing  Mode = "showing"
	Disabled Mode = "disabled"
)

// ID returns the composite id of the embedded track with the given native index.
func ID(index int) string {
	return constant.EmbeddedPrefix + strconv.Itoa(index)
}

// IsEmbedded reports whether id carries the embedded origin marker.
func IsEmbedded(id string) bool {
	return strings.HasPrefix(id, constant.EmbeddedPrefix)
}

// Index recovers the native index from a composite id.
func Index(id string) (int, bool) {
	if !IsEmbedded(id) {
		return 0, false
	}

	index, err := strconv.Atoi(strings.TrimPrefix(id, constant.EmbeddedPrefix))
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}
