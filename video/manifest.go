package video

import "slices"

// Manifest describes the adapter to the player UI.
type Manifest struct {
	Name     string      `json:"name"`
	External bool        `json:"external"`
	Props    []string    `json:"props"`
	Commands []Command   `json:"commands"`
	Events   []EventKind `json:"events"`
}

// Name of the adapter as reported by its manifest.
const Name = "TizenVideo"

// Describe returns the adapter manifest.
func Describe() Manifest {
	return Manifest{
		Name:     Name,
		External: false,
		Props:    slices.Clone(propNames[:]),
		Commands: []Command{CommandLoad, CommandUnload, CommandDestroy},
		Events: []EventKind{
			EventPropValue, EventPropChanged, EventEnded, EventError,
			EventSubtitlesTrackLoaded, EventAudioTrackLoaded,
		},
	}
}

// CanPlayStream reports whether the adapter accepts stream. The device decides
// playability itself, so every stream is accepted.
func CanPlayStream(*Stream) bool {
	return true
}
