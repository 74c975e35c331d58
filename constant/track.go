package constant

// Track origin tags. Only tracks multiplexed inside the container are exposed by the device decoder.
const (
	OriginEmbedded = "EMBEDDED"

	// EmbeddedPrefix prefixes every composite id of an embedded track, followed by the native index.
	EmbeddedPrefix = OriginEmbedded + "_"
)

// DisplayLetterBox is the decoder display method used for every stream.
const DisplayLetterBox = "PLAYER_DISPLAY_MODE_LETTER_BOX"
