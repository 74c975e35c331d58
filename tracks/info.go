package tracks

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anisan-cli/avbridge/decoder"
	"github.com/samber/mo"
)

// info holds the fields of a per-track extra_info blob the adapter cares about.
// Audio tracks report "language"; text tracks report "track_lang".
type info struct {
	Language  any `json:"language"`
	TrackLang any `json:"track_lang"`
}

func parseInfo(blob string) mo.Result[info] {
	var i info
	if err := json.Unmarshal([]byte(blob), &i); err != nil {
		return mo.Err[info](fmt.Errorf("parse extra_info: %w", err))
	}
	return mo.Ok(i)
}

// Language reads the language of a track from its extra_info blob.
// A malformed blob or a missing/empty field yields no language.
func Language(t decoder.TrackType, blob string) mo.Option[string] {
	parsed, err := parseInfo(blob).Get()
	if err != nil {
		return mo.None[string]()
	}

	switch t {
	case decoder.TrackText:
		if s, ok := parsed.TrackLang.(string); ok && s != "" {
			return mo.Some(strings.TrimSpace(s))
		}
	case decoder.TrackAudio:
		if s, ok := parsed.Language.(string); ok && s != "" {
			return mo.Some(s)
		}
	}

	return mo.None[string]()
}
