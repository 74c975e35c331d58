package video

// Prop is a recognized property name.
type Prop int

const (
	PropStream Prop = iota
	PropLoaded
	PropPaused
	PropTime
	PropDuration
	PropBuffering
	PropSubtitlesTracks
	PropSelectedSubtitlesTrackID
	PropSubtitlesOffset
	PropSubtitlesSize
	PropSubtitlesTextColor
	PropSubtitlesBackgroundColor
	PropSubtitlesOutlineColor
	PropSubtitlesOpacity
	PropAudioTracks
	PropSelectedAudioTrackID
	PropPlaybackSpeed

	propCount
)

var propNames = [propCount]string{
	PropStream:                   "stream",
	PropLoaded:                   "loaded",
	PropPaused:                   "paused",
	PropTime:                     "time",
	PropDuration:                 "duration",
	PropBuffering:                "buffering",
	PropSubtitlesTracks:          "subtitlesTracks",
	PropSelectedSubtitlesTrackID: "selectedSubtitlesTrackId",
	PropSubtitlesOffset:          "subtitlesOffset",
	PropSubtitlesSize:            "subtitlesSize",
	PropSubtitlesTextColor:       "subtitlesTextColor",
	PropSubtitlesBackgroundColor: "subtitlesBackgroundColor",
	PropSubtitlesOutlineColor:    "subtitlesOutlineColor",
	PropSubtitlesOpacity:         "subtitlesOpacity",
	PropAudioTracks:              "audioTracks",
	PropSelectedAudioTrackID:     "selectedAudioTrackId",
	PropPlaybackSpeed:            "playbackSpeed",
}

var propsByName = func() map[string]Prop {
	m := make(map[string]Prop, propCount)
	for p, name := range propNames {
		m[name] = Prop(p)
	}
	return m
}()

func (p Prop) String() string {
	if p < 0 || p >= propCount {
		return "unknown"
	}
	return propNames[p]
}

// ParseProp resolves a property name. Unrecognized names report false.
func ParseProp(name string) (Prop, bool) {
	p, ok := propsByName[name]
	return p, ok
}

// Property groups emitted together by lifecycle transitions.
var (
	loadedProps = []Prop{
		PropLoaded, PropStream, PropPaused, PropTime, PropDuration,
		PropSubtitlesTracks, PropSelectedSubtitlesTrackID,
		PropAudioTracks, PropSelectedAudioTrackID,
	}

	unloadedProps = []Prop{
		PropLoaded, PropStream, PropPaused, PropTime, PropDuration, PropBuffering,
		PropSubtitlesTracks, PropSelectedSubtitlesTrackID,
		PropAudioTracks, PropSelectedAudioTrackID,
	}

	styleProps = []Prop{
		PropSubtitlesOffset, PropSubtitlesSize,
		PropSubtitlesTextColor, PropSubtitlesBackgroundColor, PropSubtitlesOutlineColor,
		PropSubtitlesOpacity, PropPlaybackSpeed,
	}
)
