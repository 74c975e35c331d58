package decoder

// EventKind identifies a device event.
type EventKind int

const (
	BufferingStart EventKind = iota
	BufferingProgress
	BufferingComplete
	CurrentPlayTime
	SubtitleChange
	StreamCompleted
)

var eventKindNames = [...]string{
	BufferingStart:    "bufferingstart",
	BufferingProgress: "bufferingprogress",
	BufferingComplete: "bufferingcomplete",
	CurrentPlayTime:   "currentplaytime",
	SubtitleChange:    "subtitlechange",
	StreamCompleted:   "streamcompleted",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return "unknown"
	}
	return eventKindNames[k]
}

// Event is a typed device notification.
type Event struct {
	Kind EventKind

	// Percent is set for BufferingProgress.
	Percent int

	// Time is set for CurrentPlayTime.
	Time float64

	// Duration and Text are set for SubtitleChange. Duration is in milliseconds.
	Duration float64
	Text     string
}

// ParseEventKind resolves a device event name such as "subtitlechange".
func ParseEventKind(name string) (EventKind, bool) {
	for k, n := range eventKindNames {
		if n == name {
			return EventKind(k), true
		}
	}
	return 0, false
}
