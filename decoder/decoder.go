// Package decoder describes the callback-driven hardware media decoder the adapter drives.
//
// Implementations wrap a device API (for example Samsung AVPlay reached over a
// transport). The adapter only invokes these calls; it never decodes media itself.
package decoder

import "context"

// State is the playback state reported by the device.
type State string

const (
	StateNone    State = "NONE"
	StateIdle    State = "IDLE"
	StateReady   State = "READY"
	StatePlaying State = "PLAYING"
	StatePaused  State = "PAUSED"
)

// TrackType is the media type of a native track.
type TrackType string

const (
	TrackVideo TrackType = "VIDEO"
	TrackAudio TrackType = "AUDIO"
	TrackText  TrackType = "TEXT"
)

// TrackInfo is one entry of the device's full track list.
// ExtraInfo is an opaque JSON blob whose fields depend on the track type.
type TrackInfo struct {
	Type      TrackType `json:"type"`
	Index     int       `json:"index"`
	ExtraInfo string    `json:"extra_info"`
}

// StreamInfo names a track the device is currently rendering.
type StreamInfo struct {
	Type  TrackType `json:"type"`
	Index int       `json:"index"`
}

// Sink receives device events. Decoders call it from their own goroutine.
type Sink func(Event)

// Decoder is the device contract. Times are milliseconds; queries may return
// NaN or ±Inf while the device has nothing to report.
type Decoder interface {
	Open(ctx context.Context, url string) error
	Stop(ctx context.Context) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	SeekTo(ctx context.Context, ms int64) error
	SetSpeed(ctx context.Context, rate float64) error
	SetSelectTrack(ctx context.Context, t TrackType, index int) error
	SetDisplayRect(ctx context.Context, x, y, width, height int) error
	SetDisplayMethod(ctx context.Context, method string) error

	// PrepareAsync starts buffering the opened stream and reports the outcome
	// through exactly one of the callbacks, either before returning or later
	// from another goroutine.
	PrepareAsync(ctx context.Context, onSuccess func(), onError func(error))

	State(ctx context.Context) (State, error)
	CurrentTime(ctx context.Context) (float64, error)
	Duration(ctx context.Context) (float64, error)
	TotalTrackInfo(ctx context.Context) ([]TrackInfo, error)
	CurrentStreamInfo(ctx context.Context) ([]StreamInfo, error)

	// Listen replaces the event sink. A nil sink detaches the previous one.
	Listen(sink Sink)
}
