package video

import (
	"errors"
	"fmt"
)

var (
	// ErrDestroyed is returned by every public call after destroy.
	ErrDestroyed = errors.New("video is destroyed")

	// ErrInvalidAction is returned for actions with a missing or unknown type.
	ErrInvalidAction = errors.New("invalid action dispatched")

	// ErrNoSurface is returned by New when no subtitle surface is supplied.
	ErrNoSurface = errors.New("surface required")

	// ErrNoDecoder is returned by New when no decoder is supplied.
	ErrNoDecoder = errors.New("decoder required")
)

// Playback error codes carried by Error.
const (
	ErrCodeFailedToLoad      = 2
	ErrCodeUnsupportedStream = 3
)

// Error is a playback error surfaced through the error event.
// Critical errors force the adapter back to the unloaded state.
type Error struct {
	Code     int     `json:"code"`
	Message  string  `json:"message"`
	Critical bool    `json:"critical"`
	Stream   *Stream `json:"stream,omitempty"`
	Err      error   `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errUnsupportedStream(stream *Stream) *Error {
	return &Error{
		Code:     ErrCodeUnsupportedStream,
		Message:  "Stream is not supported",
		Critical: true,
		Stream:   stream,
	}
}

func errFailedToLoad(stream *Stream, cause error) *Error {
	return &Error{
		Code:     ErrCodeFailedToLoad,
		Message:  "Failed to load stream",
		Critical: true,
		Stream:   stream,
		Err:      cause,
	}
}
