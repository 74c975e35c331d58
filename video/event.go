package video

import (
	"sync"

	"github.com/anisan-cli/avbridge/tracks"
)

// EventKind names an event emitted to listeners.
type EventKind string

const (
	EventPropValue            EventKind = "propValue"
	EventPropChanged          EventKind = "propChanged"
	EventEnded                EventKind = "ended"
	EventError                EventKind = "error"
	EventSubtitlesTrackLoaded EventKind = "subtitlesTrackLoaded"
	EventAudioTrackLoaded     EventKind = "audioTrackLoaded"
)

// Event is delivered to listeners. Prop and Value are set for propValue and
// propChanged, Err for error, Track for the track-loaded events.
type Event struct {
	Kind  EventKind
	Prop  Prop
	Value any
	Err   *Error
	Track *tracks.Track
}

// Listener receives events on the adapter's loop goroutine.
type Listener func(Event)

type emitter struct {
	mu        sync.RWMutex
	listeners map[EventKind][]Listener
}

func newEmitter() *emitter {
	return &emitter{listeners: make(map[EventKind][]Listener)}
}

func (e *emitter) on(kind EventKind, fn Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[kind] = append(e.listeners[kind], fn)
}

func (e *emitter) emit(ev Event) {
	e.mu.RLock()
	listeners := append([]Listener(nil), e.listeners[ev.Kind]...)
	e.mu.RUnlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

func (e *emitter) removeAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = make(map[EventKind][]Listener)
}
