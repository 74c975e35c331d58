// Package video adapts a callback-driven hardware decoder to the uniform
// property/command/event interface consumed by the player UI.
//
// All state is owned by a single loop goroutine. Dispatched actions, decoder
// events, prepare outcomes, metadata results and timer expiries are posted to
// that loop as messages and handled one at a time.
package video

import (
	"context"
	"sync/atomic"

	"github.com/anisan-cli/avbridge/decoder"
	"github.com/anisan-cli/avbridge/log"
	"github.com/anisan-cli/avbridge/tracksdata"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

const inboxSize = 64

// Video is one adapter instance. It drives exactly one decoder.
type Video struct {
	dec  decoder.Decoder
	opts Options

	ctx    context.Context
	cancel context.CancelFunc

	inbox chan message
	quit  chan struct{}

	events    *emitter
	destroyed atomic.Bool

	// Everything below is touched only on the loop goroutine.
	sess     *session
	loaded   mo.Option[bool]
	observed [propCount]bool
	retries  int
	attempt  int

	buffering    bool
	subsDisabled bool
	speed        float64

	offset          int
	size            int
	textColor       string
	backgroundColor string
	outlineColor    string
	opacity         float64

	cue      *cue
	cueTimer Timer
	cueGen   int
}

// New starts an adapter around dec.
func New(dec decoder.Decoder, opts Options) (*Video, error) {
	if dec == nil {
		return nil, ErrNoDecoder
	}
	if opts.Surface == nil {
		return nil, ErrNoSurface
	}
	if opts.Fetcher == nil {
		opts.Fetcher = tracksdata.Nop{}
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	if opts.NormalizeColor == nil {
		opts.NormalizeColor = NormalizeColor
	}

	ctx, cancel := context.WithCancel(context.Background())
	v := &Video{
		dec:             dec,
		opts:            opts,
		ctx:             ctx,
		cancel:          cancel,
		inbox:           make(chan message, inboxSize),
		quit:            make(chan struct{}),
		events:          newEmitter(),
		buffering:       true,
		speed:           1,
		offset:          lo.Clamp(opts.SubtitlesOffset, 0, 100),
		size:            max(0, opts.SubtitlesSize),
		textColor:       opts.SubtitlesTextColor,
		backgroundColor: opts.SubtitlesBackgroundColor,
		outlineColor:    opts.SubtitlesOutlineColor,
		opacity:         clampFloat(opts.SubtitlesOpacity/100, 0, 1),
	}

	dec.Listen(func(ev decoder.Event) {
		v.post(deviceMsg{event: ev})
	})

	go v.run()
	return v, nil
}

// On registers a listener. Listeners run on the loop goroutine and must not
// call Dispatch or Flush.
func (v *Video) On(kind EventKind, fn Listener) error {
	if v.destroyed.Load() {
		return ErrDestroyed
	}
	v.events.on(kind, fn)
	return nil
}

// Dispatch validates the action and blocks until the loop has processed it.
func (v *Video) Dispatch(action Action) error {
	if v.destroyed.Load() {
		return ErrDestroyed
	}
	if err := action.validate(); err != nil {
		return err
	}

	done := make(chan struct{})
	if !v.post(dispatchMsg{action: action.clone(), done: done}) {
		return ErrDestroyed
	}
	return v.wait(done)
}

// Flush blocks until every message posted before the call has been handled.
func (v *Video) Flush() error {
	done := make(chan struct{})
	if !v.post(flushMsg{done: done}) {
		return ErrDestroyed
	}
	return v.wait(done)
}

// Destroyed reports whether destroy has been processed.
func (v *Video) Destroyed() bool {
	return v.destroyed.Load()
}

func (v *Video) wait(done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-v.quit:
		select {
		case <-done:
			return nil
		default:
			return ErrDestroyed
		}
	}
}

// post queues m for the loop. It reports false once the loop has exited.
func (v *Video) post(m message) bool {
	select {
	case <-v.quit:
		return false
	default:
	}

	select {
	case v.inbox <- m:
		return true
	case <-v.quit:
		return false
	}
}

func (v *Video) run() {
	defer close(v.quit)

	for m := range v.inbox {
		m.handle(v)
		if v.destroyed.Load() {
			return
		}
	}
}

// emit delivers an event unless the adapter has torn down its listeners.
func (v *Video) emit(ev Event) {
	v.events.emit(ev)
}

// onError surfaces a playback error. Critical errors force an unload.
func (v *Video) onError(err *Error) {
	log.Errorf("playback error: %v", err)
	v.emit(Event{Kind: EventError, Err: err})
	if err.Critical {
		v.unload()
	}
}
