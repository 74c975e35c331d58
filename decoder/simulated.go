package decoder

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/samber/lo"
)

// ErrPrepareFailed is reported by Simulated for each prepare it was told to fail.
var ErrPrepareFailed = errors.New("simulated prepare failure")

// Simulated is an in-memory Decoder. It keeps a call log, resolves prepares
// either automatically or on demand, and lets the caller inject device events.
type Simulated struct {
	mu sync.Mutex

	tracks   []TrackInfo
	duration float64

	// failPrepares counts the upcoming prepares that will fail.
	failPrepares int
	manual       bool
	pending      []prepareCall

	url      string
	state    State
	position float64
	speed    float64
	selected map[TrackType]int
	sink     Sink
	calls    []string
}

type prepareCall struct {
	onSuccess func()
	onError   func(error)
}

// NewSimulated returns a decoder that plays a stream of the given duration (ms) with the given tracks.
func NewSimulated(duration float64, tracks ...TrackInfo) *Simulated {
	return &Simulated{
		tracks:   tracks,
		duration: duration,
		state:    StateNone,
		speed:    1,
		selected: make(map[TrackType]int),
	}
}

// FailPrepares makes the next n prepares fail.
func (s *Simulated) FailPrepares(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPrepares = n
}

// SetManualPrepare holds prepares until CompletePrepare is called.
func (s *Simulated) SetManualPrepare(manual bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manual = manual
}

// CompletePrepare resolves the oldest held prepare. It reports false if none is pending.
func (s *Simulated) CompletePrepare() bool {
	s.mu.Lock()
	if len(s.pending) == 0 {
		s.mu.Unlock()
		return false
	}
	call := s.pending[0]
	s.pending = s.pending[1:]
	s.mu.Unlock()

	s.resolve(call)
	return true
}

func (s *Simulated) resolve(call prepareCall) {
	s.mu.Lock()
	fail := s.failPrepares > 0
	if fail {
		s.failPrepares--
	} else if s.state == StateIdle {
		s.state = StateReady
	}
	s.mu.Unlock()

	if fail {
		call.onError(ErrPrepareFailed)
		return
	}
	call.onSuccess()
}

// Emit delivers an event to the current sink.
func (s *Simulated) Emit(ev Event) {
	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()

	if sink != nil {
		sink(ev)
	}
}

// Advance moves the playhead by ms and emits a time tick.
func (s *Simulated) Advance(ms float64) {
	s.mu.Lock()
	s.position = math.Min(s.position+ms, s.duration)
	pos := s.position
	s.mu.Unlock()

	s.Emit(Event{Kind: CurrentPlayTime, Time: pos})
}

// ForceState overrides the reported state, mimicking devices that ignore a pause or play call.
func (s *Simulated) ForceState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// Calls returns the log of device calls made so far.
func (s *Simulated) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Speed returns the last rate passed to SetSpeed.
func (s *Simulated) Speed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speed
}

func (s *Simulated) record(format string, args ...any) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *Simulated) Open(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("open %s", url)

	if url == "" {
		return errors.New("empty url")
	}
	s.url = url
	s.state = StateIdle
	s.position = 0
	s.selected = make(map[TrackType]int)
	return nil
}

func (s *Simulated) Stop(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("stop")

	s.url = ""
	s.state = StateIdle
	s.position = 0
	return nil
}

func (s *Simulated) Play(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("play")

	if s.url == "" {
		return errors.New("play: nothing opened")
	}
	s.state = StatePlaying
	return nil
}

func (s *Simulated) Pause(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("pause")

	if s.url == "" {
		return errors.New("pause: nothing opened")
	}
	s.state = StatePaused
	return nil
}

func (s *Simulated) SeekTo(_ context.Context, ms int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("seek %d", ms)

	s.position = math.Max(0, float64(ms))
	return nil
}

func (s *Simulated) SetSpeed(_ context.Context, rate float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("speed %g", rate)

	if rate <= 0 {
		return fmt.Errorf("unsupported rate %g", rate)
	}
	s.speed = rate
	return nil
}

func (s *Simulated) SetSelectTrack(_ context.Context, t TrackType, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("select %s %d", t, index)

	if _, ok := lo.Find(s.tracks, func(info TrackInfo) bool { return info.Type == t && info.Index == index }); !ok {
		return fmt.Errorf("no %s track with index %d", t, index)
	}
	s.selected[t] = index
	return nil
}

func (s *Simulated) SetDisplayRect(_ context.Context, x, y, width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("rect %d %d %d %d", x, y, width, height)
	return nil
}

func (s *Simulated) SetDisplayMethod(_ context.Context, method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("method %s", method)
	return nil
}

func (s *Simulated) PrepareAsync(_ context.Context, onSuccess func(), onError func(error)) {
	s.mu.Lock()
	s.record("prepare")
	call := prepareCall{onSuccess: onSuccess, onError: onError}
	if s.manual {
		s.pending = append(s.pending, call)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	go s.resolve(call)
}

func (s *Simulated) State(context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, nil
}

func (s *Simulated) CurrentTime(context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position, nil
}

func (s *Simulated) Duration(context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateNone, StateIdle:
		return 0, nil
	default:
		return s.duration, nil
	}
}

func (s *Simulated) TotalTrackInfo(context.Context) ([]TrackInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]TrackInfo(nil), s.tracks...), nil
}

func (s *Simulated) CurrentStreamInfo(context.Context) ([]StreamInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var infos []StreamInfo
	for _, t := range []TrackType{TrackVideo, TrackAudio, TrackText} {
		if index, ok := s.selected[t]; ok {
			infos = append(infos, StreamInfo{Type: t, Index: index})
			continue
		}

		if first, ok := lo.Find(s.tracks, func(info TrackInfo) bool { return info.Type == t }); ok {
			infos = append(infos, StreamInfo{Type: t, Index: first.Index})
		}
	}
	return infos, nil
}

func (s *Simulated) Listen(sink Sink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink = sink
}
