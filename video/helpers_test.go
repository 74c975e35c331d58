package video

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/anisan-cli/avbridge/constant"
	"github.com/anisan-cli/avbridge/decoder"
	"github.com/anisan-cli/avbridge/tracksdata"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

type shownCue struct {
	text  string
	style CueStyle
}

type fakeSurface struct {
	mu       sync.Mutex
	shown    []shownCue
	visible  *shownCue
	detached bool
}

func (s *fakeSurface) ShowCue(text string, style CueStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := shownCue{text: text, style: style}
	s.shown = append(s.shown, c)
	s.visible = &c
}

func (s *fakeSurface) ClearCues() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = nil
}

func (s *fakeSurface) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detached = true
}

// current returns the text on screen, or "" when nothing is shown.
func (s *fakeSurface) current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visible == nil {
		return ""
	}
	return s.visible.text
}

func (s *fakeSurface) last() shownCue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shown[len(s.shown)-1]
}

func (s *fakeSurface) isDetached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detached
}

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped atomic.Bool
}

func (t *fakeTimer) Stop() bool {
	return !t.stopped.Swap(true)
}

// fakeClock never fires on its own. Tests fire timers explicitly.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{delay: d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) last() *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.timers) == 0 {
		return nil
	}
	return c.timers[len(c.timers)-1]
}

// lastWith returns the most recent timer scheduled with delay d.
func (c *fakeClock) lastWith(d time.Duration) *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, _, _ := lo.FindLastIndexOf(c.timers, func(t *fakeTimer) bool { return t.delay == d })
	return t
}

func (c *fakeClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (t *fakeTimer) fire() {
	if !t.stopped.Load() {
		t.fn()
	}
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) add(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func (r *recorder) of(kind EventKind) []Event {
	return lo.Filter(r.all(), func(ev Event, _ int) bool { return ev.Kind == kind })
}

// changes lists the values reported by propChanged for p.
func (r *recorder) changes(p Prop) []any {
	return lo.FilterMap(r.all(), func(ev Event, _ int) (any, bool) {
		return ev.Value, ev.Kind == EventPropChanged && ev.Prop == p
	})
}

func (r *recorder) values(p Prop) []any {
	return lo.FilterMap(r.all(), func(ev Event, _ int) (any, bool) {
		return ev.Value, ev.Kind == EventPropValue && ev.Prop == p
	})
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

type fakeFetcher struct {
	data  tracksdata.Data
	err   error
	calls atomic.Int32
}

func (f *fakeFetcher) Fetch(context.Context, string) (tracksdata.Data, error) {
	f.calls.Add(1)
	return f.data, f.err
}

type fixture struct {
	v       *Video
	dec     *decoder.Simulated
	surface *fakeSurface
	clock   *fakeClock
	fetcher *fakeFetcher
	rec     *recorder
}

var testTracks = []decoder.TrackInfo{
	{Type: decoder.TrackVideo, Index: 0},
	{Type: decoder.TrackAudio, Index: 1, ExtraInfo: `{"language":"eng"}`},
	{Type: decoder.TrackAudio, Index: 2, ExtraInfo: `{"language":"ger"}`},
	{Type: decoder.TrackText, Index: 3, ExtraInfo: `{"track_lang":"fre"}`},
	{Type: decoder.TrackText, Index: 4, ExtraInfo: `{"track_lang":"spa"}`},
}

func testOptions(surface Surface, clock Clock, fetcher tracksdata.Fetcher) Options {
	return Options{
		Surface:                  surface,
		Fetcher:                  fetcher,
		Clock:                    clock,
		MinPlatformVersion:       "6.0",
		MaxRetries:               5,
		PausedRecheck:            time.Second,
		DisplayWidth:             1920,
		DisplayHeight:            1080,
		DisplayMethod:            constant.DisplayLetterBox,
		SubtitlesSize:            100,
		SubtitlesOffset:          0,
		SubtitlesTextColor:       "rgb(255, 255, 255)",
		SubtitlesBackgroundColor: "rgba(0, 0, 0, 0)",
		SubtitlesOutlineColor:    "rgb(34, 34, 34)",
		SubtitlesOpacity:         100,
	}
}

// newFixture builds an adapter around a simulated decoder whose prepares are
// resolved by the test. It must be called inside a Convey block.
func newFixture(configure ...func(*Options)) *fixture {
	f := &fixture{
		dec:     decoder.NewSimulated(60_000, testTracks...),
		surface: &fakeSurface{},
		clock:   &fakeClock{},
		fetcher: &fakeFetcher{},
		rec:     &recorder{},
	}
	f.dec.SetManualPrepare(true)

	opts := testOptions(f.surface, f.clock, f.fetcher)
	for _, c := range configure {
		c(&opts)
	}

	v, err := New(f.dec, opts)
	So(err, ShouldBeNil)
	f.v = v

	for _, kind := range []EventKind{
		EventPropValue, EventPropChanged, EventEnded, EventError,
		EventSubtitlesTrackLoaded, EventAudioTrackLoaded,
	} {
		So(v.On(kind, f.rec.add), ShouldBeNil)
	}

	Reset(func() {
		_ = f.v.Dispatch(Action{Type: ActionCommand, CommandName: CommandDestroy})
	})

	return f
}

func (f *fixture) dispatch(a Action) {
	So(f.v.Dispatch(a), ShouldBeNil)
}

func (f *fixture) observe(props ...Prop) {
	for _, p := range props {
		f.dispatch(Action{Type: ActionObserveProp, PropName: p.String()})
	}
}

func (f *fixture) set(p Prop, value any) {
	f.dispatch(Action{Type: ActionSetProp, PropName: p.String(), PropValue: value})
}

func (f *fixture) read(p Prop) any {
	var value any
	done := make(chan struct{})
	So(f.v.post(inspectMsg{fn: func(v *Video) { value = v.read(p) }, done: done}), ShouldBeTrue)
	<-done
	return value
}

// startLoad dispatches a load without resolving the prepare.
func (f *fixture) startLoad(url string, start ...float64) {
	args := &CommandArgs{Stream: &Stream{URL: url}}
	if len(start) > 0 {
		args.Time = &start[0]
	}
	f.dispatch(Action{Type: ActionCommand, CommandName: CommandLoad, CommandArgs: args})
}

func (f *fixture) completePrepare() {
	So(f.dec.CompletePrepare(), ShouldBeTrue)
	So(f.v.Flush(), ShouldBeNil)
}

func (f *fixture) load(url string, start ...float64) {
	f.startLoad(url, start...)
	f.completePrepare()
}

func (f *fixture) emitDevice(ev decoder.Event) {
	f.dec.Emit(ev)
	So(f.v.Flush(), ShouldBeNil)
}

func (f *fixture) fire(t *fakeTimer) {
	So(t, ShouldNotBeNil)
	t.fire()
	So(f.v.Flush(), ShouldBeNil)
}

// inspectMsg runs fn on the loop goroutine.
type inspectMsg struct {
	fn   func(*Video)
	done chan struct{}
}

func (m inspectMsg) handle(v *Video) {
	defer close(m.done)
	m.fn(v)
}

// eventually flushes until cond holds. Metadata fetches post from their own goroutine.
func (f *fixture) eventually(cond func() bool) bool {
	for i := 0; i < 200; i++ {
		if f.v.Flush() != nil {
			return false
		}
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

// inlineDecoder resolves every prepare before PrepareAsync returns, after
// filling the adapter inbox to capacity.
type inlineDecoder struct {
	*decoder.Simulated
	v *Video
}

func (d *inlineDecoder) PrepareAsync(ctx context.Context, onSuccess func(), onError func(error)) {
	for len(d.v.inbox) < cap(d.v.inbox) {
		d.v.inbox <- inspectMsg{fn: func(*Video) {}, done: make(chan struct{})}
	}
	d.Simulated.PrepareAsync(ctx, onSuccess, onError)
	d.Simulated.CompletePrepare()
}
