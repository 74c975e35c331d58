package video

import (
	"math"
	"sync"

	"github.com/anisan-cli/avbridge/decoder"
	"github.com/anisan-cli/avbridge/log"
	"github.com/anisan-cli/avbridge/platform"
	"github.com/anisan-cli/avbridge/tracksdata"
	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
)

// session is the playback session in flight. It exists from load until unload.
type session struct {
	id     string
	stream *Stream
	args   CommandArgs

	currentAudio mo.Option[string]
	currentSubs  mo.Option[string]

	// pendingAudio is an audio track chosen while paused. The device only
	// honors the switch once playback resumes; see applyPendingAudio.
	pendingAudio mo.Option[string]

	extended       tracksdata.Data
	fetchRequested bool
}

func (s *session) log() *logrus.Entry {
	return log.WithSession(s.id).WithField("url", s.stream.URL)
}

// commandLoad handles a dispatched load. Each dispatched load starts its own retry budget.
func (v *Video) commandLoad(args *CommandArgs) {
	v.retries = 0
	v.load(args, true)
}

// load opens the stream described by args. fresh is false for automatic retries,
// which keep the current session.
func (v *Video) load(args *CommandArgs, fresh bool) {
	if args == nil || args.Stream == nil || args.Stream.URL == "" {
		var stream *Stream
		if args != nil {
			stream = args.Stream
		}
		v.onError(errUnsupportedStream(stream))
		return
	}

	if fresh {
		if v.sess != nil {
			v.stopDecoder()
		}
		v.resetCue()
		v.sess = &session{id: uuid.NewString(), stream: args.Stream, args: *args}
	}

	v.attempt++
	attempt := v.attempt
	s := v.sess
	s.log().WithField("attempt", v.retries).Info("loading stream")

	v.propChanged(PropBuffering)

	if platform.AtLeast(v.opts.Platform, v.opts.MinPlatformVersion) {
		v.fetchExtended()
	}

	if err := v.dec.Open(v.ctx, s.stream.URL); err != nil {
		v.onPrepareError(attempt, err)
		return
	}
	if err := v.dec.SetDisplayRect(v.ctx, 0, 0, v.opts.DisplayWidth, v.opts.DisplayHeight); err != nil {
		s.log().Warnf("set display rect: %v", err)
	}
	if err := v.dec.SetDisplayMethod(v.ctx, v.opts.DisplayMethod); err != nil {
		s.log().Warnf("set display method: %v", err)
	}
	if err := v.dec.SeekTo(v.ctx, startTime(args)); err != nil {
		s.log().Warnf("seek to start: %v", err)
	}

	v.prepare(attempt)
}

// prepare issues the async prepare for attempt. An outcome reported before
// PrepareAsync returns is handled here, since posting from the loop goroutine
// can block on a full inbox.
func (v *Video) prepare(attempt int) {
	var (
		mu       sync.Mutex
		inline   = true
		reported message
	)

	deliver := func(m message) {
		mu.Lock()
		if inline {
			reported = m
			mu.Unlock()
			return
		}
		mu.Unlock()
		v.post(m)
	}

	v.dec.PrepareAsync(v.ctx,
		func() { deliver(prepareMsg{attempt: attempt}) },
		func(err error) { deliver(prepareMsg{attempt: attempt, err: err}) },
	)

	mu.Lock()
	inline = false
	m := reported
	mu.Unlock()

	if m != nil {
		m.handle(v)
	}
}

func startTime(args *CommandArgs) int64 {
	if args.Time == nil || math.IsNaN(*args.Time) || math.IsInf(*args.Time, 0) {
		return 0
	}
	return int64(*args.Time)
}

// current reports whether attempt belongs to the live session's latest load.
func (v *Video) current(attempt int) bool {
	return v.sess != nil && attempt == v.attempt
}

func (v *Video) onPrepareSuccess(attempt int) {
	if !v.current(attempt) {
		log.Debugf("ignoring stale prepare success of attempt %d", attempt)
		return
	}

	v.sess.log().Info("stream prepared")
	v.propChanged(PropDuration)
	if err := v.dec.Play(v.ctx); err != nil {
		v.sess.log().Warnf("play: %v", err)
	}

	v.loaded = mo.Some(true)
	for _, p := range loadedProps {
		v.propChanged(p)
	}
}

func (v *Video) onPrepareError(attempt int, err error) {
	if !v.current(attempt) {
		log.Debugf("ignoring stale prepare failure of attempt %d: %v", attempt, err)
		return
	}

	s := v.sess
	if v.retries < v.opts.MaxRetries {
		v.retries++
		s.log().WithField("retry", v.retries).Warnf("prepare failed, retrying: %v", err)
		v.stopDecoder()
		v.load(&s.args, false)
		return
	}

	v.onError(errFailedToLoad(s.stream, err))
}

func (v *Video) unload() {
	if v.sess != nil {
		v.sess.log().Info("unloading stream")
	}

	v.sess = nil
	v.attempt++
	v.stopDecoder()
	v.resetCue()
	v.loaded = mo.Some(false)

	for _, p := range unloadedProps {
		v.propChanged(p)
	}
}

func (v *Video) destroy() {
	v.unload()
	v.destroyed.Store(true)
	v.stopDecoder()

	for _, p := range styleProps {
		v.propChanged(p)
	}

	v.events.removeAll()
	v.dec.Listen(nil)
	v.opts.Surface.Detach()
	v.cancel()
}

func (v *Video) stopDecoder() {
	if err := v.dec.Stop(v.ctx); err != nil {
		log.Warnf("stop decoder: %v", err)
	}
}

func (v *Video) setBuffering(buffering bool) {
	v.buffering = buffering
	v.propChanged(PropBuffering)
}

// fetchExtended requests extended track metadata once per session.
func (v *Video) fetchExtended() {
	s := v.sess
	if s.fetchRequested {
		return
	}
	s.fetchRequested = true

	id, url := s.id, s.stream.URL
	go func() {
		data, err := v.opts.Fetcher.Fetch(v.ctx, url)
		v.post(tracksDataMsg{session: id, data: data, err: err})
	}()
}

func (v *Video) onTracksData(id string, data tracksdata.Data, err error) {
	if v.sess == nil || v.sess.id != id {
		return
	}

	if err != nil {
		v.sess.log().Warnf("fetch extended track data: %v", err)
		return
	}

	v.sess.extended = data
	if len(data.Subs) > 0 {
		v.propChanged(PropSubtitlesTracks)
	}
	if len(data.Audio) > 0 {
		v.propChanged(PropAudioTracks)
	}
}

// applyPendingAudio performs a deferred audio switch once playback is running.
func (v *Video) applyPendingAudio() {
	id, ok := v.sess.pendingAudio.Get()
	if !ok {
		return
	}
	v.sess.pendingAudio = mo.None[string]()
	v.selectNative(decoder.TrackAudio, id)
}
