package video

import (
	"context"
	"math"

	"github.com/anisan-cli/avbridge/decoder"
	"github.com/anisan-cli/avbridge/log"
	"github.com/anisan-cli/avbridge/tracks"
	"github.com/anisan-cli/avbridge/tracksdata"
	"github.com/samber/mo"
)

// readers compute property values. Nothing is cached; every read goes back to
// the decoder or the session.
var readers [propCount]func(*Video) any

func init() {
	readers = [propCount]func(*Video) any{
		PropStream: func(v *Video) any {
			if v.sess == nil {
				return nil
			}
			return v.sess.stream
		},
		PropLoaded: func(v *Video) any {
			if loaded, ok := v.loaded.Get(); ok {
				return loaded
			}
			return nil
		},
		PropPaused:   (*Video).readPaused,
		PropTime:     func(v *Video) any { return v.readMillis(v.dec.CurrentTime) },
		PropDuration: func(v *Video) any { return v.readMillis(v.dec.Duration) },
		PropBuffering: func(v *Video) any {
			if v.sess == nil {
				return nil
			}
			return v.buffering
		},
		PropSubtitlesTracks: func(v *Video) any { return v.enumerate(decoder.TrackText) },
		PropSelectedSubtitlesTrackID: func(v *Video) any {
			if v.sess == nil || v.subsDisabled {
				return nil
			}
			return v.readCurrent(decoder.TrackText)
		},
		PropAudioTracks: func(v *Video) any { return v.enumerate(decoder.TrackAudio) },
		PropSelectedAudioTrackID: func(v *Video) any {
			if v.sess == nil {
				return nil
			}
			if pending, ok := v.sess.pendingAudio.Get(); ok {
				return pending
			}
			return v.readCurrent(decoder.TrackAudio)
		},
		PropSubtitlesOffset:          style(func(v *Video) any { return v.offset }),
		PropSubtitlesSize:            style(func(v *Video) any { return v.size }),
		PropSubtitlesTextColor:       style(func(v *Video) any { return v.textColor }),
		PropSubtitlesBackgroundColor: style(func(v *Video) any { return v.backgroundColor }),
		PropSubtitlesOutlineColor:    style(func(v *Video) any { return v.outlineColor }),
		PropSubtitlesOpacity:         style(func(v *Video) any { return v.opacity }),
		PropPlaybackSpeed: style(func(v *Video) any {
			if math.IsNaN(v.speed) || math.IsInf(v.speed, 0) {
				return nil
			}
			return v.speed
		}),
	}
}

// style wraps a reader of a stream independent property; those read as absent once destroyed.
func style(fn func(*Video) any) func(*Video) any {
	return func(v *Video) any {
		if v.destroyed.Load() {
			return nil
		}
		return fn(v)
	}
}

func (v *Video) read(p Prop) any {
	if p < 0 || p >= propCount {
		return nil
	}
	return readers[p](v)
}

func (v *Video) observe(p Prop) {
	v.emit(Event{Kind: EventPropValue, Prop: p, Value: v.read(p)})
	v.observed[p] = true
}

// propChanged notifies listeners of the current value of p if it is observed.
func (v *Video) propChanged(p Prop) {
	if !v.observed[p] {
		return
	}
	v.emit(Event{Kind: EventPropChanged, Prop: p, Value: v.read(p)})
}

func (v *Video) readPaused() any {
	if v.sess == nil {
		return nil
	}

	state, err := v.dec.State(v.ctx)
	if err != nil {
		v.sess.log().Warnf("read state: %v", err)
		return nil
	}

	paused := state == decoder.StatePaused
	if !paused {
		v.applyPendingAudio()
	}
	return paused
}

// readMillis floors a decoder time query. Failures and non-finite values read as absent.
func (v *Video) readMillis(query func(ctx context.Context) (float64, error)) any {
	if v.sess == nil {
		return nil
	}

	ms, err := query(v.ctx)
	if err != nil {
		v.sess.log().Warnf("read time: %v", err)
		return nil
	}
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return nil
	}
	return int64(math.Floor(ms))
}

// playbackTime is the current time for cue bookkeeping, zero when unknown.
func (v *Video) playbackTime() float64 {
	if ms, ok := v.read(PropTime).(int64); ok {
		return float64(ms)
	}
	return 0
}

func (v *Video) enumerate(t decoder.TrackType) []tracks.Track {
	if v.sess == nil {
		return []tracks.Track{}
	}

	infos, err := v.dec.TotalTrackInfo(v.ctx)
	if err != nil {
		v.sess.log().Warnf("read track info: %v", err)
		return []tracks.Track{}
	}

	var list []tracks.Track
	switch t {
	case decoder.TrackText:
		list, v.sess.currentSubs = enumerateWith(t, infos, v.sess.extended.Subs, v.sess.currentSubs, v.subsDisabled)
	case decoder.TrackAudio:
		list, v.sess.currentAudio = enumerateWith(t, infos, v.sess.extended.Audio, v.sess.currentAudio, false)
	}
	return list
}

func enumerateWith(t decoder.TrackType, infos []decoder.TrackInfo, extended []tracksdata.Entry, current mo.Option[string], disabled bool) ([]tracks.Track, mo.Option[string]) {
	list, sel := tracks.Enumerate(t, infos, extended, tracks.Selection{Current: current, Disabled: disabled})
	return list, sel.Current
}

func (v *Video) readCurrent(t decoder.TrackType) any {
	streams, err := v.dec.CurrentStreamInfo(v.ctx)
	if err != nil {
		log.Warnf("read stream info: %v", err)
		return nil
	}

	if id, ok := tracks.Current(t, streams).Get(); ok {
		return id
	}
	return nil
}
