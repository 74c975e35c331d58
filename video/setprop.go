package video

import (
	"math"

	"github.com/anisan-cli/avbridge/decoder"
	"github.com/anisan-cli/avbridge/log"
	"github.com/anisan-cli/avbridge/tracks"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cast"
)

// writers apply property writes. Props without a writer are read-only.
var writers map[Prop]func(*Video, any)

func init() {
	writers = map[Prop]func(*Video, any){
		PropPaused:                   (*Video).writePaused,
		PropTime:                     (*Video).writeTime,
		PropSelectedSubtitlesTrackID: (*Video).writeSelectedSubtitles,
		PropSelectedAudioTrackID:     (*Video).writeSelectedAudio,
		PropSubtitlesOffset: func(v *Video, value any) {
			v.writeStyleNumber(PropSubtitlesOffset, value, func(n float64) { v.offset = lo.Clamp(int(n), 0, 100) })
		},
		PropSubtitlesSize: func(v *Video, value any) {
			v.writeStyleNumber(PropSubtitlesSize, value, func(n float64) { v.size = max(0, int(n)) })
		},
		PropSubtitlesTextColor: func(v *Video, value any) {
			v.writeColor(PropSubtitlesTextColor, value, &v.textColor)
		},
		PropSubtitlesBackgroundColor: func(v *Video, value any) {
			v.writeColor(PropSubtitlesBackgroundColor, value, &v.backgroundColor)
		},
		PropSubtitlesOutlineColor: func(v *Video, value any) {
			v.writeColor(PropSubtitlesOutlineColor, value, &v.outlineColor)
		},
		PropSubtitlesOpacity: (*Video).writeOpacity,
		PropPlaybackSpeed:    (*Video).writeSpeed,
	}
}

func (v *Video) write(p Prop, value any) {
	if w, ok := writers[p]; ok {
		w(v, value)
	}
}

func (v *Video) writePaused(value any) {
	if v.sess != nil {
		if truthy(value) {
			if err := v.dec.Pause(v.ctx); err != nil {
				v.sess.log().Warnf("pause: %v", err)
			}
			v.cancelCueTimer()
		} else {
			if err := v.dec.Play(v.ctx); err != nil {
				v.sess.log().Warnf("play: %v", err)
			}
			v.refreshCue()
		}
	}

	v.propChanged(PropPaused)

	// Some devices silently ignore a pause or play call. Report the state
	// again later if it drifted from what was just observed.
	last := v.read(PropPaused)
	if v.opts.PausedRecheck > 0 {
		v.opts.Clock.AfterFunc(v.opts.PausedRecheck, func() {
			v.post(pausedRecheckMsg{last: last})
		})
	}
}

func (v *Video) writeTime(value any) {
	if v.sess == nil {
		return
	}

	ms, ok := toFinite(value)
	if !ok {
		return
	}

	if err := v.dec.SeekTo(v.ctx, int64(ms)); err != nil {
		v.sess.log().Warnf("seek: %v", err)
	}
	v.resetCueDisplay()
	v.refreshCue()
	v.propChanged(PropTime)
}

func (v *Video) writeSelectedSubtitles(value any) {
	if v.sess == nil {
		return
	}

	if !v.sess.currentSubs.IsPresent() {
		v.enumerate(decoder.TrackText)
	}

	id := cast.ToString(value)
	current, ok := v.sess.currentSubs.Get()

	switch {
	case ok && tracks.IsEmbedded(current):
		if !tracks.IsEmbedded(id) {
			v.disableSubtitles()
			v.propChanged(PropSelectedSubtitlesTrackID)
			return
		}

		v.subsDisabled = false
		v.sess.currentSubs = mo.Some(id)

		selected, found := lo.Find(v.enumerate(decoder.TrackText), func(t tracks.Track) bool { return t.ID == id })
		v.selectNative(decoder.TrackText, id)

		if found {
			v.emit(Event{Kind: EventSubtitlesTrackLoaded, Track: &selected})
			v.propChanged(PropSelectedSubtitlesTrackID)
		}
	case id == "":
		v.disableSubtitles()
		v.propChanged(PropSelectedSubtitlesTrackID)
	}
}

func (v *Video) writeSelectedAudio(value any) {
	if v.sess == nil {
		return
	}

	id := cast.ToString(value)
	v.sess.currentAudio = mo.Some(id)
	selected, found := lo.Find(v.enumerate(decoder.TrackAudio), func(t tracks.Track) bool { return t.ID == id })

	// A paused device either refuses the switch or reports the old track
	// until playback resumes; defer it to the next unpaused read.
	if paused, _ := v.read(PropPaused).(bool); paused {
		v.sess.pendingAudio = mo.Some(id)
		if !found {
			v.propChanged(PropSelectedAudioTrackID)
		}
	} else {
		v.selectNative(decoder.TrackAudio, id)
	}

	if found {
		v.emit(Event{Kind: EventAudioTrackLoaded, Track: &selected})
		v.propChanged(PropSelectedAudioTrackID)
	}
}

func (v *Video) selectNative(t decoder.TrackType, id string) {
	index, ok := tracks.Index(id)
	if !ok {
		log.Warnf("cannot select %s track %q: not an embedded track id", t, id)
		return
	}

	if err := v.dec.SetSelectTrack(v.ctx, t, index); err != nil {
		log.Warnf("select %s track %d: %v", t, index, err)
	}
}

func (v *Video) writeStyleNumber(p Prop, value any, apply func(float64)) {
	n, ok := toFinite(value)
	if !ok {
		return
	}

	apply(n)
	v.refreshCue()
	v.propChanged(p)
}

func (v *Video) writeColor(p Prop, value any, dst *string) {
	s, ok := value.(string)
	if !ok {
		return
	}

	if color, err := v.opts.NormalizeColor(s); err != nil {
		log.Errorf("%s: %v", p, err)
	} else {
		*dst = color
	}

	v.refreshCue()
	v.propChanged(p)
}

// writeOpacity takes a 0-100 number. Strings are not coerced.
func (v *Video) writeOpacity(value any) {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
	default:
		return
	}

	n, ok := toFinite(value)
	if !ok {
		return
	}

	v.opacity = clampFloat(n/100, 0, 1)
	v.refreshCue()
	v.propChanged(PropSubtitlesOpacity)
}

func (v *Video) writeSpeed(value any) {
	rate, ok := toFinite(value)
	if !ok {
		return
	}

	v.speed = rate
	if err := v.dec.SetSpeed(v.ctx, rate); err != nil {
		log.Debugf("set speed %g: %v", rate, err)
	}

	v.refreshCue()
	v.propChanged(PropPlaybackSpeed)
}

func toFinite(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}

	n, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func truthy(value any) bool {
	switch val := value.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	}

	n, err := cast.ToFloat64E(value)
	if err != nil {
		return true
	}
	return n != 0 && !math.IsNaN(n)
}

func clampFloat(n, low, high float64) float64 {
	if math.IsNaN(n) {
		return low
	}
	return lo.Clamp(n, low, high)
}
