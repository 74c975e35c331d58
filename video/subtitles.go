package video

import (
	"regexp"
	"time"
)

// ssaDirectives matches leading SSA/ASS alignment overrides such as {\an8}.
var ssaDirectives = regexp.MustCompile(`(?i)^\{(\\an[1-8])+\}`)

// cue is the last rendered subtitle. shownAt is the playback time in ms at
// which it was displayed, so the remaining time can be recomputed after a seek,
// a pause or a style change.
type cue struct {
	text     string
	duration float64
	shownAt  float64
}

func (v *Video) renderCue(duration float64, text string) {
	if v.subsDisabled {
		return
	}

	text = ssaDirectives.ReplaceAllString(text, "")
	v.cue = &cue{text: text, duration: duration, shownAt: v.playbackTime()}

	v.cancelCueTimer()
	v.opts.Surface.ClearCues()
	if text != "" {
		v.opts.Surface.ShowCue(text, v.cueStyle())
	}

	if duration <= 0 {
		return
	}

	// Expiry follows the speed at the time of scheduling.
	delay := time.Duration(int64(duration*v.speed)) * time.Millisecond
	gen := v.cueGen
	v.cueTimer = v.opts.Clock.AfterFunc(delay, func() {
		v.post(cueExpiredMsg{gen: gen})
	})
}

// cancelCueTimer drops the pending clear. The cue stays on screen.
func (v *Video) cancelCueTimer() {
	if v.cueTimer != nil {
		v.cueTimer.Stop()
		v.cueTimer = nil
	}
	v.cueGen++
}

func (v *Video) onCueExpired(gen int) {
	if gen != v.cueGen {
		return
	}
	v.cueTimer = nil
	v.opts.Surface.ClearCues()
}

// refreshCue redisplays the last cue for whatever is left of its duration.
// Seeking back before the cue was shown lengthens it by the distance rewound.
func (v *Video) refreshCue() {
	if v.cue == nil {
		return
	}

	remaining := v.cue.duration - (v.playbackTime() - v.cue.shownAt)
	if remaining <= 0 {
		return
	}
	v.renderCue(remaining, v.cue.text)
}

// resetCueDisplay clears the screen without forgetting the last cue.
func (v *Video) resetCueDisplay() {
	v.cancelCueTimer()
	v.opts.Surface.ClearCues()
}

func (v *Video) resetCue() {
	v.resetCueDisplay()
	v.cue = nil
}

// disableSubtitles blanks the current cue and suppresses renders until a text
// track is selected again.
func (v *Video) disableSubtitles() {
	v.renderCue(1, "")
	v.subsDisabled = true
}

func (v *Video) cueStyle() CueStyle {
	return CueStyle{
		Offset:          v.offset,
		FontSize:        v.size / 25,
		TextColor:       v.textColor,
		BackgroundColor: v.backgroundColor,
		OutlineColor:    v.outlineColor,
		Opacity:         v.opacity,
	}
}
