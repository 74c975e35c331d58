package video

import (
	"testing"
	"time"

	"github.com/anisan-cli/avbridge/decoder"
	. "github.com/smartystreets/goconvey/convey"
)

func subtitle(duration float64, text string) decoder.Event {
	return decoder.Event{Kind: decoder.SubtitleChange, Duration: duration, Text: text}
}

func TestRenderCue(t *testing.T) {
	Convey("Rendering cues", t, func() {
		f := newFixture()
		f.load("a")

		Convey("Should strip leading alignment directives", func() {
			f.emitDevice(subtitle(2000, `{\an8}Hello`))
			So(f.surface.current(), ShouldEqual, "Hello")

			f.emitDevice(subtitle(2000, `{\an1\AN2}Hi {\an3}`))
			So(f.surface.current(), ShouldEqual, `Hi {\an3}`)
		})

		Convey("Should schedule the clear after the cue duration", func() {
			f.emitDevice(subtitle(2000, "Hello"))
			timer := f.clock.last()
			So(timer.delay, ShouldEqual, 2000*time.Millisecond)

			f.fire(timer)
			So(f.surface.current(), ShouldEqual, "")
		})

		Convey("Should scale the clear by the playback speed at scheduling time", func() {
			f.set(PropPlaybackSpeed, 2)
			f.emitDevice(subtitle(2000, "Hello"))
			So(f.clock.last().delay, ShouldEqual, 4000*time.Millisecond)
		})

		Convey("Should replace the previous cue and its timer", func() {
			f.emitDevice(subtitle(2000, "one"))
			first := f.clock.last()
			f.emitDevice(subtitle(1000, "two"))

			So(first.stopped.Load(), ShouldBeTrue)
			So(f.surface.current(), ShouldEqual, "two")

			f.fire(first)
			So(f.surface.current(), ShouldEqual, "two")
		})

		Convey("Should ignore an expiry that was superseded", func() {
			f.emitDevice(subtitle(2000, "one"))
			first := f.clock.last()
			f.emitDevice(subtitle(1000, "two"))

			first.fn()
			So(f.v.Flush(), ShouldBeNil)
			So(f.surface.current(), ShouldEqual, "two")
		})

		Convey("Should not schedule a clear for cues without duration", func() {
			before := f.clock.count()
			f.emitDevice(subtitle(0, "forever"))
			So(f.clock.count(), ShouldEqual, before)
			So(f.surface.current(), ShouldEqual, "forever")
		})

		Convey("Should style cues from the current properties", func() {
			f.set(PropSubtitlesOffset, 10)
			f.set(PropSubtitlesSize, 260)
			f.set(PropSubtitlesOpacity, 80)
			f.set(PropSubtitlesBackgroundColor, "#000")
			f.emitDevice(subtitle(2000, "styled"))

			style := f.surface.last().style
			So(style.Offset, ShouldEqual, 10)
			So(style.FontSize, ShouldEqual, 10)
			So(style.Opacity, ShouldEqual, 0.8)
			So(style.TextColor, ShouldEqual, "rgb(255, 255, 255)")
			So(style.BackgroundColor, ShouldEqual, "rgb(0, 0, 0)")
			So(style.OutlineColor, ShouldEqual, "rgb(34, 34, 34)")
		})
	})
}

func TestRefreshCue(t *testing.T) {
	Convey("Refreshing cues after a discontinuity", t, func() {
		f := newFixture()
		f.load("a")
		f.emitDevice(subtitle(2000, "Hello"))

		Convey("Should redisplay the remainder after a short seek", func() {
			f.set(PropTime, 500)
			So(f.dec.Calls(), ShouldContain, "seek 500")
			So(f.surface.current(), ShouldEqual, "Hello")
			So(f.clock.last().delay, ShouldEqual, 1500*time.Millisecond)
		})

		Convey("Should extend the cue after seeking back before it was shown", func() {
			f.set(PropTime, 1000)
			f.emitDevice(subtitle(2000, "Again"))

			f.set(PropTime, 500)
			So(f.surface.current(), ShouldEqual, "Again")
			So(f.clock.last().delay, ShouldEqual, 2500*time.Millisecond)
		})

		Convey("Should leave the cue cleared after seeking past it", func() {
			f.set(PropTime, 3000)
			So(f.surface.current(), ShouldEqual, "")
		})

		Convey("Should hold the cue while paused and resume its timer", func() {
			timer := f.clock.last()
			f.set(PropPaused, true)
			So(timer.stopped.Load(), ShouldBeTrue)
			So(f.surface.current(), ShouldEqual, "Hello")

			f.dec.Advance(300)
			f.set(PropPaused, false)
			So(f.surface.current(), ShouldEqual, "Hello")
			So(f.clock.lastWith(1700*time.Millisecond), ShouldNotBeNil)
		})

		Convey("Should restyle the visible cue on a style write", func() {
			f.set(PropSubtitlesOffset, 30)
			So(f.surface.last().style.Offset, ShouldEqual, 30)
			So(f.surface.last().text, ShouldEqual, "Hello")
		})

		Convey("Should drop the cue on unload", func() {
			f.dispatch(Action{Type: ActionCommand, CommandName: CommandUnload})
			So(f.surface.current(), ShouldEqual, "")
		})
	})
}

func TestDisableSubtitles(t *testing.T) {
	Convey("Disabling subtitles", t, func() {
		f := newFixture()
		f.load("a")
		f.observe(PropSelectedSubtitlesTrackID, PropSubtitlesTracks)
		f.emitDevice(subtitle(2000, "Hello"))
		f.rec.reset()

		Convey("Should clear the cue when selecting a non-embedded track", func() {
			f.set(PropSelectedSubtitlesTrackID, "EXTERNAL_0")

			So(f.surface.current(), ShouldEqual, "")
			So(f.rec.changes(PropSelectedSubtitlesTrackID), ShouldResemble, []any{nil})
			So(f.dec.Calls(), ShouldNotContain, "select TEXT 0")
		})

		Convey("Should clear the cue when selecting nothing", func() {
			f.set(PropSelectedSubtitlesTrackID, nil)
			So(f.surface.current(), ShouldEqual, "")
			So(f.rec.changes(PropSelectedSubtitlesTrackID), ShouldResemble, []any{nil})
		})

		Convey("Should suppress cues until a track is selected again", func() {
			f.set(PropSelectedSubtitlesTrackID, nil)
			f.emitDevice(subtitle(2000, "ignored"))
			So(f.surface.current(), ShouldEqual, "")

			tracks := f.read(PropSubtitlesTracks)
			So(tracks, ShouldNotBeEmpty)

			f.set(PropSelectedSubtitlesTrackID, "EMBEDDED_4")
			f.emitDevice(subtitle(2000, "shown"))
			So(f.surface.current(), ShouldEqual, "shown")
		})
	})
}
