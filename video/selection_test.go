package video

import (
	"testing"

	"github.com/anisan-cli/avbridge/tracks"
	"github.com/anisan-cli/avbridge/tracksdata"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func trackList(value any) []tracks.Track {
	list, _ := value.([]tracks.Track)
	return list
}

func TestSubtitlesSelection(t *testing.T) {
	Convey("Selecting subtitle tracks", t, func() {
		f := newFixture()
		f.load("a")
		f.observe(PropSelectedSubtitlesTrackID)
		f.rec.reset()

		Convey("Should select the first text track implicitly", func() {
			list := trackList(f.read(PropSubtitlesTracks))
			So(list, ShouldHaveLength, 2)
			So(list[0].ID, ShouldEqual, "EMBEDDED_3")
			So(list[0].Lang, ShouldResemble, mo.Some("fre"))
			So(list[0].Mode, ShouldEqual, tracks.Showing)
			So(list[1].Mode, ShouldEqual, tracks.Disabled)
		})

		Convey("Should switch the device track and round-trip the id", func() {
			f.set(PropSelectedSubtitlesTrackID, "EMBEDDED_4")

			So(f.dec.Calls(), ShouldContain, "select TEXT 4")
			So(f.rec.changes(PropSelectedSubtitlesTrackID), ShouldResemble, []any{"EMBEDDED_4"})
			So(f.read(PropSelectedSubtitlesTrackID), ShouldEqual, "EMBEDDED_4")

			loaded := f.rec.of(EventSubtitlesTrackLoaded)
			So(loaded, ShouldHaveLength, 1)
			So(loaded[0].Track.ID, ShouldEqual, "EMBEDDED_4")
			So(loaded[0].Track.Lang, ShouldResemble, mo.Some("spa"))
			So(loaded[0].Track.Mode, ShouldEqual, tracks.Showing)

			list := trackList(f.read(PropSubtitlesTracks))
			So(list[0].Mode, ShouldEqual, tracks.Disabled)
			So(list[1].Mode, ShouldEqual, tracks.Showing)
		})

		Convey("Should report nothing selected while disabled", func() {
			f.set(PropSelectedSubtitlesTrackID, nil)
			So(f.read(PropSelectedSubtitlesTrackID), ShouldBeNil)

			list := trackList(f.read(PropSubtitlesTracks))
			So(list[0].Mode, ShouldEqual, tracks.Disabled)
			So(list[1].Mode, ShouldEqual, tracks.Disabled)
		})

		Convey("Should be ignored without a stream", func() {
			f.dispatch(Action{Type: ActionCommand, CommandName: CommandUnload})
			f.rec.reset()
			f.set(PropSelectedSubtitlesTrackID, "EMBEDDED_4")
			So(f.rec.all(), ShouldBeEmpty)
		})
	})
}

func TestAudioSelection(t *testing.T) {
	Convey("Selecting audio tracks", t, func() {
		f := newFixture()
		f.load("a")
		f.observe(PropSelectedAudioTrackID)
		f.rec.reset()

		Convey("Should switch immediately while playing", func() {
			f.set(PropSelectedAudioTrackID, "EMBEDDED_2")

			So(f.dec.Calls(), ShouldContain, "select AUDIO 2")
			So(f.rec.changes(PropSelectedAudioTrackID), ShouldResemble, []any{"EMBEDDED_2"})

			loaded := f.rec.of(EventAudioTrackLoaded)
			So(loaded, ShouldHaveLength, 1)
			So(loaded[0].Track.Lang, ShouldResemble, mo.Some("ger"))
		})

		Convey("Should defer the switch while paused", func() {
			f.set(PropPaused, true)
			f.set(PropSelectedAudioTrackID, "EMBEDDED_2")

			So(f.dec.Calls(), ShouldNotContain, "select AUDIO 2")
			So(f.rec.changes(PropSelectedAudioTrackID), ShouldResemble, []any{"EMBEDDED_2"})
			So(f.read(PropSelectedAudioTrackID), ShouldEqual, "EMBEDDED_2")

			Convey("And apply it once playback resumes", func() {
				f.set(PropPaused, false)
				So(f.dec.Calls(), ShouldContain, "select AUDIO 2")
				So(f.read(PropSelectedAudioTrackID), ShouldEqual, "EMBEDDED_2")
			})
		})

		Convey("Should still report an unknown id chosen while paused", func() {
			f.set(PropPaused, true)
			f.set(PropSelectedAudioTrackID, "EMBEDDED_9")

			So(f.rec.changes(PropSelectedAudioTrackID), ShouldResemble, []any{"EMBEDDED_9"})
			So(f.rec.of(EventAudioTrackLoaded), ShouldBeEmpty)
		})

		Convey("Should mark the selected track as showing", func() {
			f.set(PropSelectedAudioTrackID, "EMBEDDED_2")
			list := trackList(f.read(PropAudioTracks))
			So(list, ShouldHaveLength, 2)
			So(list[0].Mode, ShouldEqual, tracks.Disabled)
			So(list[1].Mode, ShouldEqual, tracks.Showing)
		})
	})
}

func TestExtendedTracks(t *testing.T) {
	Convey("Extended track metadata", t, func() {
		Convey("Should merge fetched metadata and renotify the track lists", func() {
			f := newFixture()
			f.fetcher.data = tracksdata.Data{
				Audio: []tracksdata.Entry{{ID: 2, Lang: "deu", Label: "Deutsch"}},
				Subs:  []tracksdata.Entry{{ID: 5, Label: "Spanish (forced)"}},
			}
			f.observe(PropSubtitlesTracks, PropAudioTracks)
			f.load("a")

			So(f.eventually(func() bool {
				return len(f.rec.changes(PropSubtitlesTracks)) >= 2 && len(f.rec.changes(PropAudioTracks)) >= 2
			}), ShouldBeTrue)
			So(f.fetcher.calls.Load(), ShouldEqual, int32(1))

			subs := trackList(f.read(PropSubtitlesTracks))
			So(subs[1].Lang, ShouldResemble, mo.Some("eng"))
			So(subs[1].Label, ShouldResemble, mo.Some("Spanish (forced)"))

			audio := trackList(f.read(PropAudioTracks))
			So(audio[0].Lang, ShouldResemble, mo.Some("deu"))
			So(audio[0].Label, ShouldResemble, mo.Some("Deutsch"))
		})

		Convey("Should fetch once per stream across retries", func() {
			f := newFixture()
			f.dec.FailPrepares(2)
			f.startLoad("a")
			for i := 0; i < 3; i++ {
				f.completePrepare()
			}

			So(f.eventually(func() bool { return f.fetcher.calls.Load() == 1 }), ShouldBeTrue)
			So(f.fetcher.calls.Load(), ShouldEqual, int32(1))
		})

		Convey("Should skip the fetch on older platforms", func() {
			f := newFixture(func(o *Options) {
				o.Platform = "Mozilla/5.0 (SMART-TV; Linux; Tizen 5.0) AppleWebKit/537.36"
			})
			f.load("a")
			So(f.fetcher.calls.Load(), ShouldEqual, int32(0))
		})

		Convey("Should fetch on recent platforms", func() {
			f := newFixture(func(o *Options) {
				o.Platform = "Mozilla/5.0 (SMART-TV; Linux; Tizen 6.5) AppleWebKit/537.36"
			})
			f.load("a")
			So(f.eventually(func() bool { return f.fetcher.calls.Load() == 1 }), ShouldBeTrue)
		})
	})
}
