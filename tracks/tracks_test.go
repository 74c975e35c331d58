package tracks

import (
	"testing"

	"github.com/anisan-cli/avbridge/decoder"
	"github.com/anisan-cli/avbridge/tracksdata"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestID(t *testing.T) {
	Convey("Composite ids", t, func() {
		Convey("Should round-trip native indices", func() {
			for _, index := range []int{0, 1, 7, 42} {
				got, ok := Index(ID(index))
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, index)
			}
		})

		Convey("Should recognize the embedded marker", func() {
			So(IsEmbedded("EMBEDDED_3"), ShouldBeTrue)
			So(IsEmbedded("EXTERNAL_3"), ShouldBeFalse)
			So(IsEmbedded(""), ShouldBeFalse)
		})

		Convey("Should reject malformed ids", func() {
			_, ok := Index("EMBEDDED_x")
			So(ok, ShouldBeFalse)
			_, ok = Index("EMBEDDED_-1")
			So(ok, ShouldBeFalse)
			_, ok = Index("3")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestLanguage(t *testing.T) {
	Convey("Language", t, func() {
		Convey("Should read language for audio tracks", func() {
			So(Language(decoder.TrackAudio, `{"language":"ger"}`), ShouldResemble, mo.Some("ger"))
		})

		Convey("Should read and trim track_lang for text tracks", func() {
			So(Language(decoder.TrackText, `{"track_lang":" spa "}`), ShouldResemble, mo.Some("spa"))
		})

		Convey("Should not mix up the field names", func() {
			So(Language(decoder.TrackText, `{"language":"ger"}`).IsPresent(), ShouldBeFalse)
			So(Language(decoder.TrackAudio, `{"track_lang":"ger"}`).IsPresent(), ShouldBeFalse)
		})

		Convey("Should yield no language for malformed or unusable blobs", func() {
			So(Language(decoder.TrackAudio, `{not json`).IsPresent(), ShouldBeFalse)
			So(Language(decoder.TrackAudio, ``).IsPresent(), ShouldBeFalse)
			So(Language(decoder.TrackAudio, `{"language":""}`).IsPresent(), ShouldBeFalse)
			So(Language(decoder.TrackAudio, `{"language":7}`).IsPresent(), ShouldBeFalse)
		})
	})
}

func TestEnumerate(t *testing.T) {
	Convey("Enumerate", t, func() {
		infos := []decoder.TrackInfo{
			{Type: decoder.TrackVideo, Index: 0},
			{Type: decoder.TrackAudio, Index: 1, ExtraInfo: `{"language":"eng"}`},
			{Type: decoder.TrackAudio, Index: 2, ExtraInfo: `broken`},
			{Type: decoder.TrackText, Index: 3, ExtraInfo: `{"track_lang":"fre"}`},
		}

		Convey("Should filter by type and select the first track implicitly", func() {
			list, sel := Enumerate(decoder.TrackAudio, infos, nil, Selection{})
			So(len(list), ShouldEqual, 2)
			So(list[0].ID, ShouldEqual, "EMBEDDED_1")
			So(list[0].Lang, ShouldResemble, mo.Some("eng"))
			So(list[0].Mode, ShouldEqual, Showing)
			So(list[1].ID, ShouldEqual, "EMBEDDED_2")
			So(list[1].Lang.IsPresent(), ShouldBeFalse)
			So(list[1].Mode, ShouldEqual, Disabled)
			So(list[1].Origin, ShouldEqual, "EMBEDDED")
			So(list[1].Embedded, ShouldBeTrue)
			So(sel.Current, ShouldResemble, mo.Some("EMBEDDED_1"))
		})

		Convey("Should keep an explicit selection", func() {
			list, sel := Enumerate(decoder.TrackAudio, infos, nil, Selection{Current: mo.Some("EMBEDDED_2")})
			So(list[0].Mode, ShouldEqual, Disabled)
			So(list[1].Mode, ShouldEqual, Showing)
			So(sel.Current, ShouldResemble, mo.Some("EMBEDDED_2"))
		})

		Convey("Should show nothing while disabled", func() {
			list, _ := Enumerate(decoder.TrackText, infos, nil, Selection{Disabled: true})
			So(len(list), ShouldEqual, 1)
			So(list[0].Mode, ShouldEqual, Disabled)
		})

		Convey("Should merge extended metadata by 1-based position", func() {
			extended := []tracksdata.Entry{
				{ID: 2, Lang: "ita", Label: "Italiano"},
				{ID: 3},
			}
			list, _ := Enumerate(decoder.TrackAudio, infos, extended, Selection{})
			So(list[0].Lang, ShouldResemble, mo.Some("ita"))
			So(list[0].Label, ShouldResemble, mo.Some("Italiano"))
			So(list[1].Lang, ShouldResemble, mo.Some("eng"))
			So(list[1].Label.IsPresent(), ShouldBeFalse)
		})

		Convey("Should return an empty list when no track matches", func() {
			list, sel := Enumerate(decoder.TrackText, infos[:3], nil, Selection{})
			So(list, ShouldBeEmpty)
			So(sel.Current.IsPresent(), ShouldBeFalse)
		})
	})
}

func TestCurrent(t *testing.T) {
	Convey("Current", t, func() {
		streams := []decoder.StreamInfo{{Type: decoder.TrackVideo, Index: 0}, {Type: decoder.TrackText, Index: 0}}
		So(Current(decoder.TrackText, streams), ShouldResemble, mo.Some("EMBEDDED_0"))
		So(Current(decoder.TrackAudio, streams).IsPresent(), ShouldBeFalse)
	})
}
