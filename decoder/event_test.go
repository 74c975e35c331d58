package decoder

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEventKind(t *testing.T) {
	Convey("Event kinds", t, func() {
		Convey("Should round-trip through their names", func() {
			for _, k := range []EventKind{BufferingStart, BufferingProgress, BufferingComplete, CurrentPlayTime, SubtitleChange, StreamCompleted} {
				parsed, ok := ParseEventKind(k.String())
				So(ok, ShouldBeTrue)
				So(parsed, ShouldEqual, k)
			}
		})

		Convey("Should reject unknown names", func() {
			_, ok := ParseEventKind("drmevent")
			So(ok, ShouldBeFalse)
			So(EventKind(42).String(), ShouldEqual, "unknown")
		})
	})
}
