package video

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalizeColor(t *testing.T) {
	Convey("NormalizeColor", t, func() {
		cases := map[string]string{
			"#fff":                "rgb(255, 255, 255)",
			"#FF0000":             "rgb(255, 0, 0)",
			"#00000080":           "rgba(0, 0, 0, 0.5)",
			"rgb(34, 34, 34)":     "rgb(34, 34, 34)",
			"rgba(0,0,0,0)":       "rgba(0, 0, 0, 0)",
			"rgba(10, 20, 30, 1)": "rgb(10, 20, 30)",
			"rgb(300, -1, 12.4)":  "rgb(255, 0, 12)",
			" Yellow ":            "rgb(255, 255, 0)",
			"transparent":         "rgba(0, 0, 0, 0)",
		}

		for in, want := range cases {
			got, err := NormalizeColor(in)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		Convey("Should reject unknown formats", func() {
			for _, in := range []string{"", "nope", "#12", "rgb(1,2)", "hsl(0, 0%, 0%)"} {
				_, err := NormalizeColor(in)
				So(err, ShouldNotBeNil)
			}
		})
	})
}
