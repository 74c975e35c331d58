package tracks

import (
	"github.com/anisan-cli/avbridge/constant"
	"github.com/anisan-cli/avbridge/decoder"
	"github.com/anisan-cli/avbridge/tracksdata"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// defaultLang applies to extended entries that name no language.
const defaultLang = "eng"

// Track describes one audio or text track at the external interface.
type Track struct {
	ID       string            `json:"id"`
	Lang     mo.Option[string] `json:"lang"`
	Label    mo.Option[string] `json:"label"`
	Origin   string            `json:"origin"`
	Embedded bool              `json:"embedded"`
	Mode     Mode              `json:"mode"`
}

// Selection is the adapter's view of which track of a type is current.
type Selection struct {
	Current mo.Option[string]

	// Disabled hides every track of the type. Only text tracks use it.
	Disabled bool
}

// Enumerate builds the tracks of type t from the device's full track list,
// merging extended metadata by 1-based position. If nothing is selected yet the
// first enumerated track becomes the current one; the updated selection is returned.
func Enumerate(t decoder.TrackType, infos []decoder.TrackInfo, extended []tracksdata.Entry, sel Selection) ([]Track, Selection) {
	list := make([]Track, 0, len(infos))

	for _, native := range lo.Filter(infos, func(info decoder.TrackInfo, _ int) bool { return info.Type == t }) {
		id := ID(native.Index)
		if !sel.Current.IsPresent() {
			sel.Current = mo.Some(id)
		}

		lang := Language(t, native.ExtraInfo)
		label := mo.None[string]()

		if entry, ok := lo.Find(extended, func(e tracksdata.Entry) bool { return e.ID-1 == native.Index }); ok {
			lang = mo.Some(lo.Ternary(entry.Lang != "", entry.Lang, defaultLang))
			label = lo.Ternary(entry.Label != "", mo.Some(entry.Label), mo.None[string]())
		}

		list = append(list, Track{
			ID:       id,
			Lang:     lang,
			Label:    label,
			Origin:   constant.OriginEmbedded,
			Embedded: true,
			Mode:     sel.mode(id),
		})
	}

	return list, sel
}

func (s Selection) mode(id string) Mode {
	if current, ok := s.Current.Get(); ok && current == id && !s.Disabled {
		return Showing
	}
	return Disabled
}

// Current finds the composite id of the track of type t the device is rendering.
func Current(t decoder.TrackType, streams []decoder.StreamInfo) mo.Option[string] {
	if info, ok := lo.Find(streams, func(s decoder.StreamInfo) bool { return s.Type == t }); ok {
		return mo.Some(ID(info.Index))
	}
	return mo.None[string]()
}
