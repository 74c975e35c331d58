// Package icon renders the status glyphs printed by the CLI.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/anisan-cli/avbridge/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a glyph.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Play
	Subtitle
	Event
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "+", kaomoji: "(⌐■_■)", squares: "🟩"},
	Fail:     {emoji: "💀", nerd: "", plain: "x", kaomoji: "(×_×)", squares: "🟥"},
	Progress: {emoji: "⏳", nerd: "", plain: "~", kaomoji: "(・_・;)", squares: "🟨"},
	Play:     {emoji: "▶️", nerd: "", plain: ">", kaomoji: "(ﾉ◕ヮ◕)ﾉ", squares: "🟦"},
	Subtitle: {emoji: "💬", nerd: "", plain: "\"", kaomoji: "(・o・)", squares: "🟪"},
	Event:    {emoji: "📣", nerd: "", plain: "*", kaomoji: "(°ロ°)", squares: "⬜"},
}

// Get retrieves the visual representation for the configured icons variant.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for i.
func Get(i Icon) string {
	return icons[i].Get()
}
