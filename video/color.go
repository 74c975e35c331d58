package video

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]string{
	"white":       "#ffffff",
	"black":       "#000000",
	"red":         "#ff0000",
	"green":       "#008000",
	"blue":        "#0000ff",
	"yellow":      "#ffff00",
	"gray":        "#808080",
	"grey":        "#808080",
	"transparent": "",
}

// NormalizeColor converts hex, rgb(), rgba() and a few named colors into
// "rgb(r, g, b)", or "rgba(r, g, b, a)" when alpha is below 1.
func NormalizeColor(s string) (string, error) {
	in := strings.ToLower(strings.TrimSpace(s))

	if hex, ok := namedColors[in]; ok {
		if hex == "" {
			return "rgba(0, 0, 0, 0)", nil
		}
		in = hex
	}

	switch {
	case strings.HasPrefix(in, "#"):
		return normalizeHex(in)
	case strings.HasPrefix(in, "rgba("):
		var r, g, b, a float64
		if _, err := fmt.Sscanf(strings.ReplaceAll(in, " ", ""), "rgba(%g,%g,%g,%g)", &r, &g, &b, &a); err != nil {
			return "", fmt.Errorf("parse color %q: %w", s, err)
		}
		return format(r, g, b, a), nil
	case strings.HasPrefix(in, "rgb("):
		var r, g, b float64
		if _, err := fmt.Sscanf(strings.ReplaceAll(in, " ", ""), "rgb(%g,%g,%g)", &r, &g, &b); err != nil {
			return "", fmt.Errorf("parse color %q: %w", s, err)
		}
		return format(r, g, b, 1), nil
	default:
		return "", fmt.Errorf("parse color %q: unrecognized format", s)
	}
}

// normalizeHex accepts #rgb, #rrggbb and #rrggbbaa.
func normalizeHex(in string) (string, error) {
	alpha := 1.0
	if len(in) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(in[7:], "%02x", &a); err != nil {
			return "", fmt.Errorf("parse color %q: %w", in, err)
		}
		alpha = float64(a) / 255
		in = in[:7]
	}

	c, err := colorful.Hex(in)
	if err != nil {
		return "", fmt.Errorf("parse color %q: %w", in, err)
	}
	r, g, b := c.RGB255()
	return format(float64(r), float64(g), float64(b), alpha), nil
}

func format(r, g, b, a float64) string {
	clamp := func(v, hi float64) float64 { return math.Max(0, math.Min(hi, v)) }
	r, g, b, a = math.Round(clamp(r, 255)), math.Round(clamp(g, 255)), math.Round(clamp(b, 255)), clamp(a, 1)

	if a < 1 {
		return fmt.Sprintf("rgba(%g, %g, %g, %g)", r, g, b, math.Round(a*100)/100)
	}
	return fmt.Sprintf("rgb(%g, %g, %g)", r, g, b)
}
