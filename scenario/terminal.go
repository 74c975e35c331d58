package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/anisan-cli/avbridge/color"
	"github.com/anisan-cli/avbridge/icon"
	"github.com/anisan-cli/avbridge/style"
	"github.com/anisan-cli/avbridge/video"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Terminal is a subtitle surface that prints cues as styled lines.
type Terminal struct {
	Out io.Writer

	// Width centers cues when positive.
	Width int
}

func (t *Terminal) ShowCue(text string, cue video.CueStyle) {
	s := style.New().Padding(0, 1)
	if fg, ok := cssColor(cue.TextColor); ok {
		s = s.Foreground(fg)
	}
	if bg, ok := cssColor(cue.BackgroundColor); ok {
		s = s.Background(bg)
	}

	rendered := s.Render(text)
	if t.Width > 0 {
		rendered = lipgloss.PlaceHorizontal(t.Width, lipgloss.Center, rendered)
	}

	_, _ = fmt.Fprintf(t.Out, "%s %s\n", icon.Get(icon.Subtitle), rendered)
}

func (t *Terminal) ClearCues() {
	_, _ = fmt.Fprintln(t.Out, style.Faint("  cues cleared"))
}

func (t *Terminal) Detach() {
	_, _ = fmt.Fprintln(t.Out, style.Faint("  surface detached"))
}

// cssColor converts the rgb()/rgba() strings reported by the adapter into a
// terminal color. Fully transparent colors report false.
func cssColor(css string) (lipgloss.Color, bool) {
	var r, g, b, a float64
	compact := strings.ReplaceAll(css, " ", "")

	if _, err := fmt.Sscanf(compact, "rgba(%g,%g,%g,%g)", &r, &g, &b, &a); err == nil {
		if a == 0 {
			return "", false
		}
	} else if _, err := fmt.Sscanf(compact, "rgb(%g,%g,%g)", &r, &g, &b); err != nil {
		return "", false
	}

	c := colorful.Color{R: r / 255, G: g / 255, B: b / 255}.Clamped()
	return lipgloss.Color(c.Hex()), true
}

// Printer writes adapter events, either as styled text or as JSON lines.
type Printer struct {
	Out  io.Writer
	JSON bool
}

type record struct {
	Event string       `json:"event"`
	Prop  string       `json:"prop,omitempty"`
	Value any          `json:"value"`
	Error *video.Error `json:"error,omitempty"`
	Track any          `json:"track,omitempty"`
}

func (p *Printer) Listen(ev video.Event) {
	rec := record{Event: string(ev.Kind), Error: ev.Err}
	switch ev.Kind {
	case video.EventPropValue, video.EventPropChanged:
		rec.Prop = ev.Prop.String()
		rec.Value = ev.Value
	}
	if ev.Track != nil {
		rec.Track = ev.Track
	}

	if p.JSON {
		_ = json.NewEncoder(p.Out).Encode(rec)
		return
	}

	line := fmt.Sprintf("%s %s", icon.Get(icon.Event), style.Fg(color.Purple)(rec.Event))
	if rec.Prop != "" {
		line += fmt.Sprintf(" %s = %s", style.Bold(rec.Prop), style.Fg(color.Yellow)(encode(rec.Value)))
	}
	if rec.Track != nil {
		line += " " + style.Fg(color.Cyan)(encode(rec.Track))
	}
	if rec.Error != nil {
		line = fmt.Sprintf("%s %s", icon.Get(icon.Fail), style.Fg(color.Red)(rec.Error.Error()))
	}

	_, _ = fmt.Fprintln(p.Out, line)
}

func encode(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
