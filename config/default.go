// Package config registers the configuration keys and wires them into viper.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/anisan-cli/avbridge/color"
	"github.com/anisan-cli/avbridge/constant"
	"github.com/anisan-cli/avbridge/key"
	"github.com/anisan-cli/avbridge/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a registered configuration key with its default value.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field with its live value for terminal output.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env is the environment variable that overrides the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.App + "_" + EnvKeyReplacer.Replace(f.Key))
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"key":         f.Key,
		"value":       viper.Get(f.Key),
		"default":     f.Value,
		"description": f.Description,
		"type":        reflect.TypeOf(f.Value).String(),
		"env":         f.Env(),
	})
}

var fields = []Field{
	{key.PlayerMaxRetries, 5, "Automatic prepare retries before a stream is reported as failed to load"},
	{key.PlayerPausedRecheckMs, 1000, "Delay in milliseconds before the paused state is read again after a pause/resume write"},
	{key.PlayerDisplayWidth, 1920, "Width of the decoder display rectangle"},
	{key.PlayerDisplayHeight, 1080, "Height of the decoder display rectangle"},
	{key.PlayerDisplayMethod, constant.DisplayLetterBox, "Decoder display method"},
	{key.PlayerPlatform, "", "Platform user agent, e.g. \"Mozilla/5.0 (SMART-TV; Linux; Tizen 6.0)\".\nEmpty means unknown"},
	{key.TracksEndpoint, "", "Base URL of the extended track metadata service.\nFetching is disabled if empty"},
	{key.TracksMinPlatformVersion, "6.0", "Minimum platform version that fetches extended track metadata"},
	{key.TracksCacheHours, 48, "Lifetime of cached extended track metadata in hours"},
	{key.SubtitlesSize, 100, "Initial subtitles size"},
	{key.SubtitlesOffset, 0, "Initial subtitles bottom offset in percent. From 0 to 100"},
	{key.SubtitlesTextColor, "rgb(255, 255, 255)", "Initial subtitles text color"},
	{key.SubtitlesBackgroundColor, "rgba(0, 0, 0, 0)", "Initial subtitles background color"},
	{key.SubtitlesOutlineColor, "rgb(34, 34, 34)", "Initial subtitles outline color"},
	{key.SubtitlesOpacity, 100, "Initial subtitles opacity. From 0 to 100"},
	{key.LogsWrite, false, "Write logs"},
	{key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace"},
	{key.LogsJson, false, "Use json format for logs"},
	{key.CliColored, true, "Enable colored CLI output"},
	{key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)"},
}

// Default indexes every registered field by key.
var Default = lo.KeyBy(fields, func(f Field) string { return f.Key })

// EnvExposed lists the keys bound to environment variables.
var EnvExposed = lo.Map(fields, func(f Field, _ int) string { return f.Key })

func init() {
	if len(Default) != len(fields) {
		panic("duplicate config key")
	}
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
