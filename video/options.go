package video

import (
	"time"

	"github.com/anisan-cli/avbridge/key"
	"github.com/anisan-cli/avbridge/tracksdata"
	"github.com/anisan-cli/avbridge/where"
	"github.com/spf13/viper"
)

// CueStyle is the presentation applied to a displayed subtitle cue.
type CueStyle struct {
	// Offset is the distance from the bottom edge in percent.
	Offset int
	// FontSize is in vmin units.
	FontSize        int
	TextColor       string
	BackgroundColor string
	OutlineColor    string
	Opacity         float64
}

// Surface is the visual element that hosts the video plane and subtitle cues.
type Surface interface {
	ShowCue(text string, style CueStyle)
	ClearCues()
	Detach()
}

// Timer is a pending single-shot callback.
type Timer interface {
	Stop() bool
}

// Clock schedules single-shot callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Options configure a Video.
type Options struct {
	Surface Surface
	Fetcher tracksdata.Fetcher
	Clock   Clock

	// NormalizeColor converts a user supplied color string into the form
	// reported by the color properties.
	NormalizeColor func(string) (string, error)

	// Platform is the host user agent. Extended track metadata is only
	// fetched on unknown platforms or ones at least MinPlatformVersion.
	Platform           string
	MinPlatformVersion string

	MaxRetries    int
	PausedRecheck time.Duration

	DisplayWidth  int
	DisplayHeight int
	DisplayMethod string

	SubtitlesSize            int
	SubtitlesOffset          int
	SubtitlesTextColor       string
	SubtitlesBackgroundColor string
	SubtitlesOutlineColor    string
	// SubtitlesOpacity is on the 0-100 input scale.
	SubtitlesOpacity float64
}

// DefaultOptions materializes the configured values. The surface is left to the caller.
func DefaultOptions() Options {
	var fetcher tracksdata.Fetcher = tracksdata.Nop{}
	if endpoint := viper.GetString(key.TracksEndpoint); endpoint != "" {
		fetcher = tracksdata.NewHTTP(
			endpoint,
			where.TracksData(),
			time.Duration(viper.GetInt(key.TracksCacheHours))*time.Hour,
		)
	}

	return Options{
		Fetcher:                  fetcher,
		Clock:                    systemClock{},
		NormalizeColor:           NormalizeColor,
		Platform:                 viper.GetString(key.PlayerPlatform),
		MinPlatformVersion:       viper.GetString(key.TracksMinPlatformVersion),
		MaxRetries:               viper.GetInt(key.PlayerMaxRetries),
		PausedRecheck:            time.Duration(viper.GetInt(key.PlayerPausedRecheckMs)) * time.Millisecond,
		DisplayWidth:             viper.GetInt(key.PlayerDisplayWidth),
		DisplayHeight:            viper.GetInt(key.PlayerDisplayHeight),
		DisplayMethod:            viper.GetString(key.PlayerDisplayMethod),
		SubtitlesSize:            viper.GetInt(key.SubtitlesSize),
		SubtitlesOffset:          viper.GetInt(key.SubtitlesOffset),
		SubtitlesTextColor:       viper.GetString(key.SubtitlesTextColor),
		SubtitlesBackgroundColor: viper.GetString(key.SubtitlesBackgroundColor),
		SubtitlesOutlineColor:    viper.GetString(key.SubtitlesOutlineColor),
		SubtitlesOpacity:         viper.GetFloat64(key.SubtitlesOpacity),
	}
}
