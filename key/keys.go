// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Decoder Lifecycle - these keys govern how streams are opened, retried and displayed.
const (
	PlayerMaxRetries      = "player.max_retries"
	PlayerPausedRecheckMs = "player.paused_recheck_ms"
	PlayerDisplayWidth    = "player.display_width"
	PlayerDisplayHeight   = "player.display_height"
	PlayerDisplayMethod   = "player.display_method"
	PlayerPlatform        = "player.platform"
)

// Extended Track Metadata - these keys configure the optional language/label enrichment service.
const (
	TracksEndpoint           = "tracks.endpoint"
	TracksMinPlatformVersion = "tracks.min_platform_version"
	TracksCacheHours         = "tracks.cache_hours"
)

// Subtitle Styling - initial values of the style properties.
const (
	SubtitlesSize            = "subtitles.size"
	SubtitlesOffset          = "subtitles.offset"
	SubtitlesTextColor       = "subtitles.text_color"
	SubtitlesBackgroundColor = "subtitles.background_color"
	SubtitlesOutlineColor    = "subtitles.outline_color"
	SubtitlesOpacity         = "subtitles.opacity"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the command-line output.
const (
	CliColored   = "cli.colored"
	IconsVariant = "icons.variant"
)
