package config

const (
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

var (
	defaultVideoExtensions    = []string{"mkv", "mp4"}
	defaultSubtitleExtensions = []string{"srt", "ass"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		General: General{
			VideoExtensions:    append([]string(nil), defaultVideoExtensions...),
			SubtitleExtensions: append([]string(nil), defaultSubtitleExtensions...),
		},
		Renaming: Renaming{
			Report: true,
		},
		Embedding: Embedding{
			DefaultTrack: true,
			Report:       true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
