package config

const (
	defaultDataDir            = "~/.local/share/owlwatch"
	defaultLogDir             = "~/.local/share/owlwatch/logs"
	defaultTVMazeBaseURL      = "https://api.tvmaze.com"
	defaultRequestTimeout     = 10
	defaultRetryAttempts      = 1
	defaultRequestDelayMS     = 500
	defaultSpecialsPolicy     = "smart"
	defaultMaxTimelineEntries = 100
	defaultArchiveDays        = 30
	defaultNtfyTimeout        = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		TVMaze: TVMaze{
			BaseURL:        defaultTVMazeBaseURL,
			RequestTimeout: defaultRequestTimeout,
			RetryAttempts:  defaultRetryAttempts,
			RequestDelayMS: defaultRequestDelayMS,
		},
		Tracking: Tracking{
			SpecialsPolicy:     defaultSpecialsPolicy,
			MaxTimelineEntries: defaultMaxTimelineEntries,
			ArchiveDays:        defaultArchiveDays,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
