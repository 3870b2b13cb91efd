package config

const (
	defaultDataDir             = "~/.local/share/bingeboard"
	defaultLogDir              = "~/.local/share/bingeboard/logs"
	defaultAPIBind             = "127.0.0.1:7489"
	defaultTMDBLanguage        = "en-US"
	defaultTMDBBaseURL         = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL    = "https://image.tmdb.org/t/p"
	defaultTMDBWatchRegion     = "IN"
	defaultTMDBRequestsPerSec  = 20
	defaultTMDBTimeoutSeconds  = 15
	defaultYouTubeBaseURL      = "https://www.googleapis.com/youtube/v3"
	defaultIMDbBaseURL         = "https://imdb236.p.rapidapi.com"
	defaultIMDbHost            = "imdb236.p.rapidapi.com"
	defaultLLMBaseURL          = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel            = "google/gemini-2.0-flash-001"
	defaultLLMReferer          = "https://github.com/bingeboard/bingeboard"
	defaultLLMTitle            = "BingeBoard Assistant"
	defaultLLMTimeoutSeconds   = 60
	defaultLLMRetryAttempts    = 1
	defaultAssistantPerMinute  = 20
	defaultNtfyTimeoutSeconds  = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultExampleTMDBKeyValue = "YOUR_TMDB_API_KEY_HERE"
)

// ExampleTMDBKey is the placeholder key shipped in sample configuration.
const ExampleTMDBKey = defaultExampleTMDBKeyValue

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		TMDB: TMDB{
			BaseURL:           defaultTMDBBaseURL,
			ImageBaseURL:      defaultTMDBImageBaseURL,
			Language:          defaultTMDBLanguage,
			WatchRegion:       defaultTMDBWatchRegion,
			RequestsPerSecond: defaultTMDBRequestsPerSec,
			TimeoutSeconds:    defaultTMDBTimeoutSeconds,
		},
		YouTube: YouTube{
			BaseURL: defaultYouTubeBaseURL,
		},
		IMDb: IMDb{
			BaseURL: defaultIMDbBaseURL,
			Host:    defaultIMDbHost,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
			RetryAttempts:  defaultLLMRetryAttempts,
		},
		API: API{
			AssistantRequestsPerMinute: defaultAssistantPerMinute,
		},
		Notifications: Notifications{
			RequestTimeoutSeconds: defaultNtfyTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
