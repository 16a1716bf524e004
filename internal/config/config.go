package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"reelsmith/pkg/log"
)

// Config holds all application configuration.
// Values come from environment variables with sensible defaults; a .env file
// is honored when present (loaded by the command layer).
//
// Environment Variables:
// Synthesis:
// - TTS_ENDPOINTS: comma-separated candidate addresses, tried in order (default: http://localhost:5001)
// - TTS_TIMEOUT: per-call timeout in seconds (default: 60)
// - TTS_VOICES_FILE: JSON voice table path (optional, built-in defaults used otherwise)
// - TTS_PHONETIC_FILE: JSON phonetic substitution table path (optional)
// - DEFAULT_LANGUAGE: fallback language code for voice resolution (default: tr)
//
// Transcription:
// - STT_ENDPOINTS: comma-separated candidate addresses (default: http://localhost:5002)
// - STT_TIMEOUT: per-call timeout in seconds (default: 120)
// - STT_MODEL: whisper model name (default: large-v3)
// - STT_COMPUTE_TYPE: int8, int16, float16 or float32 (default: int8)
// - STT_DEVICE: cpu or cuda (default: cpu)
// - STT_NUM_WORKERS: transcription worker count on the service side (default: 1)
//
// Media acquisition:
// - STOCK_API_URL: stock footage search endpoint (default: https://api.pexels.com/videos/search)
// - STOCK_API_KEY: stock footage API key
// - IMAGEGEN_BASE_URL: image generation base address, prompt is templated in
//   (default: https://image.pollinations.ai/prompt/)
// - DOWNLOAD_TIMEOUT: per-attempt download timeout in seconds (default: 120)
// - DOWNLOAD_MAX_ATTEMPTS: retry budget per asset (default: 3)
//
// Captions:
// - CAPTION_MAX_LINE_CHARS: characters per display line (default: 30)
// - CAPTION_MAX_LINES: lines per page (default: 2)
// - CAPTION_MAX_GAP_MS: silence gap forcing a page break (default: 1500)
//
// Assembly:
// - RENDER_URL: renderer collaborator address (default: http://localhost:5003)
// - RENDER_TIMEOUT: render hand-off timeout in seconds (default: 600)
// - TAIL_PADDING_MS: extra time appended after the final scene (default: 1000)
// - MUSIC_LIBRARY_FILE: JSON track list path (optional)
//
// Paths and housekeeping:
// - WORK_DIR: per-job temp workspace root (default: /tmp/reelsmith)
// - OUTPUT_DIR: rendered artifact directory (default: ./output)
// - DB_PATH: sqlite database for asset usage history (default: ./data/reelsmith.db)
// - CLEANUP_CRON: janitor schedule (default: "0 * * * *")
// - CLEANUP_MAX_AGE_HOURS: stale workspace age before removal (default: 24)
//
// Server:
// - PORT: HTTP listen port (default: 8080)
type Config struct {
	Synthesis     SynthesisConfig     `json:"synthesis"`
	Transcription TranscriptionConfig `json:"transcription"`
	Fetch         FetchConfig         `json:"fetch"`
	Captions      CaptionConfig       `json:"captions"`
	Assembly      AssemblyConfig      `json:"assembly"`
	Paths         PathsConfig         `json:"paths"`
	Server        ServerConfig        `json:"server"`
	Cleanup       CleanupConfig       `json:"cleanup"`
}

// SynthesisConfig holds the speech synthesis client configuration.
type SynthesisConfig struct {
	Endpoints       []string `json:"endpoints"`
	Timeout         int      `json:"timeout"`
	VoicesFile      string   `json:"voices_file"`
	PhoneticFile    string   `json:"phonetic_file"`
	DefaultLanguage string   `json:"default_language"`
}

// TranscriptionConfig holds the transcription client configuration.
type TranscriptionConfig struct {
	Endpoints   []string `json:"endpoints"`
	Timeout     int      `json:"timeout"`
	Model       string   `json:"model"`
	ComputeType string   `json:"compute_type"`
	Device      string   `json:"device"`
	NumWorkers  int      `json:"num_workers"`
}

// FetchConfig holds media acquisition configuration.
type FetchConfig struct {
	StockAPIURL     string `json:"stock_api_url"`
	StockAPIKey     string `json:"stock_api_key"`
	ImageGenBaseURL string `json:"imagegen_base_url"`
	Timeout         int    `json:"timeout"`
	MaxAttempts     int    `json:"max_attempts"`
}

// CaptionConfig holds caption pagination limits.
type CaptionConfig struct {
	MaxLineChars int `json:"max_line_chars"`
	MaxLines     int `json:"max_lines"`
	MaxGapMs     int `json:"max_gap_ms"`
}

// AssemblyConfig holds manifest assembly configuration.
type AssemblyConfig struct {
	RenderURL        string `json:"render_url"`
	RenderTimeout    int    `json:"render_timeout"`
	TailPaddingMs    int    `json:"tail_padding_ms"`
	MusicLibraryFile string `json:"music_library_file"`
}

// PathsConfig holds filesystem locations.
type PathsConfig struct {
	WorkDir   string `json:"work_dir"`
	OutputDir string `json:"output_dir"`
	DBPath    string `json:"db_path"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port string `json:"port"`
}

// CleanupConfig holds the workspace janitor configuration.
type CleanupConfig struct {
	CronExpr    string `json:"cron_expr"`
	MaxAgeHours int    `json:"max_age_hours"`
}

// Option is a function type for configuring Config
type Option func(*Config)

// NewFromEnv creates a Config from environment variables and options.
func NewFromEnv(opts ...Option) (*Config, error) {
	config := &Config{
		Synthesis: SynthesisConfig{
			Endpoints:       getEnvList("TTS_ENDPOINTS", []string{"http://localhost:5001"}),
			Timeout:         getEnvInt("TTS_TIMEOUT", 60),
			VoicesFile:      getEnvString("TTS_VOICES_FILE", ""),
			PhoneticFile:    getEnvString("TTS_PHONETIC_FILE", ""),
			DefaultLanguage: getEnvString("DEFAULT_LANGUAGE", "tr"),
		},
		Transcription: TranscriptionConfig{
			Endpoints:   getEnvList("STT_ENDPOINTS", []string{"http://localhost:5002"}),
			Timeout:     getEnvInt("STT_TIMEOUT", 120),
			Model:       getEnvString("STT_MODEL", "large-v3"),
			ComputeType: getEnvString("STT_COMPUTE_TYPE", "int8"),
			Device:      getEnvString("STT_DEVICE", "cpu"),
			NumWorkers:  getEnvInt("STT_NUM_WORKERS", 1),
		},
		Fetch: FetchConfig{
			StockAPIURL:     getEnvString("STOCK_API_URL", "https://api.pexels.com/videos/search"),
			StockAPIKey:     getEnvString("STOCK_API_KEY", ""),
			ImageGenBaseURL: getEnvString("IMAGEGEN_BASE_URL", "https://image.pollinations.ai/prompt/"),
			Timeout:         getEnvInt("DOWNLOAD_TIMEOUT", 120),
			MaxAttempts:     getEnvInt("DOWNLOAD_MAX_ATTEMPTS", 3),
		},
		Captions: CaptionConfig{
			MaxLineChars: getEnvInt("CAPTION_MAX_LINE_CHARS", 30),
			MaxLines:     getEnvInt("CAPTION_MAX_LINES", 2),
			MaxGapMs:     getEnvInt("CAPTION_MAX_GAP_MS", 1500),
		},
		Assembly: AssemblyConfig{
			RenderURL:        getEnvString("RENDER_URL", "http://localhost:5003"),
			RenderTimeout:    getEnvInt("RENDER_TIMEOUT", 600),
			TailPaddingMs:    getEnvInt("TAIL_PADDING_MS", 1000),
			MusicLibraryFile: getEnvString("MUSIC_LIBRARY_FILE", ""),
		},
		Paths: PathsConfig{
			WorkDir:   getEnvString("WORK_DIR", "/tmp/reelsmith"),
			OutputDir: getEnvString("OUTPUT_DIR", "./output"),
			DBPath:    getEnvString("DB_PATH", "./data/reelsmith.db"),
		},
		Server: ServerConfig{
			Port: getEnvString("PORT", "8080"),
		},
		Cleanup: CleanupConfig{
			CronExpr:    getEnvString("CLEANUP_CRON", "0 * * * *"),
			MaxAgeHours: getEnvInt("CLEANUP_MAX_AGE_HOURS", 24),
		},
	}

	log.Debug("Config: %+v", config)

	for _, opt := range opts {
		opt(config)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks that required configuration is present.
func (c *Config) validate() error {
	if len(c.Synthesis.Endpoints) == 0 {
		return fmt.Errorf("TTS_ENDPOINTS must list at least one address")
	}
	if len(c.Transcription.Endpoints) == 0 {
		return fmt.Errorf("STT_ENDPOINTS must list at least one address")
	}
	if c.Fetch.MaxAttempts <= 0 {
		return fmt.Errorf("DOWNLOAD_MAX_ATTEMPTS must be positive")
	}
	return nil
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvList gets a comma-separated list from environment variables with default
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	ret := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			ret = append(ret, trimmed)
		}
	}
	if len(ret) == 0 {
		return defaultValue
	}
	return ret
}
