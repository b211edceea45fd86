package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendGoogle = "google"
	BackendYandex = "yandex"
	BackendOpenAI = "openai"
)

type Config struct {
	HTTP        HTTPConfig
	Storage     StorageConfig
	Recognition RecognitionConfig
	Model       ModelConfig
	Log         LogConfig
}

type HTTPConfig struct {
	Port           string
	AllowedOrigins []string
	MaxUploadBytes int64
}

type StorageConfig struct {
	Dir        string
	FFmpegPath string
	// SessionTTL is how long an untouched session directory is kept; 0 keeps them forever.
	SessionTTL time.Duration
}

type RecognitionConfig struct {
	Backend     string
	Language    string
	Timeout     time.Duration
	Concurrency int

	GoogleKey string
	GoogleURL string

	YandexAPIKey string
	YandexURL    string

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
}

type ModelConfig struct {
	Path string
}

type LogConfig struct {
	Level string
}

// setting binds a config key to its environment variable and default.
type setting struct {
	key string
	env string
	def any
}

var settings = []setting{
	{"http.port", "PORT", "5004"},
	{"http.cors_origins", "CORS_ORIGINS", "*"},
	{"http.max_upload_mb", "MAX_UPLOAD_MB", 32},
	{"storage.dir", "STORAGE_DIR", "audio"},
	{"storage.ffmpeg", "FFMPEG_PATH", "ffmpeg"},
	{"storage.session_ttl", "SESSION_TTL", "24h"},
	{"recognition.backend", "RECOGNITION_BACKEND", BackendGoogle},
	{"recognition.language", "RECOGNITION_LANGUAGE", "en-US"},
	{"recognition.timeout", "RECOGNITION_TIMEOUT", "30s"},
	{"recognition.concurrency", "RECOGNITION_CONCURRENCY", 1},
	{"recognition.google.key", "GOOGLE_SPEECH_KEY", ""},
	{"recognition.google.url", "GOOGLE_SPEECH_URL", ""},
	{"recognition.yandex.key", "YANDEX_SPEECHKIT_API_KEY", ""},
	{"recognition.yandex.url", "YANDEX_SPEECHKIT_URL", ""},
	{"recognition.openai.key", "OPENAI_API_KEY", ""},
	{"recognition.openai.base_url", "OPENAI_BASE_URL", ""},
	{"recognition.openai.model", "OPENAI_MODEL", "whisper-1"},
	{"model.path", "MODEL_PATH", "model/placeholder_model.pkl"},
	{"log.level", "LOG_LEVEL", "info"},
}

// Load reads optional .env files into the process environment and builds the
// configuration from environment variables.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// missing .env is fine, real env still applies
		_ = godotenv.Load(f)
	}

	v := viper.New()
	for _, s := range settings {
		v.SetDefault(s.key, s.def)
		if err := v.BindEnv(s.key, s.env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", s.env, err)
		}
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Port:           v.GetString("http.port"),
			AllowedOrigins: splitList(v.GetString("http.cors_origins")),
			MaxUploadBytes: v.GetInt64("http.max_upload_mb") << 20,
		},
		Storage: StorageConfig{
			Dir:        v.GetString("storage.dir"),
			FFmpegPath: v.GetString("storage.ffmpeg"),
			SessionTTL: v.GetDuration("storage.session_ttl"),
		},
		Recognition: RecognitionConfig{
			Backend:       strings.ToLower(v.GetString("recognition.backend")),
			Language:      v.GetString("recognition.language"),
			Timeout:       v.GetDuration("recognition.timeout"),
			Concurrency:   v.GetInt("recognition.concurrency"),
			GoogleKey:     v.GetString("recognition.google.key"),
			GoogleURL:     v.GetString("recognition.google.url"),
			YandexAPIKey:  v.GetString("recognition.yandex.key"),
			YandexURL:     v.GetString("recognition.yandex.url"),
			OpenAIKey:     v.GetString("recognition.openai.key"),
			OpenAIBaseURL: v.GetString("recognition.openai.base_url"),
			OpenAIModel:   v.GetString("recognition.openai.model"),
		},
		Model: ModelConfig{
			Path: v.GetString("model.path"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTP.Port == "" {
		return fmt.Errorf("http: PORT is empty")
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		return fmt.Errorf("http: MAX_UPLOAD_MB must be positive")
	}
	if c.Storage.Dir == "" {
		return fmt.Errorf("storage: STORAGE_DIR is empty")
	}
	if c.Storage.SessionTTL < 0 {
		return fmt.Errorf("storage: SESSION_TTL must not be negative")
	}
	if err := c.Recognition.Validate(); err != nil {
		return fmt.Errorf("recognition: %w", err)
	}
	return nil
}

func (r *RecognitionConfig) Validate() error {
	if r.Timeout <= 0 {
		return fmt.Errorf("RECOGNITION_TIMEOUT must be positive, got %s", r.Timeout)
	}
	if r.Concurrency < 1 {
		return fmt.Errorf("RECOGNITION_CONCURRENCY must be at least 1, got %d", r.Concurrency)
	}
	if r.Language == "" {
		return fmt.Errorf("RECOGNITION_LANGUAGE is empty")
	}

	switch r.Backend {
	case BackendGoogle:
		if r.GoogleKey == "" {
			return fmt.Errorf("GOOGLE_SPEECH_KEY not set")
		}
	case BackendYandex:
		if r.YandexAPIKey == "" {
			return fmt.Errorf("YANDEX_SPEECHKIT_API_KEY not set")
		}
	case BackendOpenAI:
		if r.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY not set")
		}
	default:
		return fmt.Errorf("unknown backend %q", r.Backend)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
