package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_SPEECH_KEY", "test-key")

	cfg, err := Load(noEnvFile(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTP.Port != "5004" {
		t.Errorf("expected port 5004, got %s", cfg.HTTP.Port)
	}
	if cfg.HTTP.MaxUploadBytes != 32<<20 {
		t.Errorf("expected 32MB upload limit, got %d", cfg.HTTP.MaxUploadBytes)
	}
	if len(cfg.HTTP.AllowedOrigins) != 1 || cfg.HTTP.AllowedOrigins[0] != "*" {
		t.Errorf("unexpected origins: %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.Storage.Dir != "audio" {
		t.Errorf("expected storage dir audio, got %s", cfg.Storage.Dir)
	}
	if cfg.Storage.SessionTTL != 24*time.Hour {
		t.Errorf("expected 24h session ttl, got %s", cfg.Storage.SessionTTL)
	}
	if cfg.Recognition.Backend != BackendGoogle {
		t.Errorf("expected google backend, got %s", cfg.Recognition.Backend)
	}
	if cfg.Recognition.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", cfg.Recognition.Timeout)
	}
	if cfg.Recognition.Concurrency != 1 {
		t.Errorf("expected sequential recognition, got %d", cfg.Recognition.Concurrency)
	}
	if cfg.Model.Path != "model/placeholder_model.pkl" {
		t.Errorf("unexpected model path: %s", cfg.Model.Path)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RECOGNITION_BACKEND", "Yandex")
	t.Setenv("YANDEX_SPEECHKIT_API_KEY", "yk")
	t.Setenv("RECOGNITION_TIMEOUT", "5s")
	t.Setenv("RECOGNITION_CONCURRENCY", "4")
	t.Setenv("MAX_UPLOAD_MB", "2")
	t.Setenv("SESSION_TTL", "0")

	cfg, err := Load(noEnvFile(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTP.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.HTTP.Port)
	}
	if len(cfg.HTTP.AllowedOrigins) != 2 || cfg.HTTP.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.Recognition.Backend != BackendYandex || cfg.Recognition.YandexAPIKey != "yk" {
		t.Errorf("unexpected recognition config: %+v", cfg.Recognition)
	}
	if cfg.Recognition.Timeout != 5*time.Second || cfg.Recognition.Concurrency != 4 {
		t.Errorf("unexpected timeout/concurrency: %s/%d", cfg.Recognition.Timeout, cfg.Recognition.Concurrency)
	}
	if cfg.HTTP.MaxUploadBytes != 2<<20 {
		t.Errorf("expected 2MB upload limit, got %d", cfg.HTTP.MaxUploadBytes)
	}
	if cfg.Storage.SessionTTL != 0 {
		t.Errorf("expected session sweeping disabled, got %s", cfg.Storage.SessionTTL)
	}
}

func TestLoadRejectsNegativeSessionTTL(t *testing.T) {
	t.Setenv("GOOGLE_SPEECH_KEY", "test-key")
	t.Setenv("SESSION_TTL", "-1h")

	if _, err := Load(noEnvFile(t)); err == nil {
		t.Error("expected negative SESSION_TTL to be rejected")
	}
}

func TestLoadEnvFile(t *testing.T) {
	for _, k := range []string{"RECOGNITION_BACKEND", "OPENAI_API_KEY", "OPENAI_MODEL"} {
		if _, ok := os.LookupEnv(k); ok {
			t.Skipf("%s already set in environment", k)
		}
		key := k
		t.Cleanup(func() { os.Unsetenv(key) })
	}

	path := filepath.Join(t.TempDir(), "test.env")
	content := "RECOGNITION_BACKEND=openai\nOPENAI_API_KEY=sk-test\nOPENAI_MODEL=whisper-large\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Recognition.Backend != BackendOpenAI || cfg.Recognition.OpenAIKey != "sk-test" {
		t.Errorf("env file values not applied: %+v", cfg.Recognition)
	}
	if cfg.Recognition.OpenAIModel != "whisper-large" {
		t.Errorf("expected model whisper-large, got %s", cfg.Recognition.OpenAIModel)
	}
}

func TestRecognitionValidation(t *testing.T) {
	valid := RecognitionConfig{
		Backend:     BackendGoogle,
		Language:    "en-US",
		Timeout:     time.Second,
		Concurrency: 1,
		GoogleKey:   "k",
	}

	tests := []struct {
		name     string
		mutate   func(*RecognitionConfig)
		errorMsg string
	}{
		{"valid", func(*RecognitionConfig) {}, ""},
		{"unknown backend", func(r *RecognitionConfig) { r.Backend = "watson" }, "unknown backend"},
		{"missing google key", func(r *RecognitionConfig) { r.GoogleKey = "" }, "GOOGLE_SPEECH_KEY"},
		{"missing yandex key", func(r *RecognitionConfig) { r.Backend = BackendYandex }, "YANDEX_SPEECHKIT_API_KEY"},
		{"missing openai key", func(r *RecognitionConfig) { r.Backend = BackendOpenAI }, "OPENAI_API_KEY"},
		{"zero timeout", func(r *RecognitionConfig) { r.Timeout = 0 }, "RECOGNITION_TIMEOUT"},
		{"zero concurrency", func(r *RecognitionConfig) { r.Concurrency = 0 }, "RECOGNITION_CONCURRENCY"},
		{"empty language", func(r *RecognitionConfig) { r.Language = "" }, "RECOGNITION_LANGUAGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.errorMsg == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.errorMsg)
			}
			if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("expected error containing %q, got %v", tt.errorMsg, err)
			}
		})
	}
}
