package infra

import (
	"fmt"
	"net/http"

	"github.com/Vovarama1992/voicelab/internal/config"
	"github.com/Vovarama1992/voicelab/internal/ports"
)

// NewRecognizer builds the recognition backend selected by cfg.Backend.
func NewRecognizer(cfg config.RecognitionConfig) (ports.Recognizer, error) {
	client := &http.Client{}

	switch cfg.Backend {
	case config.BackendGoogle:
		return NewGoogleSpeechService(cfg.GoogleKey, cfg.GoogleURL, cfg.Language, client), nil
	case config.BackendYandex:
		return NewYandexSTTService(cfg.YandexAPIKey, cfg.YandexURL, cfg.Language, client), nil
	case config.BackendOpenAI:
		return NewWhisperService(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.Language), nil
	default:
		return nil, fmt.Errorf("unknown recognition backend %q", cfg.Backend)
	}
}
