package infra

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/voicelab/internal/models"
	"github.com/Vovarama1992/voicelab/internal/ports"
)

// WhisperService uploads each chunk file to the OpenAI transcription API.
type WhisperService struct {
	client *openai.Client
	model  string
	lang   string
}

func NewWhisperService(apiKey, baseURL, model, lang string) ports.Recognizer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.Whisper1
	}
	return &WhisperService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		lang:   isoLanguage(lang),
	}
}

// isoLanguage reduces a BCP-47 tag like en-US to the ISO-639-1 code Whisper expects.
func isoLanguage(tag string) string {
	base, _, _ := strings.Cut(tag, "-")
	return strings.ToLower(base)
}

func (w *WhisperService) Recognize(ctx context.Context, seg models.Segment) (string, error) {
	f, err := os.Open(seg.Path)
	if err != nil {
		return "", fmt.Errorf("open chunk: %w", err)
	}
	defer f.Close()

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		Reader:   f,
		FilePath: filepath.Base(seg.Path),
		Language: w.lang,
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ports.ErrUnintelligible
	}
	return text, nil
}
