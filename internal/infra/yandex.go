package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Vovarama1992/voicelab/internal/audio"
	"github.com/Vovarama1992/voicelab/internal/models"
	"github.com/Vovarama1992/voicelab/internal/ports"
	"github.com/Vovarama1992/voicelab/internal/textutil"
)

const yandexSTTURL = "https://stt.api.cloud.yandex.net/speech/v1/stt:recognize"

type YandexSTTService struct {
	apiKey   string
	endpoint string
	lang     string
	client   *http.Client
}

func NewYandexSTTService(apiKey, endpoint, lang string, client *http.Client) ports.Recognizer {
	if endpoint == "" {
		endpoint = yandexSTTURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &YandexSTTService{
		apiKey:   apiKey,
		endpoint: endpoint,
		lang:     lang,
		client:   client,
	}
}

type yandexResponse struct {
	Result string `json:"result"`
	Error  string `json:"error_message"`
}

func (s *YandexSTTService) Recognize(ctx context.Context, seg models.Segment) (string, error) {
	q := url.Values{}
	q.Set("lang", s.lang)
	q.Set("format", "lpcm")
	q.Set("sampleRateHertz", strconv.Itoa(seg.SampleRate))

	pcm := audio.PCM16LE(seg.Samples)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"?"+q.Encode(), bytes.NewReader(pcm))
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Api-Key "+s.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("yandex stt request: %w", err)
	}
	defer resp.Body.Close()

	rawResp, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("yandex stt http %d: %s", resp.StatusCode, textutil.Truncate(string(rawResp), 180))
	}

	var parsed yandexResponse
	if err := json.Unmarshal(rawResp, &parsed); err != nil {
		return "", fmt.Errorf("yandex stt decode: %w", err)
	}

	if parsed.Error != "" {
		return "", errors.New(parsed.Error)
	}

	text := strings.TrimSpace(parsed.Result)
	if text == "" {
		return "", ports.ErrUnintelligible
	}
	return text, nil
}
