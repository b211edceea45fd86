package infra

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Vovarama1992/voicelab/internal/audio"
	"github.com/Vovarama1992/voicelab/internal/models"
	"github.com/Vovarama1992/voicelab/internal/ports"
	"github.com/Vovarama1992/voicelab/internal/textutil"
)

const googleSpeechURL = "http://www.google.com/speech-api/v2/recognize"

// GoogleSpeechService talks to the Google web speech v2 endpoint used by Chromium.
type GoogleSpeechService struct {
	key      string
	endpoint string
	lang     string
	client   *http.Client
}

func NewGoogleSpeechService(key, endpoint, lang string, client *http.Client) ports.Recognizer {
	if endpoint == "" {
		endpoint = googleSpeechURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &GoogleSpeechService{
		key:      key,
		endpoint: endpoint,
		lang:     lang,
		client:   client,
	}
}

// The endpoint streams one JSON object per line; the first is usually an empty result.
type googleResponse struct {
	Result []struct {
		Alternative []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternative"`
		Final bool `json:"final"`
	} `json:"result"`
}

func (g *GoogleSpeechService) Recognize(ctx context.Context, seg models.Segment) (string, error) {
	q := url.Values{}
	q.Set("client", "chromium")
	q.Set("lang", g.lang)
	q.Set("key", g.key)

	body := audio.PCM16BE(seg.Samples)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"?"+q.Encode(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", fmt.Sprintf("audio/l16; rate=%d", seg.SampleRate))

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("google speech request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("google speech http %d: %s", resp.StatusCode, textutil.Truncate(string(raw), 180))
	}

	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		var parsed googleResponse
		if err := json.Unmarshal([]byte(line), &parsed); err != nil {
			return "", fmt.Errorf("google speech decode: %w", err)
		}
		if len(parsed.Result) == 0 {
			continue
		}

		alts := parsed.Result[0].Alternative
		if len(alts) == 0 || strings.TrimSpace(alts[0].Transcript) == "" {
			return "", ports.ErrUnintelligible
		}
		return strings.TrimSpace(alts[0].Transcript), nil
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("google speech read: %w", err)
	}

	return "", ports.ErrUnintelligible
}
