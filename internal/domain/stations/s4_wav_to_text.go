package stations

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Vovarama1992/voicelab/internal/models"
	"github.com/Vovarama1992/voicelab/internal/ports"
	"github.com/Vovarama1992/voicelab/internal/textutil"
)

const defaultRecognitionTimeout = 30 * time.Second

type S4WAVtoText struct {
	stt     ports.Recognizer
	timeout time.Duration
}

func NewS4WAVtoText(stt ports.Recognizer, timeout time.Duration) *S4WAVtoText {
	if timeout <= 0 {
		timeout = defaultRecognitionTimeout
	}
	return &S4WAVtoText{stt: stt, timeout: timeout}
}

// Run recognizes one segment under the per-chunk timeout. ports.ErrUnintelligible
// is passed through unchanged so callers can tell it from a service fault.
func (s *S4WAVtoText) Run(ctx context.Context, seg models.Segment) (string, error) {
	start := time.Now()
	log.Printf("[S4][START] chunk=%d samples=%d", seg.Index, len(seg.Samples))

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	txt, err := s.stt.Recognize(ctx, seg)
	switch {
	case err == nil:
		log.Printf("[S4][OK] chunk=%d text=%q dur=%s", seg.Index, textutil.Truncate(txt, 120), time.Since(start))
	case errors.Is(err, ports.ErrUnintelligible):
		log.Printf("[S4][UNINTELLIGIBLE] chunk=%d", seg.Index)
	default:
		log.Printf("[S4][ERR] chunk=%d err=%v", seg.Index, err)
	}
	return txt, err
}
