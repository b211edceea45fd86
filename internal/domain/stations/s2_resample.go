package stations

import (
	"fmt"
	"log"

	"github.com/Vovarama1992/voicelab/internal/audio"
)

type S2Resample struct{}

func NewS2Resample() *S2Resample { return &S2Resample{} }

// Run converts clip to rate, downmixing to one channel first when mono is set.
func (s *S2Resample) Run(clip *audio.Clip, rate int, mono bool) (*audio.Clip, error) {
	log.Printf("[S2][START] from=%dHz/%dch to=%dHz mono=%v", clip.SampleRate, clip.Channels, rate, mono)

	src := clip
	if mono {
		src = audio.Downmix(clip)
	}

	out, err := audio.Resample(src, rate)
	if err != nil {
		log.Printf("[S2][ERR] %v", err)
		return nil, fmt.Errorf("[S2] resample: %w", err)
	}

	log.Printf("[S2][OK] frames=%d", out.Frames())
	return out, nil
}
