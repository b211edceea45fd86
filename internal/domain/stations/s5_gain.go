package stations

import (
	"log"

	"github.com/Vovarama1992/voicelab/internal/audio"
)

const (
	EnhanceSampleRate = 44100
	EnhanceGainDB     = 10.0
)

type S5Gain struct{}

func NewS5Gain() *S5Gain { return &S5Gain{} }

func (s *S5Gain) Run(clip *audio.Clip) *audio.Clip {
	log.Printf("[S5][START] gain=%+.1fdB frames=%d", EnhanceGainDB, clip.Frames())
	out := audio.ApplyGain(clip, EnhanceGainDB)
	log.Printf("[S5][OK]")
	return out
}
