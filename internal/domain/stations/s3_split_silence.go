package stations

import (
	"log"

	"github.com/Vovarama1992/voicelab/internal/audio"
)

const (
	MinSilenceMs    = 500
	SilenceOffsetDB = 14
	KeepSilenceMs   = 200
	SeekStepMs      = 1
)

type S3SplitSilence struct{}

func NewS3SplitSilence() *S3SplitSilence { return &S3SplitSilence{} }

// Run returns the chunk boundaries of clip. The threshold follows the clip's own
// loudness: anything quieter than its average dBFS minus SilenceOffsetDB is silence.
func (s *S3SplitSilence) Run(clip *audio.Clip) []audio.Range {
	dbfs := clip.DBFS()
	ranges := audio.SplitRanges(clip, audio.SilenceOptions{
		MinSilenceMs:  MinSilenceMs,
		ThresholdDB:   dbfs - SilenceOffsetDB,
		KeepSilenceMs: KeepSilenceMs,
		SeekStepMs:    SeekStepMs,
	})

	log.Printf("[S3][OK] dur_ms=%d dbfs=%.1f chunks=%d", clip.DurationMs(), dbfs, len(ranges))
	return ranges
}
