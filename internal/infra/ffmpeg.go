package infra

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"

	"github.com/Vovarama1992/voicelab/internal/textutil"
)

const maxFFmpegErrPreview = 180

// FFmpeg transcodes through an external ffmpeg binary.
type FFmpeg struct {
	bin string
}

func NewFFmpeg(bin string) *FFmpeg {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &FFmpeg{bin: bin}
}

func (f *FFmpeg) ToWAV(ctx context.Context, inPath, outPath string) error {
	start := time.Now()
	log.Printf("[FFMPEG][START] in=%s", inPath)

	cmd := exec.CommandContext(
		ctx,
		f.bin,
		"-loglevel", "error",
		"-y",
		"-i", inPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-f", "wav",
		outPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		log.Printf("[FFMPEG][ERR] %v stderr=%q", err, textutil.Truncate(strings.TrimSpace(stderr.String()), maxFFmpegErrPreview))
		return fmt.Errorf("ffmpeg to wav: %w", err)
	}

	log.Printf("[FFMPEG][OK] out=%s dur=%s", outPath, time.Since(start))
	return nil
}
