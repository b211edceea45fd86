package stations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Vovarama1992/voicelab/internal/audio"
	"github.com/Vovarama1992/voicelab/internal/ports"
)

const sniffBytes = 12

type S1Normalize struct {
	transcoder ports.Transcoder
}

func NewS1Normalize(transcoder ports.Transcoder) *S1Normalize {
	return &S1Normalize{transcoder: transcoder}
}

// Run decodes the file at path whatever its container and rewrites it in place
// as 16-bit PCM WAV with the source rate and channel count.
func (s *S1Normalize) Run(ctx context.Context, path string) (*audio.Clip, error) {
	start := time.Now()
	log.Printf("[S1][START] path=%s", path)

	clip, err := s.decode(ctx, path)
	if err != nil {
		log.Printf("[S1][ERR] %v", err)
		return nil, err
	}

	if err := audio.WriteWAVFile(path, clip); err != nil {
		return nil, fmt.Errorf("[S1] write canonical wav: %w", err)
	}

	log.Printf("[S1][OK] channels=%d rate=%d frames=%d dur=%s",
		clip.Channels, clip.SampleRate, clip.Frames(), time.Since(start))
	return clip, nil
}

func (s *S1Normalize) decode(ctx context.Context, path string) (*audio.Clip, error) {
	head, err := readHead(path)
	if err != nil {
		return nil, fmt.Errorf("[S1] read upload: %w", err)
	}

	switch {
	case audio.IsWAV(head):
		clip, err := decodeWAVFile(path)
		if err == nil {
			return clip, nil
		}
		log.Printf("[S1][WAV-FALLBACK] %v", err)
	case audio.IsMP3(head):
		clip, err := decodeMP3File(path)
		if err == nil {
			return clip, nil
		}
		log.Printf("[S1][MP3-FALLBACK] %v", err)
	}

	return s.viaTranscoder(ctx, path)
}

func (s *S1Normalize) viaTranscoder(ctx context.Context, path string) (*audio.Clip, error) {
	if s.transcoder == nil {
		return nil, fmt.Errorf("[S1] unsupported container and no transcoder configured")
	}

	tmp := path + ".transcoded.wav"
	defer os.Remove(tmp)

	if err := s.transcoder.ToWAV(ctx, path, tmp); err != nil {
		return nil, fmt.Errorf("[S1] transcode: %w", err)
	}

	clip, err := decodeWAVFile(tmp)
	if err != nil {
		return nil, fmt.Errorf("[S1] decode transcoded wav: %w", err)
	}
	return clip, nil
}

// decodeWAVFile keeps header-valid but empty recordings as empty clips so the
// zero-frame condition surfaces at enhance time.
func decodeWAVFile(path string) (*audio.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	clip, err := audio.DecodeWAV(f)
	if !errors.Is(err, audio.ErrNoFrames) {
		return clip, err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	info, err := audio.Inspect(f)
	if err != nil {
		return nil, err
	}
	return &audio.Clip{Channels: info.Channels, SampleRate: info.SampleRate}, nil
}

func decodeMP3File(path string) (*audio.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return audio.DecodeMP3(f)
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, sniffBytes)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return head[:n], nil
}
