package ports

import "context"

//go:generate mockgen -source=transcoder.go -destination=../mocks/transcoder.go -package=mocks

// Transcoder converts an arbitrary audio container into a 16-bit PCM WAV file.
type Transcoder interface {
	ToWAV(ctx context.Context, inPath, outPath string) error
}
