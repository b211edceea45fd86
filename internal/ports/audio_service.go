package ports

import (
	"context"
	"io"
)

// ChunkEvent reports the outcome of one transcription chunk as it happens.
type ChunkEvent struct {
	Session string
	Chunk   int
	Total   int
	Status  string
	Text    string
}

type AudioProcessor interface {
	Save(ctx context.Context, session string, upload io.Reader) error
	Enhance(ctx context.Context, session string) ([]byte, error)
	Transcribe(ctx context.Context, session string) (string, error)
	PredictModel(ctx context.Context) (string, error)
	Events() <-chan ChunkEvent
}
