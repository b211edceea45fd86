package ports

import (
	"context"
	"errors"

	"github.com/Vovarama1992/voicelab/internal/models"
)

// ErrUnintelligible is returned by a Recognizer when the service answered but
// found no recognizable speech in the segment. Any other error is a service fault.
var ErrUnintelligible = errors.New("speech unintelligible")

//go:generate mockgen -source=recognizer.go -destination=../mocks/recognizer.go -package=mocks

type Recognizer interface {
	Recognize(ctx context.Context, seg models.Segment) (string, error)
}
