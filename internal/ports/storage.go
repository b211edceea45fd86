package ports

import (
	"io"

	"github.com/Vovarama1992/voicelab/internal/models"
)

// Storage is the per-session working area holding a recording and its derived files.
type Storage interface {
	// Lock takes the session's exclusive lock and returns its release func.
	Lock(session string) (unlock func())
	Path(session string, a models.Artifact) string
	Exists(session string, a models.Artifact) (bool, error)
	Write(session string, a models.Artifact, r io.Reader) error
	Read(session string, a models.Artifact) ([]byte, error)
	Remove(session string, a models.Artifact) error
}
