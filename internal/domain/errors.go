package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation. The delivery layer maps each kind to an
// HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindMissingFile
	KindSaveError
	KindInvalidFormat
	KindNotFound
	KindCorruptAudio
	KindReadError
	KindWriteError
	KindPrepError
	KindServiceError
	KindAllUnintelligible
	KindModelMissing
)

var kindNames = map[Kind]string{
	KindInternal:          "internal",
	KindMissingFile:       "missing_file",
	KindSaveError:         "save_error",
	KindInvalidFormat:     "invalid_format",
	KindNotFound:          "not_found",
	KindCorruptAudio:      "corrupt_audio",
	KindReadError:         "read_error",
	KindWriteError:        "write_error",
	KindPrepError:         "prep_error",
	KindServiceError:      "service_error",
	KindAllUnintelligible: "all_unintelligible",
	KindModelMissing:      "model_missing",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the failure returned by AudioService. Msg is safe to show a client;
// Err carries the underlying cause for logs.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

var ErrMissingFile = newError(KindMissingFile, "No audio file provided.", nil)
