package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vovarama1992/voicelab/internal/domain"
)

const msgUnexpected = "Unexpected error occurred"

var kindStatus = map[domain.Kind]int{
	domain.KindMissingFile:       http.StatusBadRequest,
	domain.KindSaveError:         http.StatusInternalServerError,
	domain.KindInvalidFormat:     http.StatusBadRequest,
	domain.KindNotFound:          http.StatusNotFound,
	domain.KindCorruptAudio:      http.StatusBadRequest,
	domain.KindReadError:         http.StatusBadRequest,
	domain.KindWriteError:        http.StatusInternalServerError,
	domain.KindPrepError:         http.StatusInternalServerError,
	domain.KindServiceError:      http.StatusServiceUnavailable,
	domain.KindAllUnintelligible: http.StatusBadRequest,
	domain.KindModelMissing:      http.StatusInternalServerError,
	domain.KindInternal:          http.StatusInternalServerError,
}

// translate maps a service error to the status and client message it is reported with.
func translate(err error) (int, string) {
	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, msgUnexpected
	}

	status, ok := kindStatus[de.Kind]
	if !ok {
		return http.StatusInternalServerError, msgUnexpected
	}
	if de.Msg == "" {
		return status, msgUnexpected
	}
	return status, de.Msg
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
