package delivery

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Vovarama1992/voicelab/internal/domain"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"missing file", domain.ErrMissingFile, http.StatusBadRequest, "No audio file provided."},
		{"not found", &domain.Error{Kind: domain.KindNotFound, Msg: "Audio file not found."}, http.StatusNotFound, "Audio file not found."},
		{"service", &domain.Error{Kind: domain.KindServiceError, Msg: "Service error: x"}, http.StatusServiceUnavailable, "Service error: x"},
		{"wrapped", fmt.Errorf("outer: %w", &domain.Error{Kind: domain.KindWriteError, Msg: "Could not save enhanced audio"}), http.StatusInternalServerError, "Could not save enhanced audio"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, msgUnexpected},
		{"unknown kind", &domain.Error{Kind: domain.Kind(99), Msg: "leak"}, http.StatusInternalServerError, msgUnexpected},
		{"internal without message", &domain.Error{Kind: domain.KindInternal}, http.StatusInternalServerError, msgUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := translate(tt.err)
			if status != tt.wantStatus || msg != tt.wantMsg {
				t.Errorf("got (%d, %q), want (%d, %q)", status, msg, tt.wantStatus, tt.wantMsg)
			}
		})
	}
}
