package delivery

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/Vovarama1992/voicelab/internal/models"
)

const SessionHeader = "X-Session-ID"

type sessionKey struct{}

// SessionMiddleware resolves the storage session of a request from the
// X-Session-ID header or the session query parameter. Requests naming neither
// use the default session.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(SessionHeader)
		if raw == "" {
			raw = r.URL.Query().Get("session")
		}

		session := models.DefaultSession
		if raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid session id")
				return
			}
			session = id.String()
		}

		ctx := context.WithValue(r.Context(), sessionKey{}, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func SessionFrom(ctx context.Context) string {
	if s, ok := ctx.Value(sessionKey{}).(string); ok {
		return s
	}
	return models.DefaultSession
}
