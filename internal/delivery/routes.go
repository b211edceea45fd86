package delivery

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, h *AudioHandler, progress http.HandlerFunc) {
	r.Get("/", h.Index)
	r.Handle("/static/*", h.Static())
	r.Post("/session", h.NewSession)

	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware)

		r.Post("/save_audio", h.SaveAudio)
		r.Post("/enhance", h.Enhance)
		r.Post("/transcribe", h.Transcribe)
		r.Post("/predict_model", h.PredictModel)

		if progress != nil {
			r.Get("/ws", progress)
		}
	})
}
