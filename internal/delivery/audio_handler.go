package delivery

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/google/uuid"

	"github.com/Vovarama1992/voicelab/internal/domain"
	"github.com/Vovarama1992/voicelab/internal/models"
	"github.com/Vovarama1992/voicelab/internal/ports"
)

//go:embed static
var staticFiles embed.FS

const uploadField = "audio"

type AudioHandler struct {
	audio     ports.AudioProcessor
	log       *logger.ZapLogger
	maxUpload int64
}

func NewAudioHandler(audio ports.AudioProcessor, log *logger.ZapLogger, maxUpload int64) *AudioHandler {
	return &AudioHandler{audio: audio, log: log, maxUpload: maxUpload}
}

func (h *AudioHandler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		h.fail(w, r, "index page missing", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (h *AudioHandler) Static() http.Handler {
	sub, _ := fs.Sub(staticFiles, "static")
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

func (h *AudioHandler) SaveAudio(w http.ResponseWriter, r *http.Request) {
	if h.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	}

	file, hdr, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Audio file too large.")
			return
		}
		h.fail(w, r, "save rejected", domain.ErrMissingFile)
		return
	}
	defer file.Close()

	session := SessionFrom(r.Context())
	if err := h.audio.Save(r.Context(), session, file); err != nil {
		h.fail(w, r, "save failed", err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "audio saved",
		Fields: map[string]any{
			"session":  session,
			"filename": hdr.Filename,
			"size":     hdr.Size,
		},
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Audio saved successfully."})
}

func (h *AudioHandler) Enhance(w http.ResponseWriter, r *http.Request) {
	data, err := h.audio.Enhance(r.Context(), SessionFrom(r.Context()))
	if err != nil {
		h.fail(w, r, "enhance failed", err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Disposition", `attachment; filename="`+string(models.EnhancedRecording)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *AudioHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	text, err := h.audio.Transcribe(r.Context(), SessionFrom(r.Context()))
	if err != nil {
		h.fail(w, r, "transcribe failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"transcription": text})
}

func (h *AudioHandler) PredictModel(w http.ResponseWriter, r *http.Request) {
	status, err := h.audio.PredictModel(r.Context())
	if err != nil {
		h.fail(w, r, "predict failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (h *AudioHandler) NewSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"session": uuid.NewString()})
}

// fail logs err with the request context and writes its translated response.
func (h *AudioHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status, clientMsg := translate(err)

	level := "warn"
	if status >= http.StatusInternalServerError {
		level = "error"
	}
	h.log.Log(logger.LogEntry{
		Level:   level,
		Message: msg,
		Fields: map[string]any{
			"path":    r.URL.Path,
			"session": SessionFrom(r.Context()),
			"status":  status,
			"kind":    domain.KindOf(err).String(),
		},
		Error: err,
	})
	writeError(w, status, clientMsg)
}
