package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"golang.org/x/sync/errgroup"

	"github.com/Vovarama1992/voicelab/internal/audio"
	"github.com/Vovarama1992/voicelab/internal/domain/stations"
	"github.com/Vovarama1992/voicelab/internal/metrics"
	"github.com/Vovarama1992/voicelab/internal/models"
	"github.com/Vovarama1992/voicelab/internal/ports"
)

const (
	TranscriptionSampleRate = 16000
	eventBuffer             = 100
)

type Options struct {
	ModelPath          string
	RecognitionTimeout time.Duration
	// Concurrency bounds parallel recognition calls; 1 keeps chunks strictly sequential.
	Concurrency int
}

type AudioService struct {
	store ports.Storage

	s1 *stations.S1Normalize
	s2 *stations.S2Resample
	s3 *stations.S3SplitSilence
	s4 *stations.S4WAVtoText
	s5 *stations.S5Gain

	metrics *metrics.Metrics
	log     *logger.ZapLogger

	modelPath   string
	concurrency int
	events      chan ports.ChunkEvent
}

func NewAudioService(
	store ports.Storage,
	transcoder ports.Transcoder,
	stt ports.Recognizer,
	m *metrics.Metrics,
	zl *logger.ZapLogger,
	opts Options,
) *AudioService {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &AudioService{
		store:       store,
		s1:          stations.NewS1Normalize(transcoder),
		s2:          stations.NewS2Resample(),
		s3:          stations.NewS3SplitSilence(),
		s4:          stations.NewS4WAVtoText(stt, opts.RecognitionTimeout),
		s5:          stations.NewS5Gain(),
		metrics:     m,
		log:         zl,
		modelPath:   opts.ModelPath,
		concurrency: opts.Concurrency,
		events:      make(chan ports.ChunkEvent, eventBuffer),
	}
}

var _ ports.AudioProcessor = (*AudioService)(nil)

func (s *AudioService) Events() <-chan ports.ChunkEvent { return s.events }

// ========================================================================
// SAVE
// ========================================================================
func (s *AudioService) Save(ctx context.Context, session string, upload io.Reader) error {
	if upload == nil {
		return ErrMissingFile
	}

	unlock := s.store.Lock(session)
	defer unlock()

	if err := s.store.Write(session, models.Recording, upload); err != nil {
		return newError(KindSaveError, "Could not save audio file.", err)
	}

	clip, err := s.s1.Run(ctx, s.store.Path(session, models.Recording))
	if err != nil {
		if rmErr := s.store.Remove(session, models.Recording); rmErr != nil {
			s.logError("remove rejected upload", session, rmErr)
		}
		return newError(KindInvalidFormat, "Invalid audio format", err)
	}

	s.metrics.Saves.Inc()
	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "recording saved",
		Fields: map[string]any{
			"session":  session,
			"channels": clip.Channels,
			"rate":     clip.SampleRate,
			"ms":       clip.DurationMs(),
		},
	})
	return nil
}

// ========================================================================
// ENHANCE
// ========================================================================
func (s *AudioService) Enhance(ctx context.Context, session string) ([]byte, error) {
	unlock := s.store.Lock(session)
	defer unlock()

	if err := s.requireRecording(session); err != nil {
		return nil, err
	}

	clip, err := s.loadForEnhance(session)
	if err != nil {
		return nil, err
	}

	clip, err = s.s2.Run(clip, stations.EnhanceSampleRate, false)
	if err != nil {
		return nil, newError(KindReadError, "Could not read audio file", err)
	}

	out := s.s5.Run(clip)

	if err := audio.WriteWAVFile(s.store.Path(session, models.EnhancedRecording), out); err != nil {
		return nil, newError(KindWriteError, "Could not save enhanced audio", err)
	}

	data, err := s.store.Read(session, models.EnhancedRecording)
	if err != nil {
		return nil, newError(KindWriteError, "Could not save enhanced audio", err)
	}

	s.metrics.Enhancements.Inc()
	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "recording enhanced",
		Fields:  map[string]any{"session": session, "bytes": len(data)},
	})
	return data, nil
}

// loadForEnhance validates the header and frame count before decoding so an
// empty recording never reaches the gain stage.
func (s *AudioService) loadForEnhance(session string) (*audio.Clip, error) {
	f, err := os.Open(s.store.Path(session, models.Recording))
	if err != nil {
		return nil, newError(KindReadError, "Could not read audio file", err)
	}
	defer f.Close()

	info, err := audio.Inspect(f)
	if err != nil {
		return nil, newError(KindCorruptAudio, fmt.Sprintf("Invalid audio file: %v", err), err)
	}
	if info.Frames == 0 {
		return nil, newError(KindCorruptAudio, "Audio file is empty or corrupted.", audio.ErrNoFrames)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, newError(KindReadError, "Could not read audio file", err)
	}
	clip, err := audio.DecodeWAV(f)
	if err != nil {
		return nil, newError(KindReadError, "Could not read audio file", err)
	}
	return clip, nil
}

// ========================================================================
// TRANSCRIBE
// ========================================================================
func (s *AudioService) Transcribe(ctx context.Context, session string) (string, error) {
	unlock := s.store.Lock(session)
	defer unlock()

	if err := s.requireRecording(session); err != nil {
		return "", err
	}

	if err := s.requireFrames(session); err != nil {
		s.metrics.Transcriptions.WithLabelValues(KindOf(err).String()).Inc()
		return "", err
	}

	work, err := s.prepareWorkingCopy(session)
	defer func() {
		if rmErr := s.store.Remove(session, models.WorkingCopy); rmErr != nil {
			s.logError("remove working copy", session, rmErr)
		}
	}()
	if err != nil {
		s.metrics.Transcriptions.WithLabelValues("prep_error").Inc()
		return "", newError(KindPrepError, "Could not prepare audio for transcription.", err)
	}

	ranges := s.s3.Run(work)
	s.metrics.ChunksPerTranscript.Observe(float64(len(ranges)))

	results, err := s.recognizeAll(ctx, session, work, ranges)
	if err != nil {
		s.metrics.Transcriptions.WithLabelValues(KindOf(err).String()).Inc()
		return "", err
	}

	texts := make([]string, 0, len(results))
	for _, r := range results {
		if r.Status == models.ChunkRecognized {
			texts = append(texts, r.Text)
		}
	}
	if len(texts) == 0 {
		s.metrics.Transcriptions.WithLabelValues(KindAllUnintelligible.String()).Inc()
		return "", newError(KindAllUnintelligible, "Speech was unintelligible in all segments.", nil)
	}

	transcript := strings.Join(texts, " ")
	s.metrics.Transcriptions.WithLabelValues("ok").Inc()
	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "transcription done",
		Fields: map[string]any{
			"session":    session,
			"chunks":     len(ranges),
			"recognized": len(texts),
			"length":     len(transcript),
		},
	})
	return transcript, nil
}

// prepareWorkingCopy writes the 16 kHz mono copy of the recording and reads it
// back, so segmentation runs on exactly what was persisted.
func (s *AudioService) prepareWorkingCopy(session string) (*audio.Clip, error) {
	clip, err := audio.ReadWAVFile(s.store.Path(session, models.Recording))
	if err != nil {
		return nil, err
	}

	mono, err := s.s2.Run(clip, TranscriptionSampleRate, true)
	if err != nil {
		return nil, err
	}

	workPath := s.store.Path(session, models.WorkingCopy)
	if err := audio.WriteWAVFile(workPath, mono); err != nil {
		return nil, err
	}
	return audio.ReadWAVFile(workPath)
}

func (s *AudioService) recognizeAll(ctx context.Context, session string, clip *audio.Clip, ranges []audio.Range) ([]models.ChunkResult, error) {
	results := make([]models.ChunkResult, len(ranges))

	if s.concurrency == 1 {
		for i, r := range ranges {
			res, err := s.recognizeChunk(ctx, session, clip, i, len(ranges), r)
			if err != nil {
				return nil, err
			}
			results[i] = res
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, r := range ranges {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.recognizeChunk(gctx, session, clip, i, len(ranges), r)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// recognizeChunk persists one chunk, submits it and removes the chunk file
// whatever the outcome.
func (s *AudioService) recognizeChunk(ctx context.Context, session string, clip *audio.Clip, i, total int, r audio.Range) (models.ChunkResult, error) {
	res := models.ChunkResult{Index: i}

	chunk := clip.Slice(r.StartMs, r.EndMs)
	artifact := models.ChunkArtifact(i)
	path := s.store.Path(session, artifact)
	defer func() {
		if err := s.store.Remove(session, artifact); err != nil {
			s.logError("remove chunk", session, err)
		}
	}()

	if err := audio.WriteWAVFile(path, chunk); err != nil {
		return res, newError(KindInternal, "Error processing audio for transcription", err)
	}

	seg := models.Segment{
		Index:      i,
		Path:       path,
		Samples:    chunk.Int16(),
		SampleRate: chunk.SampleRate,
		StartMs:    r.StartMs,
		EndMs:      r.EndMs,
	}

	start := time.Now()
	text, err := s.s4.Run(ctx, seg)
	s.metrics.RecognitionDuration.Observe(time.Since(start).Seconds())

	text = strings.TrimSpace(text)
	switch {
	case errors.Is(err, ports.ErrUnintelligible), err == nil && text == "":
		s.metrics.RecognitionOutcomes.WithLabelValues(string(models.ChunkUnintelligible)).Inc()
		s.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "chunk unintelligible",
			Fields:  map[string]any{"session": session, "chunk": i, "total": total},
		})
		res.Status = models.ChunkUnintelligible
	case err != nil:
		s.metrics.RecognitionOutcomes.WithLabelValues("error").Inc()
		s.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "recognition service fault",
			Fields:  map[string]any{"session": session, "chunk": i, "total": total},
			Error:   err,
		})
		return res, newError(KindServiceError, fmt.Sprintf("Service error: %v", err), err)
	default:
		s.metrics.RecognitionOutcomes.WithLabelValues(string(models.ChunkRecognized)).Inc()
		res.Status = models.ChunkRecognized
		res.Text = text
	}

	s.emit(ports.ChunkEvent{
		Session: session,
		Chunk:   i,
		Total:   total,
		Status:  string(res.Status),
		Text:    res.Text,
	})
	return res, nil
}

// ========================================================================
// PREDICT
// ========================================================================
func (s *AudioService) PredictModel(ctx context.Context) (string, error) {
	fi, err := os.Stat(s.modelPath)
	if err != nil {
		return "", newError(KindModelMissing, "Model file missing or processing error occurred", err)
	}
	if fi.IsDir() {
		return "", newError(KindModelMissing, "Model file missing or processing error occurred",
			fmt.Errorf("%s is a directory", s.modelPath))
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "model processing simulated",
		Fields:  map[string]any{"model": s.modelPath},
	})
	return "Model processing simulated", nil
}

// requireFrames rejects a header-valid recording that carries no audio. Header
// problems are left to the decode step that follows.
func (s *AudioService) requireFrames(session string) error {
	f, err := os.Open(s.store.Path(session, models.Recording))
	if err != nil {
		return nil
	}
	defer f.Close()

	info, err := audio.Inspect(f)
	if err == nil && info.Frames == 0 {
		return newError(KindCorruptAudio, "Audio file is empty or corrupted.", audio.ErrNoFrames)
	}
	return nil
}

func (s *AudioService) requireRecording(session string) error {
	ok, err := s.store.Exists(session, models.Recording)
	if err != nil {
		return newError(KindInternal, "Unexpected error occurred", err)
	}
	if !ok {
		return newError(KindNotFound, "Audio file not found.", nil)
	}
	return nil
}

// emit never blocks the pipeline; events nobody drains are counted and dropped.
func (s *AudioService) emit(ev ports.ChunkEvent) {
	select {
	case s.events <- ev:
	default:
		s.metrics.DroppedProgressEvents.Inc()
	}
}

func (s *AudioService) logError(msg, session string, err error) {
	s.log.Log(logger.LogEntry{
		Level:   "error",
		Message: msg,
		Fields:  map[string]any{"session": session},
		Error:   err,
	})
}
