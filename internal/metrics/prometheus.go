package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the service
type Metrics struct {
	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Pipeline metrics
	Saves                 prometheus.Counter
	Enhancements          prometheus.Counter
	Transcriptions        *prometheus.CounterVec
	ChunksPerTranscript   prometheus.Histogram
	RecognitionOutcomes   *prometheus.CounterVec
	RecognitionDuration   prometheus.Histogram
	DroppedProgressEvents prometheus.Counter
}

// NewMetrics creates all metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voicelab_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		}, []string{"route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "voicelab_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),

		Saves: f.NewCounter(prometheus.CounterOpts{
			Name: "voicelab_recordings_saved_total",
			Help: "Recordings stored and normalized successfully",
		}),
		Enhancements: f.NewCounter(prometheus.CounterOpts{
			Name: "voicelab_enhancements_total",
			Help: "Enhanced recordings produced",
		}),
		Transcriptions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voicelab_transcriptions_total",
			Help: "Transcribe operations by result",
		}, []string{"result"}),
		ChunksPerTranscript: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "voicelab_transcription_chunks",
			Help:    "Number of silence-delimited chunks per transcription",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
		RecognitionOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voicelab_recognition_chunks_total",
			Help: "Per-chunk recognition outcomes",
		}, []string{"outcome"}),
		RecognitionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "voicelab_recognition_duration_seconds",
			Help:    "Latency of a single chunk recognition call",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		DroppedProgressEvents: f.NewCounter(prometheus.CounterOpts{
			Name: "voicelab_progress_events_dropped_total",
			Help: "Chunk progress events dropped because the event buffer was full",
		}),
	}
}
