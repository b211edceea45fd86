package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Vovarama1992/voicelab/internal/config"
	"github.com/Vovarama1992/voicelab/internal/delivery"
	ws "github.com/Vovarama1992/voicelab/internal/delivery/ws"
	"github.com/Vovarama1992/voicelab/internal/domain"
	"github.com/Vovarama1992/voicelab/internal/infra"
	"github.com/Vovarama1992/voicelab/internal/metrics"
	"github.com/Vovarama1992/voicelab/internal/models"
)

var envFile string

func main() {
	root := &cobra.Command{
		Use:           "voicelab",
		Short:         "Record, enhance and transcribe audio over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file loaded before the environment")

	root.AddCommand(&cobra.Command{
		Use:   "transcribe <file>",
		Short: "Transcribe a local audio file with the configured backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return transcribeFile(cmd.Context(), args[0])
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	cfg     *config.Config
	zl      *logger.ZapLogger
	sync    func() error
	metrics *metrics.Metrics
	store   *infra.FileStore
	svc     *domain.AudioService
}

func build(storageDir string, reg prometheus.Registerer) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if storageDir != "" {
		cfg.Storage.Dir = storageDir
	}

	// LOGGER
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcore, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	zl := logger.NewZapLogger(zcore.Sugar())

	// STORAGE
	store, err := infra.NewFileStore(cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}

	// RECOGNITION
	stt, err := infra.NewRecognizer(cfg.Recognition)
	if err != nil {
		return nil, err
	}

	m := metrics.NewMetrics(reg)

	svc := domain.NewAudioService(
		store,
		infra.NewFFmpeg(cfg.Storage.FFmpegPath),
		stt,
		m,
		zl,
		domain.Options{
			ModelPath:          cfg.Model.Path,
			RecognitionTimeout: cfg.Recognition.Timeout,
			Concurrency:        cfg.Recognition.Concurrency,
		},
	)

	return &app{
		cfg:     cfg,
		zl:      zl,
		sync:    zcore.Sync,
		metrics: m,
		store:   store,
		svc:     svc,
	}, nil
}

func serve(ctx context.Context) error {
	a, err := build("", prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	defer a.sync()

	if a.cfg.Storage.SessionTTL > 0 {
		go sweepSessions(ctx, a, a.cfg.Storage.SessionTTL)
	}

	// WS HUB
	hub := ws.NewHub()
	go hub.Run(ctx, a.svc.Events())

	// ROUTER
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.cfg.HTTP.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", delivery.SessionHeader},
	}))
	r.Use(delivery.MetricsMiddleware(a.metrics))

	h := delivery.NewAudioHandler(a.svc, a.zl, a.cfg.HTTP.MaxUploadBytes)
	delivery.RegisterRoutes(r, h, ws.Handler(hub, func(r *http.Request) string {
		return delivery.SessionFrom(r.Context())
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + a.cfg.HTTP.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	a.zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields: map[string]any{
			"port":    a.cfg.HTTP.Port,
			"storage": a.store.Root(),
			"backend": a.cfg.Recognition.Backend,
		},
	})

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			a.zl.Log(logger.LogEntry{
				Level:   "error",
				Message: "server crashed",
				Error:   err,
			})
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.zl.Log(logger.LogEntry{Level: "info", Message: "server stopping"})
	return srv.Shutdown(shutdownCtx)
}

// sweepSessions periodically drops session directories idle for longer than ttl.
func sweepSessions(ctx context.Context, a *app, ttl time.Duration) {
	ticker := time.NewTicker(min(ttl, time.Hour))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.store.Sweep(ttl)
			if err != nil {
				a.zl.Log(logger.LogEntry{Level: "error", Message: "session sweep failed", Error: err})
				continue
			}
			if n > 0 {
				a.zl.Log(logger.LogEntry{
					Level:   "info",
					Message: "idle sessions removed",
					Fields:  map[string]any{"count": n, "ttl": ttl.String()},
				})
			}
		}
	}
}

// transcribeFile runs save and transcribe against a throwaway storage area.
func transcribeFile(ctx context.Context, path string) error {
	dir, err := os.MkdirTemp("", "voicelab-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	a, err := build(dir, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer a.sync()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := a.svc.Save(ctx, models.DefaultSession, f); err != nil {
		return err
	}

	text, err := a.svc.Transcribe(ctx, models.DefaultSession)
	if err != nil {
		return err
	}

	fmt.Println(text)
	return nil
}
