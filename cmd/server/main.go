package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medinter/translation-gateway/internal/api"
	"github.com/medinter/translation-gateway/internal/asr"
	"github.com/medinter/translation-gateway/internal/config"
	"github.com/medinter/translation-gateway/internal/observability"
	"github.com/medinter/translation-gateway/internal/pipeline"
	"github.com/medinter/translation-gateway/internal/realtime"
	"github.com/medinter/translation-gateway/internal/session"
	"github.com/medinter/translation-gateway/internal/translator"
	"github.com/medinter/translation-gateway/internal/tts"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use fmt for fatal errors before logger is initialized
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	observability.InitLogger(cfg.LogLevel, cfg.LogPretty)
	logger := observability.GetLogger()

	logger.Info().
		Str("port", cfg.Port).
		Bool("mock_mode", cfg.MockMode).
		Str("log_level", cfg.LogLevel).
		Bool("metrics_enabled", cfg.MetricsEnabled).
		Msg("Translation Gateway starting")

	// Select live or mock collaborators once at startup.
	var (
		recognizer  asr.Recognizer
		llm         translator.Translator
		synthesizer tts.Synthesizer
	)
	if cfg.MockMode {
		logger.Warn().Msg("Mock mode enabled, all collaborators are deterministic fallbacks")
		recognizer = asr.NewMock()
		llm = translator.NewMock()
		synthesizer = tts.NewMock(cfg.TTSSampleRate)
	} else {
		recognizer = asr.NewRivaClient(cfg)
		llm = translator.NewNIMClient(cfg)
		synthesizer = tts.NewRivaClient(cfg)
	}
	defer recognizer.Close()
	defer llm.Close()
	defer synthesizer.Close()

	registry := session.NewRegistry()
	pipe := pipeline.New(recognizer, llm, synthesizer)

	mux := http.NewServeMux()

	// Realtime translation connection
	mux.Handle("/ws/translate", realtime.NewHandler(registry, pipe))

	// REST facade
	api.NewHandler(cfg, registry, recognizer, llm, synthesizer).Register(mux)

	// Metrics endpoint (Prometheus)
	if cfg.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info().Msg("Prometheus metrics enabled at /metrics")
	}

	// Sweep ended sessions past their retention age.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go runCleanupSweep(sweepCtx, registry,
		time.Duration(cfg.SessionCleanupInterval)*time.Second,
		time.Duration(cfg.SessionCleanupMaxAge)*time.Second)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", server.Addr).
			Str("endpoint", fmt.Sprintf("ws://localhost:%s/ws/translate", cfg.Port)).
			Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}

func runCleanupSweep(ctx context.Context, registry *session.Registry, interval, maxAge time.Duration) {
	logger := observability.GetLogger().With().Str("component", "cleanup").Logger()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := registry.Cleanup(maxAge); removed > 0 {
				logger.Info().Int("removed", removed).Msg("Swept ended sessions")
			}
		}
	}
}
