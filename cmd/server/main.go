package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"openzoa-analyze-go/config"
	"openzoa-analyze-go/internal/archive"
	"openzoa-analyze-go/internal/fetcher"
	"openzoa-analyze-go/internal/handler"
	"openzoa-analyze-go/internal/service"
	"openzoa-analyze-go/internal/web"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(log)
	if err != nil {
		log.Error("Failed to load config",
			"error", err)
		os.Exit(1)
	}

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 没有key也启动，请求时返回500
	var llm fetcher.Generator
	if cfg.HasGeminiKey() {
		llm = fetcher.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel, cfg.UpstreamTimeout)
		log.InfoContext(ctx, "Gemini client is initialized",
			"model", cfg.GeminiModel,
			"upstreamTimeout", cfg.UpstreamTimeout.String())
	} else {
		log.WarnContext(ctx, "GEMINI_API_KEY is not configured, analysis requests will fail",
			"envVar", "GEMINI_API_KEY")
	}

	var store archive.Store
	if cfg.DatabaseURL != "" {
		pgStore, err := archive.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.WarnContext(ctx, "Failed to connect to PostgreSQL, archive is disabled",
				"error", err)
		} else {
			defer pgStore.Close()
			store = pgStore
			log.InfoContext(ctx, "Analysis archive is enabled")
		}
	}

	analysisService := service.NewAnalysisService(llm, store, log)

	router := handler.NewRouter(handler.Routes{
		Gemini:      handler.NewGeminiHandler(analysisService, log),
		Diagnostics: handler.NewDiagnosticsHandler(config.ServiceName),
		Export:      handler.NewExportHandler(log),
		Page:        web.Handler(),
	}, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "Server is starting",
			"port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "Server failed",
				"error", err)
		}
		return
	case <-ctx.Done():
	}

	log.Info("Shutdown signal is received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down server",
			"error", err)
	}
	log.Info("Server is stopped")
}
