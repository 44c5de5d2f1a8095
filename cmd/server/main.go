// Command server starts the AI interview coach HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	ai "github.com/prepforge/ai-interview-coach/internal/adapter/ai"
	"github.com/prepforge/ai-interview-coach/internal/adapter/ai/gemini"
	"github.com/prepforge/ai-interview-coach/internal/adapter/ai/stub"
	httpserver "github.com/prepforge/ai-interview-coach/internal/adapter/httpserver"
	"github.com/prepforge/ai-interview-coach/internal/adapter/observability"
	"github.com/prepforge/ai-interview-coach/internal/adapter/repo/postgres"
	tikaext "github.com/prepforge/ai-interview-coach/internal/adapter/textextractor/tika"
	"github.com/prepforge/ai-interview-coach/internal/app"
	"github.com/prepforge/ai-interview-coach/internal/config"
	"github.com/prepforge/ai-interview-coach/internal/domain"
	"github.com/prepforge/ai-interview-coach/internal/usecase"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	answerRepo := postgres.NewAnswerRepo(pool)
	interviewRepo := postgres.NewInterviewRepo(pool)
	questionRepo := postgres.NewQuestionRepo(pool)

	var aiClient domain.AIClient
	switch cfg.AIProvider {
	case "stub":
		aiClient = stub.New()
		slog.Info("AI client initialized", slog.String("provider", "stub"))
	default:
		gc, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			slog.Error("gemini client init failed", slog.Any("error", err))
			os.Exit(1)
		}
		aiClient = gc
		slog.Info("AI client initialized", slog.String("provider", "gemini"), slog.String("model", cfg.GeminiModel))
	}

	prompts := ai.NewPromptBuilder(cfg.PromptTokenBudget)
	var variance ai.VarianceFunc
	if cfg.SimulatedVariance {
		variance = ai.JitterVariance()
	}
	contentAnalyzer := ai.NewContentAnalyzer(aiClient, prompts, cfg.AIProvider)
	behavioralAnalyzer := ai.NewBehavioralAnalyzer(aiClient, prompts, cfg.AIProvider, variance)
	questionGenerator := ai.NewQuestionGenerator(aiClient, prompts, cfg.AIProvider)

	answerSvc := usecase.NewAnswerService(answerRepo, contentAnalyzer, behavioralAnalyzer, cfg.AIRequestTimeout)
	interviewSvc := usecase.NewInterviewService(interviewRepo, questionGenerator, cfg.AIRequestTimeout)
	questionSvc := usecase.NewQuestionService(questionRepo, questionGenerator, cfg.AIRequestTimeout)

	dbCheck, tikaCheck := app.BuildReadinessChecks(cfg, pool)
	ext := tikaext.New(cfg.TikaURL)

	srv := httpserver.NewServer(cfg, answerSvc, interviewSvc, questionSvc, ext, dbCheck, tikaCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
