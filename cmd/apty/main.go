package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	slacklib "github.com/slack-go/slack"

	"github.com/mathewar/apty/internal/ai"
	"github.com/mathewar/apty/internal/audit"
	"github.com/mathewar/apty/internal/auth"
	"github.com/mathewar/apty/internal/config"
	"github.com/mathewar/apty/internal/notify"
	"github.com/mathewar/apty/internal/server"
	"github.com/mathewar/apty/internal/store/postgres"
	redisstore "github.com/mathewar/apty/internal/store/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("APTY_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("APTY_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
		return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
	}

	// Connect to PostgreSQL.
	store, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
	if err != nil {
		return err
	}
	defer store.Close()

	// Connect to Redis for session storage.
	sessions, err := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer sessions.Close()

	authSvc := auth.NewService(store.Users(), sessions, cfg.Session.Secret, cfg.Session.TTL)
	recorder := audit.NewRecorder(store.Audit())

	// AI collaborators: real Gemini client when a key is configured,
	// deterministic mock otherwise so the rest of the app stays usable.
	var (
		triager  ai.Triager
		analyzer ai.DocumentAnalyzer
	)
	if cfg.AI.GeminiAPIKey != "" {
		gemini := ai.NewGeminiClient(cfg.AI.GeminiAPIKey, cfg.AI.Model)
		triager, analyzer = gemini, gemini
		log.Info().Msg("Gemini collaborators enabled")
	} else {
		mock := &ai.Mock{}
		triager, analyzer = mock, mock
		log.Warn().Msg("no Gemini API key; using mock triage and analysis")
	}

	// Slack alerting for emergency triage results, when configured.
	var notifier notify.Notifier
	if cfg.Slack.BotToken != "" && cfg.Slack.Channel != "" {
		notifier = notify.NewSlackNotifier(slacklib.New(cfg.Slack.BotToken), cfg.Slack.Channel)
		log.Info().Str("channel", cfg.Slack.Channel).Msg("Slack alerting enabled")
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := server.New(ctx, cfg, server.Deps{
		Store:    store,
		Sessions: sessions,
		Auth:     authSvc,
		Recorder: recorder,
		Triager:  triager,
		Analyzer: analyzer,
		Notifier: notifier,
	})

	// Start server in background goroutine.
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}
