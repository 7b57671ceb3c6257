package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hunterfit/gateway/internal/actions"
	"github.com/hunterfit/gateway/internal/apiclient"
	"github.com/hunterfit/gateway/internal/audit"
	auditsqlite "github.com/hunterfit/gateway/internal/audit/sqlite"
	"github.com/hunterfit/gateway/internal/config"
	"github.com/hunterfit/gateway/internal/cookies"
	"github.com/hunterfit/gateway/internal/handlers"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to config file")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	cfg := config.MustLoad(*configPath)

	logger := setupLogger(cfg.Env)
	logger.Info("starting hunterfit gateway",
		"version", Version,
		"env", cfg.Env,
		"addr", cfg.HTTP.Addr(),
		"api_base_url", cfg.API.BaseURL,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("gateway stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("gateway stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Локальный журнал аудита
	auditStorage, err := auditsqlite.New(ctx, cfg.Audit.Path)
	if err != nil {
		return fmt.Errorf("failed to open audit storage: %w", err)
	}
	defer func() {
		if err := auditStorage.Close(); err != nil {
			logger.Error("failed to close audit storage", "error", err)
		}
	}()

	recorder := audit.NewRecorder(auditStorage, logger, cfg.Audit.Buffer)
	defer recorder.Close()

	client := apiclient.NewClient(cfg.API.BaseURL)
	client.OnRefreshRejected(func(ctx context.Context) {
		recorder.Record(audit.KindRefreshFailed, "", "", "refresh token rejected by backend")
	})

	cookieOpts := cookies.Options{
		Secure:     cfg.IsProduction(),
		AccessTTL:  cfg.Auth.AccessTokenTTL,
		RefreshTTL: cfg.Auth.RefreshTokenTTL,
	}

	service := actions.NewService(client, logger, recorder, cfg.IsProduction())

	router := handlers.NewRouter(handlers.RouterDeps{
		Logger:       logger,
		Client:       client,
		Actions:      service,
		AuditStorage: auditStorage,
		AccessSecret: []byte(cfg.Auth.AccessSecret),
		CookieOpts:   cookieOpts,
		Version:      Version,
	})

	server := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.HTTP.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}

// setupLogger настраивает логгер в зависимости от окружения:
// text/debug для разработки, JSON/info для production
func setupLogger(env string) *slog.Logger {
	var handler slog.Handler

	switch env {
	case config.EnvProduction:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func printVersion() {
	fmt.Printf("HunterFit Gateway\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
