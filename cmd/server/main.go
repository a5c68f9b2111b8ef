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

	"github.com/RichardoC/support-chat/internal/api"
	"github.com/RichardoC/support-chat/internal/config"
	"github.com/RichardoC/support-chat/internal/llm"
	"github.com/RichardoC/support-chat/internal/version"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	bootstrap, _ := zap.NewProduction()

	loader, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		bootstrap.Fatal("failed to load configuration", zap.Error(err))
	}
	cfg := loader.Get()
	if err := cfg.Validate(); err != nil {
		bootstrap.Fatal("invalid configuration", zap.Error(err))
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		bootstrap.Fatal("invalid log level", zap.Error(err), zap.String("level", cfg.LogLevel))
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	logger, err := zc.Build()
	if err != nil {
		bootstrap.Fatal("failed to build logger", zap.Error(err))
	}
	defer logger.Sync()

	logger.Info("Starting support-chat relay",
		zap.String("version", version.Get().String()),
		zap.String("configFile", loader.File()),
		zap.String("dotEnv", loader.DotEnv))

	llmService, err := llm.New(cfg.LLM(), logger.Named("llm"))
	if err != nil {
		logger.Fatal("failed to initialize LLM service", zap.Error(err))
	}

	loader.Watch(logger, func(old, new config.Config) {
		llmService.Reconfigure(new.Preamble, new.Model)
		if old.LogLevel != new.LogLevel {
			if err := level.UnmarshalText([]byte(new.LogLevel)); err != nil {
				logger.Warn("Ignoring invalid log level", zap.String("level", new.LogLevel), zap.Error(err))
			}
		}
	})

	handler := api.NewHandler(llmService, logger.Named("api"))
	router := api.NewRouter(handler, api.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger.Named("http"),
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: writeTimeout(cfg.ProviderTimeout),
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen on %s: %w", server.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
	logger.Info("Server shutdown complete")
}

// writeTimeout leaves room for the provider call on top of writing the reply.
func writeTimeout(provider time.Duration) time.Duration {
	if provider <= 0 {
		return 0
	}
	return provider + 10*time.Second
}
