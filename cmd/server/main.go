package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/admission"
	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/auth"
	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/commentary"
	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/config"
	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/httpapi"
	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/observability"
	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/scheduler"
	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/session"
	"github.com/RishabhPatel9999/WebSocket-Pong-game-with-OpenAI-coaching/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	registry := session.NewRegistry()
	limiter := buildLimiter(cfg, logger)
	gen, streaming := buildGenerator(cfg, logger)
	authn := auth.NewAuthenticator(cfg.JWTSecret)

	commentator := scheduler.NewCommentary(registry, limiter, gen, cfg.CommentaryInterval, streaming, logger)
	coach := scheduler.NewCoach(registry, limiter, gen, cfg.CoachInterval, logger)

	wsHandler := ws.Handler(registry, authn, limiter, cfg.CommentaryInterval, cfg.AllowedOrigins, logger)
	handler := httpapi.SetupRoutes(wsHandler, authn, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: handler}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return commentator.Run(ctx) })
	g.Go(func() error { return coach.Run(ctx) })
	g.Go(func() error {
		logger.Info("listening", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func buildLimiter(cfg config.Config, logger *zap.Logger) admission.Limiter {
	policies := admission.Policies{
		admission.CategoryState:      {Points: cfg.StatePoints, Window: cfg.StateWindow},
		admission.CategoryCommentary: {Points: cfg.CommentaryPoints, Window: cfg.CommentaryWindow},
	}
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, using in-memory admission counters (single instance only)")
		return admission.NewMemoryLimiter(policies)
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	logger.Info("using redis admission counters", zap.String("addr", cfg.RedisAddr))
	return admission.NewRedisLimiter(rdb, policies)
}

func buildGenerator(cfg config.Config, logger *zap.Logger) (commentary.Generator, bool) {
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, using simulated commentary")
		return commentary.NewSimulated(rand.Int63()), false
	}
	logger.Info("using OpenAI commentary", zap.String("model", cfg.OpenAIModel))
	return commentary.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel), true
}
