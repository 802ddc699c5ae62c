// Package main contains the entrypoint for the excuse generator API.
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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/journeyfurther/excuseme/internal/ai"
	"github.com/journeyfurther/excuseme/internal/config"
	"github.com/journeyfurther/excuseme/internal/logger"
	"github.com/journeyfurther/excuseme/internal/ratelimit"
	"github.com/journeyfurther/excuseme/internal/server"
	"github.com/journeyfurther/excuseme/internal/slack"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all application components (config, logger, rate
// limiters, AI clients, Slack client, HTTP server), handles graceful
// shutdown, and returns an exit code.
func run(ctx context.Context) int {
	// Local development convenience; in deployment the environment is
	// provided by the platform.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.Format == "json")
	log.Info("Logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format)

	limiters, cleanup, err := buildLimiters(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to initialize rate limiters", "error", err)
		return 1
	}
	defer cleanup()

	claude := ai.NewClaudeClient(cfg.AI.AnthropicKey, cfg.AI.ClaudeModel, cfg.AI.Timeout, log)

	var gemini *ai.GeminiClient
	if cfg.AI.GeminiKey != "" {
		gemini, err = ai.NewGeminiClient(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiModel, cfg.AI.Timeout, log)
		if err != nil {
			log.Error("Failed to initialize Gemini client", "error", err)
			return 1
		}
	}
	gateway := ai.NewGateway(claude, gemini)

	slackClient := slack.NewClient(cfg.Slack.WebhookURL, slack.PlaceholderUploader{}, cfg.Slack.Timeout, log)

	mux := server.NewRouter(gateway, slackClient, cfg.Admin.PasswordHash, limiters, log)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: mux,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Server stopped due to error", "error", err)
		return 1
	}

	log.Info("Server stopped gracefully")
	return 0
}

// buildLimiters creates the three rate-limit windows, backed by Redis when
// an address is configured and by process memory otherwise. The returned
// cleanup stops the memory janitor or closes the Redis connection.
func buildLimiters(ctx context.Context, cfg *config.Config, log *slog.Logger) (server.Limiters, func(), error) {
	rl := cfg.RateLimit

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return server.Limiters{}, func() {}, fmt.Errorf("redis ping failed: %w", err)
		}
		log.Info("Rate limiting backed by Redis", "addr", cfg.Redis.Addr)

		limiters := server.Limiters{
			Generate: ratelimit.NewRedisLimiter(rdb, log, "ratelimit", rl.GenerateMax, rl.GenerateWindow),
			Unlock:   ratelimit.NewRedisLimiter(rdb, log, "ratelimit", rl.UnlockMax, rl.UnlockWindow),
			Share:    ratelimit.NewRedisLimiter(rdb, log, "ratelimit", rl.ShareMax, rl.ShareWindow),
		}
		cleanup := func() {
			if err := rdb.Close(); err != nil {
				log.Error("Failed to close Redis connection", "error", err)
			}
		}
		return limiters, cleanup, nil
	}

	generate := ratelimit.NewMemoryLimiter(rl.GenerateMax, rl.GenerateWindow)
	unlock := ratelimit.NewMemoryLimiter(rl.UnlockMax, rl.UnlockWindow)
	share := ratelimit.NewMemoryLimiter(rl.ShareMax, rl.ShareWindow)

	janitor, err := ratelimit.NewJanitor(rl.PruneInterval, log, generate, unlock, share)
	if err != nil {
		return server.Limiters{}, func() {}, err
	}
	janitor.Start()
	log.Info("Rate limiting backed by process memory", "prune_interval", rl.PruneInterval)

	limiters := server.Limiters{Generate: generate, Unlock: unlock, Share: share}
	cleanup := func() {
		if err := janitor.Stop(); err != nil {
			log.Error("Failed to stop rate limit janitor", "error", err)
		}
	}
	return limiters, cleanup, nil
}
