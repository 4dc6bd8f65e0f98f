// cmd/planner/main.go
package main

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"planflow/internal/common/config"
	"planflow/internal/common/database"
	"planflow/internal/common/http"
	"planflow/internal/common/logger"
	"planflow/internal/common/observability"
	"planflow/internal/llm"
	"planflow/internal/planner/pipeline"
	"planflow/internal/planner/sufficiency"
	"planflow/internal/planner/synthetic"
	"planflow/internal/planner/validation"
	"planflow/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.New("info", "console")
		bootstrap.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting planner",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// --- Tier cooldown store (optional) ---
	var cooldowns llm.CooldownStore = llm.NoopCooldown{}
	if cfg.Redis.Enabled {
		rdb := database.NewRedis(cfg.Redis)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx); err != nil {
			// Cooldown state is an optimization; start without it.
			zapLog.Warn("redis unreachable, tier cooldowns disabled", zap.Error(err))
		} else {
			cooldowns = llm.NewRedisCooldown(rdb.GetClient(), log)
			defer rdb.Close()
			zapLog.Info("redis connected, tier cooldowns enabled")
		}
		cancel()
	}

	// --- Model tiers ---
	transport := http.NewClient()
	tiers := make([]llm.Tier, 0, len(cfg.Tiers))
	for _, tc := range cfg.Tiers {
		client := llm.NewChatClient(llm.ChatConfig{
			BaseURL:     tc.BaseURL,
			APIKey:      os.Getenv(tc.APIKeyEnv),
			Model:       tc.Model,
			Temperature: tc.Temperature,
			MaxTokens:   tc.MaxTokens,
		}, transport, log)

		tiers = append(tiers, llm.Tier{
			Name:        tc.Name,
			Model:       tc.Model,
			Rank:        tc.Rank,
			Timeout:     time.Duration(tc.Timeout) * time.Millisecond,
			CooldownTTL: time.Duration(tc.CooldownTTL) * time.Second,
			Client:      client,
		})
	}
	zapLog.Info("model tiers configured", zap.Int("count", len(tiers)))

	// --- Sufficiency estimator (uses the highest-ranked backend) ---
	topTier := cfg.TopTier()
	estimatorClient := llm.NewChatClient(llm.ChatConfig{
		BaseURL:     topTier.BaseURL,
		APIKey:      os.Getenv(topTier.APIKeyEnv),
		Model:       cfg.Sufficiency.Model,
		Temperature: 0.7,
	}, transport, log)

	estimator := sufficiency.NewEstimator(&sufficiency.Config{
		WindowSize:          cfg.Sufficiency.WindowSize,
		SimilarityThreshold: cfg.Sufficiency.SimilarityThreshold,
		Timeout:             time.Duration(cfg.Sufficiency.Timeout) * time.Millisecond,
	}, estimatorClient, log)

	// --- Pipeline ---
	pl := pipeline.New(
		tiers,
		validation.New(log),
		synthetic.New(log),
		cooldowns,
		obs,
		log,
	)

	// --- HTTP server ---
	srv := &nethttp.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.New(estimator, pl, log).Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown failed", zap.Error(err))
	}

	zapLog.Info("planner stopped gracefully")
}
