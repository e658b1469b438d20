package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tgshop/miniapp-backend/api/controllers"
	"github.com/tgshop/miniapp-backend/api/routes"
	"github.com/tgshop/miniapp-backend/internal/orders"
	"github.com/tgshop/miniapp-backend/pkg/config"
	"github.com/tgshop/miniapp-backend/pkg/instance"
	"github.com/tgshop/miniapp-backend/pkg/logger"
	"github.com/tgshop/miniapp-backend/pkg/metrics"
	"github.com/tgshop/miniapp-backend/pkg/redis"
	"github.com/tgshop/miniapp-backend/pkg/telegram"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := cfg.Telegram.Validate(); err != nil {
		logg.Error(context.Background(), "invalid telegram config", err)
		os.Exit(1)
	}
	adminChatID, _ := cfg.Telegram.AdminChat()

	tgClient, err := telegram.NewClient(cfg.Telegram.BotToken,
		telegram.WithBaseURL(cfg.Telegram.BaseURL),
		telegram.WithTimeout(cfg.Telegram.Timeout),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create telegram client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	relay, err := orders.NewService(tgClient, orders.Config{
		AdminChatID: adminChatID,
		ParseMode:   cfg.Telegram.ParseMode,
	}, logg, orders.WithMetrics(metrics.NewRelayMetrics(registry)))
	if err != nil {
		logg.Error(context.Background(), "failed to create order relay", err)
		os.Exit(1)
	}

	deps := routes.Deps{
		Relay:     relay,
		Gatherer:  registry,
		Readiness: map[string]controllers.Pinger{},
	}

	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		deps.Limiter = redisClient
		deps.Readiness["redis"] = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, send-order rate limiting disabled")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, deps),
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
