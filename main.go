// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"padel-booking/cmd"
	"padel-booking/internal/data/repository"
	"padel-booking/internal/wire"
	"padel-booking/pkg/apiclient"
	"padel-booking/pkg/metrics"
	"padel-booking/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("api", config.API.BaseURL),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	api := apiclient.NewClient(config.API.BaseURL, config.API.Timeout, config.API.UserAgent)
	api.SetObserver(m.ObserveUpstream)

	sessions, closeSessions := openSessionStore(ctx, config, logger)
	defer closeSessions()

	// Initialize all repositories
	repos := repository.NewRepository(api, sessions, logger)

	// Wire all dependencies
	app, err := wire.Wiring(repos, config, m, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

// openSessionStore uses Redis when REDIS_URL is set and reachable, the
// in-process store otherwise.
func openSessionStore(ctx context.Context, config *utils.Config, logger *zap.Logger) (repository.SessionRepository, func()) {
	memory := func() (repository.SessionRepository, func()) {
		logger.Info("Using in-memory session store")
		return repository.NewMemorySessionRepository(config.Session.TTL, logger), func() {}
	}

	if config.Redis.URL == "" {
		return memory()
	}

	opts, err := redis.ParseURL(config.Redis.URL)
	if err != nil {
		logger.Warn("Invalid REDIS_URL, falling back to memory", zap.Error(err))
		return memory()
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unreachable, falling back to memory", zap.Error(err))
		client.Close()
		return memory()
	}

	logger.Info("Redis session store connected", zap.String("addr", opts.Addr))
	return repository.NewRedisSessionRepository(client, config.Session.TTL, logger), func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}
}
