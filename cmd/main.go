package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fjod/chess_academy/internal/auth"
	"github.com/fjod/chess_academy/internal/cache"
	"github.com/fjod/chess_academy/internal/catalog"
	"github.com/fjod/chess_academy/internal/checkout"
	"github.com/fjod/chess_academy/internal/config"
	"github.com/fjod/chess_academy/internal/events"
	h "github.com/fjod/chess_academy/internal/http"
	"github.com/fjod/chess_academy/internal/logger"
	"github.com/fjod/chess_academy/internal/metrics"
	"github.com/fjod/chess_academy/internal/repository"
	"github.com/fjod/chess_academy/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting storefront", slog.String("env", cfg.Env), slog.String("storage", cfg.Storage.Driver))

	metrics.Register(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.Storage, log)
	if err != nil {
		log.Error("failed to open storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	var cartCache cache.CartCache = cache.Nop{}
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Error("redis connection failed", slog.Any("error", err))
			os.Exit(1)
		}
		log.Info("redis ping succeeded", slog.String("addr", cfg.Redis.Addr))
		cartCache = cache.NewRedisCache(redisClient, cfg.Redis.TTL)
	}

	svc := service.New(store, cartCache, catalog.Default(),
		checkout.NewSimulatedPayment(cfg.Checkout.PaymentDelay), log,
		service.WithCurrency(cfg.Checkout.Currency),
	)
	provider := auth.NewLocalProvider(store, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	var workers sync.WaitGroup
	if len(cfg.Kafka.Brokers) > 0 {
		poller := events.NewOutboxPoller(store,
			events.NewKafkaWriter(cfg.Kafka.Topic, cfg.Kafka.Brokers...),
			log, cfg.Kafka.PollInterval, cfg.Kafka.BatchSize)
		defer poller.Close()

		// every instance needs its own group to see every purchase
		groupID := cfg.Kafka.GroupID
		if host, err := os.Hostname(); err == nil {
			groupID += "-" + host
		}
		invalidator := events.NewCacheInvalidator(
			events.NewKafkaReader(cfg.Kafka.Topic, groupID, cfg.Kafka.Brokers...),
			cartCache, log)
		defer invalidator.Close()

		workers.Add(2)
		go func() {
			defer workers.Done()
			poller.Run(ctx)
		}()
		go func() {
			defer workers.Done()
			invalidator.Run(ctx)
		}()
		log.Info("kafka workers started", slog.String("topic", cfg.Kafka.Topic))
	}

	srv := &http.Server{
		Addr: ":" + cfg.HTTP.Port,
		Handler: h.NewRouter(cfg.HTTP, h.Deps{
			Service:  svc,
			Auth:     provider,
			Gatherer: prometheus.DefaultGatherer,
			Log:      log,
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.HTTP.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("storefront listening", slog.String("addr", srv.Addr), slog.String("base_path", cfg.HTTP.BasePath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", slog.Any("error", err))
	}
	workers.Wait()

	log.Info("server exited")
}
