package repository

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/avast/retry-go"
	"github.com/fjod/chess_academy/internal/config"
)

// Open connects to the configured backend, retrying while it comes up, and
// applies migrations for the SQL drivers.
func Open(ctx context.Context, cfg config.Storage, log *slog.Logger) (Store, error) {
	if cfg.Driver == "memory" {
		return NewMemoryStore(), nil
	}

	var store Store
	err := retry.Do(
		func() error {
			s, err := connect(ctx, cfg)
			if err != nil {
				return err
			}
			store = s
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(cfg.ConnectAttempts),
		retry.Delay(cfg.ConnectDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("storage not ready, retrying",
				slog.String("driver", cfg.Driver),
				slog.Uint64("attempt", uint64(n+1)),
				slog.Any("error", err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
	}

	if s, ok := store.(*SQLStore); ok {
		if err := s.RunMigrations(); err != nil {
			s.Close()
			return nil, err
		}
	}

	log.Info("storage connected", slog.String("driver", cfg.Driver))
	return store, nil
}

func connect(ctx context.Context, cfg config.Storage) (Store, error) {
	switch cfg.Driver {
	case "postgres":
		return NewPostgresStore(&Credentials{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			DBName:   cfg.Postgres.DBName,
		})
	case "sqlite":
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		return NewSQLiteStore(cfg.SQLitePath)
	case "mongo":
		db, err := ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return NewMongoStore(db, cfg.MongoTransactions), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
