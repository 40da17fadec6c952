package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/fjod/chess_academy/internal/cache"
	"github.com/segmentio/kafka-go"
)

// MessageReader is the subset of *kafka.Reader the invalidator uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// CacheInvalidator drops cached carts for users whose purchase was completed,
// including purchases made through another instance.
type CacheInvalidator struct {
	reader MessageReader
	cache  cache.CartCache
	log    *slog.Logger
}

func NewKafkaReader(topic, groupID string, brokers ...string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MaxBytes: 10e6, // 10MB
	})
}

func NewCacheInvalidator(reader MessageReader, c cache.CartCache, log *slog.Logger) *CacheInvalidator {
	return &CacheInvalidator{reader: reader, cache: c, log: log}
}

func (i *CacheInvalidator) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		i.handleNext(ctx)
	}
}

func (i *CacheInvalidator) Close() error {
	return i.reader.Close()
}

func (i *CacheInvalidator) handleNext(ctx context.Context) {
	m, err := i.reader.ReadMessage(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			i.log.Error("error reading message", slog.Any("error", err))
		}
		return
	}

	var event PurchaseEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		i.log.Warn("error parsing message", slog.Any("error", err))
		return
	}
	if event.UserID == "" {
		i.log.Warn("missing user_id in purchase event", slog.String("event_id", event.ID))
		return
	}

	if err := i.cache.Delete(ctx, event.UserID); err != nil {
		i.log.Error("failed to delete cached cart",
			slog.String("user_id", event.UserID),
			slog.Any("error", err))
	}
}
