package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/fjod/chess_academy/internal/metrics"
	"github.com/fjod/chess_academy/internal/repository"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

// MessageWriter is the subset of *kafka.Writer the poller uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OutboxPoller publishes pending purchase events and removes them from the
// store once Kafka has accepted them. Delivery is at least once.
type OutboxPoller struct {
	store     repository.Store
	writer    MessageWriter
	breaker   *gobreaker.CircuitBreaker[struct{}]
	log       *slog.Logger
	tick      time.Duration
	batchSize int
	attempts  uint
}

func NewKafkaWriter(topic string, brokers ...string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func NewOutboxPoller(store repository.Store, writer MessageWriter, log *slog.Logger, tick time.Duration, batchSize int) *OutboxPoller {
	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "kafka-outbox",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})
	return &OutboxPoller{
		store:     store,
		writer:    writer,
		breaker:   breaker,
		log:       log,
		tick:      tick,
		batchSize: batchSize,
		attempts:  3,
	}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processPending(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OutboxPoller) Close() error {
	return p.writer.Close()
}

func (p *OutboxPoller) processPending(ctx context.Context) {
	pending, err := p.store.GetByPrefix(ctx, OutboxPrefix)
	if err != nil {
		p.log.Error("failed to fetch outbox events", slog.Any("error", err))
		return
	}

	for i, entry := range pending {
		if p.batchSize > 0 && i >= p.batchSize {
			return
		}
		if err := p.publish(ctx, entry); err != nil {
			metrics.OutboxFailed.Inc()
			p.log.Error("failed to publish event",
				slog.String("key", entry.Key),
				slog.Any("error", err))
			if errors.Is(err, gobreaker.ErrOpenState) {
				return
			}
			continue
		}
		metrics.OutboxPublished.Inc()

		if err := p.store.Delete(ctx, entry.Key); err != nil {
			p.log.Error("failed to remove published event",
				slog.String("key", entry.Key),
				slog.Any("error", err))
		}
	}
}

func (p *OutboxPoller) publish(ctx context.Context, entry repository.Entry) error {
	event, userID := eventMeta(entry)
	msg := kafka.Message{
		Key:   []byte(userID),
		Value: entry.Value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(TypePurchaseCompleted)},
			{Key: "event_id", Value: []byte(event)},
		},
	}

	_, err := p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, retry.Do(
			func() error {
				return p.writer.WriteMessages(ctx, msg)
			},
			retry.Context(ctx),
			retry.Attempts(p.attempts),
			retry.Delay(200*time.Millisecond),
			retry.MaxDelay(2*time.Second),
			retry.LastErrorOnly(true),
		)
	})
	return err
}

func eventMeta(entry repository.Entry) (eventID, userID string) {
	eventID = strings.TrimPrefix(entry.Key, OutboxPrefix)
	var head struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(entry.Value, &head); err == nil {
		userID = head.UserID
	}
	return eventID, userID
}
