package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fjod/chess_academy/internal/domain"
	"github.com/fjod/chess_academy/internal/logger"
	"github.com/fjod/chess_academy/internal/repository"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	calls    int
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *mockWriter) Close() error { return nil }

func seedEvent(t *testing.T, store repository.Store, id, userID string) {
	t.Helper()
	event := NewPurchaseEvent(id, domain.Receipt{
		ID:     "r-" + id,
		UserID: userID,
		Items: []domain.CartLine{
			{ID: domain.IntID(4), Kind: domain.KindEbook, Price: 100000},
		},
		Total:    100000,
		Currency: "IDR",
	})
	data, err := json.Marshal(event)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), OutboxKey(id), data))
}

func TestProcessPending_PublishesAndDeletes(t *testing.T) {
	store := repository.NewMemoryStore()
	writer := &mockWriter{}
	seedEvent(t, store, "e1", "u1")
	seedEvent(t, store, "e2", "u2")
	p := NewOutboxPoller(store, writer, logger.Discard(), time.Second, 10)

	p.processPending(context.Background())

	require.Len(t, writer.messages, 2)
	assert.Equal(t, "u1", string(writer.messages[0].Key))
	assert.Equal(t, "e1", string(writer.messages[0].Headers[1].Value))

	var event PurchaseEvent
	require.NoError(t, json.Unmarshal(writer.messages[1].Value, &event))
	assert.Equal(t, "u2", event.UserID)
	assert.Equal(t, TypePurchaseCompleted, event.Type)

	left, err := store.GetByPrefix(context.Background(), OutboxPrefix)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestProcessPending_KeepsEventsOnFailure(t *testing.T) {
	store := repository.NewMemoryStore()
	writer := &mockWriter{err: errors.New("broker down")}
	seedEvent(t, store, "e1", "u1")
	p := NewOutboxPoller(store, writer, logger.Discard(), time.Second, 10)
	p.attempts = 1

	p.processPending(context.Background())

	left, err := store.GetByPrefix(context.Background(), OutboxPrefix)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestProcessPending_RespectsBatchSize(t *testing.T) {
	store := repository.NewMemoryStore()
	writer := &mockWriter{}
	seedEvent(t, store, "e1", "u1")
	seedEvent(t, store, "e2", "u1")
	seedEvent(t, store, "e3", "u1")
	p := NewOutboxPoller(store, writer, logger.Discard(), time.Second, 2)

	p.processPending(context.Background())

	assert.Len(t, writer.messages, 2)
	left, _ := store.GetByPrefix(context.Background(), OutboxPrefix)
	assert.Len(t, left, 1)
}

func TestProcessPending_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	store := repository.NewMemoryStore()
	writer := &mockWriter{err: errors.New("broker down")}
	for _, id := range []string{"e1", "e2", "e3", "e4", "e5", "e6", "e7"} {
		seedEvent(t, store, id, "u1")
	}
	p := NewOutboxPoller(store, writer, logger.Discard(), time.Second, 0)
	p.attempts = 1

	p.processPending(context.Background())

	assert.Equal(t, 5, writer.calls)
}
