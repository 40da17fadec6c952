package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fjod/chess_academy/internal/cache"
	"github.com/fjod/chess_academy/internal/catalog"
	"github.com/fjod/chess_academy/internal/domain"
	"github.com/fjod/chess_academy/internal/logger"
	"github.com/fjod/chess_academy/internal/repository"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type mockPayment struct {
	mu      sync.Mutex
	charged []int64
	err     error
}

func (m *mockPayment) Charge(_ context.Context, _ string, amount int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.charged = append(m.charged, amount)
	return fmt.Sprintf("TXN-%d", len(m.charged)), nil
}

// failingStore fails SetMany while leaving reads working.
type failingStore struct {
	*repository.MemoryStore
	setManyErr error
}

func (f *failingStore) SetMany(ctx context.Context, entries []repository.Entry) error {
	if f.setManyErr != nil {
		return f.setManyErr
	}
	return f.MemoryStore.SetMany(ctx, entries)
}

type testEnv struct {
	svc     *Service
	store   repository.Store
	payment *mockPayment
}

func newTestEnv(t *testing.T, store repository.Store, c cache.CartCache) *testEnv {
	t.Helper()
	if store == nil {
		store = repository.NewMemoryStore()
	}
	if c == nil {
		c = cache.Nop{}
	}

	var mu sync.Mutex
	n := 0
	payment := &mockPayment{}
	svc := New(store, c, catalog.Default(), payment, logger.Discard(),
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	return &testEnv{svc: svc, store: store, payment: payment}
}

func (e *testEnv) signUp(t *testing.T, id string) domain.User {
	t.Helper()
	user := domain.User{ID: id, Email: id + "@example.com", Name: "Player " + id}
	_, err := e.svc.InitAccount(context.Background(), user)
	require.NoError(t, err)
	return user
}

func ebookLine(id int64, price int64) domain.CartLine {
	return domain.CartLine{ID: domain.IntID(id), Title: "E-Book", Price: price, Kind: domain.KindEbook}
}

func videoLine(id int64, price int64) domain.CartLine {
	return domain.CartLine{ID: domain.IntID(id), Title: "Course", Price: price, Kind: domain.KindVideo}
}

func aiLine(id string, price int64) domain.CartLine {
	return domain.CartLine{ID: domain.ItemID(id), Title: "AI Trainer", Price: price, Kind: domain.KindAI}
}

var errStorage = errors.New("storage unavailable")
