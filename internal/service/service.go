// Package service implements the storefront operations on top of the
// key-value store: accounts, carts, checkout, bookings and progress.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fjod/chess_academy/internal/cache"
	"github.com/fjod/chess_academy/internal/catalog"
	"github.com/fjod/chess_academy/internal/checkout"
	"github.com/fjod/chess_academy/internal/domain"
	"github.com/fjod/chess_academy/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type Service struct {
	store     repository.Store
	cache     cache.CartCache
	catalog   *catalog.Catalog
	processor *checkout.Processor
	payment   checkout.Payment
	log       *slog.Logger

	locks *keyedMutex
	sfg   singleflight.Group // Prevents cache stampede

	currency string
	now      func() time.Time
	newID    func() string
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithCurrency(currency string) Option {
	return func(s *Service) { s.currency = currency }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func New(store repository.Store, c cache.CartCache, cat *catalog.Catalog, payment checkout.Payment, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:    store,
		cache:    c,
		catalog:  cat,
		payment:  payment,
		log:      log,
		locks:    newKeyedMutex(),
		currency: "IDR",
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	s.processor = checkout.NewProcessor(cat,
		checkout.WithClock(s.now),
		checkout.WithIDGenerator(s.newID),
	)
	return s
}

func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

func requireUser(userID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	return nil
}

// getJSON decodes the value at key into dst. It reports false, without an
// error, when the key does not exist.
func (s *Service) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Service) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.store.Set(ctx, key, data)
}

type keyValue struct {
	key string
	v   any
}

func entries(values []keyValue) ([]repository.Entry, error) {
	out := make([]repository.Entry, 0, len(values))
	for _, kv := range values {
		data, err := json.Marshal(kv.v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", kv.key, err)
		}
		out = append(out, repository.Entry{Key: kv.key, Value: data})
	}
	return out, nil
}

func unmarshalEntry(e repository.Entry, dst any) error {
	if err := json.Unmarshal(e.Value, dst); err != nil {
		return fmt.Errorf("decode %s: %w", e.Key, err)
	}
	return nil
}

func (s *Service) loadLibrary(ctx context.Context, userID string) ([]domain.LibraryEntry, error) {
	library := []domain.LibraryEntry{}
	if _, err := s.getJSON(ctx, libraryKey(userID), &library); err != nil {
		return nil, err
	}
	if library == nil {
		library = []domain.LibraryEntry{}
	}
	return library, nil
}

func (s *Service) loadSubscription(ctx context.Context, userID string) (domain.Subscription, error) {
	sub := domain.FreeSubscription()
	if _, err := s.getJSON(ctx, subscriptionKey(userID), &sub); err != nil {
		return domain.Subscription{}, err
	}
	return sub, nil
}

func (s *Service) loadBookingIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	if _, err := s.getJSON(ctx, userBookingsKey(userID), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
