package cache

import (
	"context"
	"errors"

	"github.com/fjod/chess_academy/internal/domain"
)

// CartCache holds a read-through copy of each user's cart lines.
type CartCache interface {
	Get(ctx context.Context, userID string) ([]domain.CartLine, error)
	Set(ctx context.Context, userID string, lines []domain.CartLine) error
	Delete(ctx context.Context, userID string) error
}

var ErrCacheMiss = errors.New("cache miss")

// Nop is used when no Redis address is configured. Every read misses.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]domain.CartLine, error) {
	return nil, ErrCacheMiss
}

func (Nop) Set(context.Context, string, []domain.CartLine) error { return nil }

func (Nop) Delete(context.Context, string) error { return nil }
