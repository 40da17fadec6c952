package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fjod/chess_academy/internal/cache"
	"github.com/fjod/chess_academy/internal/cart"
	"github.com/fjod/chess_academy/internal/checkout"
	"github.com/fjod/chess_academy/internal/domain"
	"github.com/fjod/chess_academy/internal/metrics"
)

const bookingIDPrefix = "booking-"

// Cart returns the user's cart lines, served from the cache when possible.
func (s *Service) Cart(ctx context.Context, userID string) ([]domain.CartLine, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		lines, err := s.cache.Get(ctx, userID)
		if err == nil {
			return lines, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("cache get error", slog.String("user_id", userID), slog.Any("error", err))
		}

		// the lock keeps a concurrent mutation from landing between the
		// store read and the cache write
		unlock := s.locks.Lock(userID)
		defer unlock()

		lines, err = s.loadCart(ctx, userID)
		if err != nil {
			return nil, err
		}
		if errSet := s.cache.Set(ctx, userID, lines); errSet != nil {
			s.log.Warn("cache set error", slog.String("user_id", userID), slog.Any("error", errSet))
		}
		return lines, nil
	})
	if err != nil {
		return nil, err
	}

	lines := v.([]domain.CartLine)
	return append([]domain.CartLine{}, lines...), nil
}

// AddToCart validates and appends a line. Booking lines without an id get a
// generated one. AI lines must name a catalog package and are priced from it.
func (s *Service) AddToCart(ctx context.Context, userID string, line domain.CartLine) ([]domain.CartLine, cart.AddResult, error) {
	if err := requireUser(userID); err != nil {
		return nil, cart.AddResult{}, err
	}
	if line.Kind == domain.KindBooking && line.ID == "" {
		line.ID = domain.ItemID(bookingIDPrefix + s.newID())
	}
	if line.Kind == domain.KindAI {
		pkg, ok := s.catalog.AIPackage(line.ID)
		if !ok {
			return nil, cart.AddResult{}, fmt.Errorf("%w: %s", checkout.ErrUnknownAIPackage, line.ID)
		}
		line.Price = pkg.Price
		if line.Title == "" {
			line.Title = pkg.Title
		}
	}
	line.AddedAt = s.now().UTC()

	var res cart.AddResult
	lines, err := s.mutateCart(ctx, userID, func(c *cart.Cart) error {
		var owned cart.Library
		if line.Kind != domain.KindBooking {
			library, err := s.loadLibrary(ctx, userID)
			if err != nil {
				return err
			}
			owned = library
		}
		r, err := c.Add(line, owned)
		res = r
		return err
	})
	if err != nil {
		return nil, cart.AddResult{}, err
	}
	return lines, res, nil
}

func (s *Service) RemoveFromCart(ctx context.Context, userID string, id domain.ItemID) ([]domain.CartLine, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.mutateCart(ctx, userID, func(c *cart.Cart) error {
		if !c.Remove(id) {
			return errNoChange
		}
		return nil
	})
}

func (s *Service) ClearCart(ctx context.Context, userID string) ([]domain.CartLine, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.mutateCart(ctx, userID, func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
}

var errNoChange = errors.New("no change")

// mutateCart loads the cart under the user's lock, applies fn and saves the
// result. fn returning errNoChange skips the write.
func (s *Service) mutateCart(ctx context.Context, userID string, fn func(*cart.Cart) error) ([]domain.CartLine, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	lines, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	c := cart.New(lines)
	c.Subscribe(s.recordCartEvent(userID))

	if err := fn(c); err != nil {
		if errors.Is(err, errNoChange) {
			return c.Lines(), nil
		}
		return nil, err
	}

	updated := c.Lines()
	if err := s.setJSON(ctx, cartKey(userID), updated); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	s.invalidateCache(userID)
	return updated, nil
}

func (s *Service) loadCart(ctx context.Context, userID string) ([]domain.CartLine, error) {
	lines := []domain.CartLine{}
	if _, err := s.getJSON(ctx, cartKey(userID), &lines); err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return lines, nil
}

func (s *Service) recordCartEvent(userID string) cart.Listener {
	return func(e cart.Event) {
		metrics.CartMutations.WithLabelValues(string(e.Op)).Inc()

		attrs := []any{
			slog.String("user_id", userID),
			slog.String("op", string(e.Op)),
			slog.Int("count", e.Count),
			slog.Int64("total", e.Total),
		}
		if e.Line != nil {
			attrs = append(attrs, slog.String("item_id", e.Line.ID.String()))
		}
		if e.Replaced != nil {
			attrs = append(attrs, slog.String("replaced_id", e.Replaced.ID.String()))
		}
		s.log.Debug("cart changed", attrs...)
	}
}

func (s *Service) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.log.Warn("cache invalidate error", slog.String("user_id", userID), slog.Any("error", err))
	}
}
