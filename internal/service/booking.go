package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fjod/chess_academy/internal/domain"
)

type BookingRequest struct {
	Trainer domain.BookingTrainer `json:"trainer"`
	Level   domain.BookingLevel   `json:"level"`
	Date    string                `json:"date"`
	Time    string                `json:"time"`
	Price   int64                 `json:"price"`
}

// CreateBooking books a session directly, outside checkout. Such bookings
// start out confirmed.
func (s *Service) CreateBooking(ctx context.Context, userID string, req BookingRequest) (*domain.Booking, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Trainer.Name) == "" || strings.TrimSpace(req.Date) == "" {
		return nil, fmt.Errorf("%w: trainer and date are required", domain.ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}

	booking := domain.Booking{
		ID:        s.newID(),
		UserID:    userID,
		Trainer:   req.Trainer,
		Level:     req.Level,
		Date:      req.Date,
		Time:      req.Time,
		Price:     req.Price,
		Status:    domain.BookingConfirmed,
		CreatedAt: s.now().UTC(),
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	ids, err := s.loadBookingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	records, err := entries([]keyValue{
		{bookingKey(booking.ID), booking},
		{userBookingsKey(userID), append(ids, booking.ID)},
	})
	if err != nil {
		return nil, err
	}
	if err := s.store.SetMany(ctx, records); err != nil {
		return nil, fmt.Errorf("save booking: %w", err)
	}

	s.log.Info("booking created",
		slog.String("user_id", userID),
		slog.String("booking_id", booking.ID),
		slog.String("trainer", booking.Trainer.Name))
	return &booking, nil
}

// Bookings lists the user's bookings in the order they were made. Index
// entries whose record is gone are skipped.
func (s *Service) Bookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	ids, err := s.loadBookingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = bookingKey(id)
	}

	found, err := s.store.MGet(ctx, keys...)
	if err != nil {
		return nil, err
	}
	bookings := make([]domain.Booking, 0, len(found))
	for _, e := range found {
		var b domain.Booking
		if err := unmarshalEntry(e, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// CancelBooking marks the booking cancelled. Only the owner may cancel, and
// completed or cancelled bookings cannot be cancelled.
func (s *Service) CancelBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	var b domain.Booking
	found, err := s.getJSON(ctx, bookingKey(bookingID), &b)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: booking %s", domain.ErrNotFound, bookingID)
	}
	if b.UserID != userID {
		return nil, fmt.Errorf("%w: booking belongs to another user", domain.ErrForbidden)
	}
	if b.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: booking already %s", domain.ErrValidation, b.Status)
	}

	now := s.now().UTC()
	b.Status = domain.BookingCancelled
	b.CancelledAt = &now
	if err := s.setJSON(ctx, bookingKey(bookingID), b); err != nil {
		return nil, err
	}

	s.log.Info("booking cancelled",
		slog.String("user_id", userID),
		slog.String("booking_id", bookingID))
	return &b, nil
}

// Trainers lists the trainer profiles, ordered by key.
func (s *Service) Trainers(ctx context.Context) ([]domain.Trainer, error) {
	found, err := s.store.GetByPrefix(ctx, trainerPrefix)
	if err != nil {
		return nil, err
	}
	trainers := make([]domain.Trainer, 0, len(found))
	for _, e := range found {
		var t domain.Trainer
		if err := unmarshalEntry(e, &t); err != nil {
			return nil, err
		}
		trainers = append(trainers, t)
	}
	return trainers, nil
}

// SeedTrainers writes the bundled trainer profiles, overwriting any with the
// same id.
func (s *Service) SeedTrainers(ctx context.Context) ([]domain.Trainer, error) {
	trainers := s.catalog.Trainers()
	values := make([]keyValue, 0, len(trainers))
	for _, t := range trainers {
		key := t.ID
		if !strings.HasPrefix(key, trainerPrefix) {
			key = trainerPrefix + key
		}
		values = append(values, keyValue{key, t})
	}

	records, err := entries(values)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetMany(ctx, records); err != nil {
		return nil, fmt.Errorf("seed trainers: %w", err)
	}
	s.log.Info("trainers seeded", slog.Int("count", len(trainers)))
	return trainers, nil
}

