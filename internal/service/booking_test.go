package service

import (
	"context"
	"testing"

	"github.com/fjod/chess_academy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingRequest() BookingRequest {
	return BookingRequest{
		Trainer: domain.BookingTrainer{Name: "IM David Chen", Title: "International Master", Rating: 2480},
		Level:   domain.BookingLevel{Name: "Intermediate to Advanced"},
		Date:    "2025-04-02",
		Time:    "02:00 PM",
		Price:   100000,
	}
}

func TestCreateBooking_Confirmed(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	user := env.signUp(t, "u1")
	ctx := context.Background()

	b, err := env.svc.CreateBooking(ctx, user.ID, newBookingRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, user.ID, b.UserID)

	second, err := env.svc.CreateBooking(ctx, user.ID, newBookingRequest())
	require.NoError(t, err)

	bookings, err := env.svc.Bookings(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, b.ID, bookings[0].ID)
	assert.Equal(t, second.ID, bookings[1].ID)
}

func TestCreateBooking_Validation(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	user := env.signUp(t, "u1")
	req := newBookingRequest()
	req.Date = ""

	_, err := env.svc.CreateBooking(context.Background(), user.ID, req)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCancelBooking(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	owner := env.signUp(t, "owner")
	other := env.signUp(t, "other")
	ctx := context.Background()
	b, err := env.svc.CreateBooking(ctx, owner.ID, newBookingRequest())
	require.NoError(t, err)

	_, err = env.svc.CancelBooking(ctx, other.ID, b.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	bookings, _ := env.svc.Bookings(ctx, owner.ID)
	assert.Equal(t, domain.BookingConfirmed, bookings[0].Status)

	_, err = env.svc.CancelBooking(ctx, owner.ID, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cancelled, err := env.svc.CancelBooking(ctx, owner.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	_, err = env.svc.CancelBooking(ctx, owner.ID, b.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCancelBooking_CompletedIsRejected(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	user := env.signUp(t, "u1")
	ctx := context.Background()
	b, err := env.svc.CreateBooking(ctx, user.ID, newBookingRequest())
	require.NoError(t, err)
	b.Status = domain.BookingCompleted
	require.NoError(t, env.svc.setJSON(ctx, bookingKey(b.ID), b))

	_, err = env.svc.CancelBooking(ctx, user.ID, b.ID)

	assert.ErrorIs(t, err, domain.ErrValidation)
	bookings, err := env.svc.Bookings(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, domain.BookingCompleted, bookings[0].Status)
	assert.Nil(t, bookings[0].CancelledAt)
}

func TestSeedTrainersThenList(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	ctx := context.Background()

	trainers, err := env.svc.Trainers(ctx)
	require.NoError(t, err)
	assert.Empty(t, trainers)

	seeded, err := env.svc.SeedTrainers(ctx)
	require.NoError(t, err)
	assert.Len(t, seeded, 3)

	trainers, err = env.svc.Trainers(ctx)
	require.NoError(t, err)
	require.Len(t, trainers, 3)
	assert.Equal(t, "trainer:1", trainers[0].ID)
	assert.Equal(t, "GM Alexandra Petrov", trainers[0].Name)
}
