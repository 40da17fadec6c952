package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fjod/chess_academy/internal/domain"
	"github.com/fjod/chess_academy/internal/service"
	"github.com/go-chi/chi/v5"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req service.BookingRequest) (*domain.Booking, error)
	Bookings(ctx context.Context, userID string) ([]domain.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	Trainers(ctx context.Context) ([]domain.Trainer, error)
	SeedTrainers(ctx context.Context) ([]domain.Trainer, error)
}

type BookingHandler struct {
	svc BookingService
	log *slog.Logger
}

func NewBookingHandler(svc BookingService, log *slog.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, log: log}
}

// POST /bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req service.BookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	booking, err := h.svc.CreateBooking(r.Context(), user.ID, req)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"booking": booking})
}

// GET /bookings
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	bookings, err := h.svc.Bookings(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

// DELETE /bookings/{id}
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	booking, err := h.svc.CancelBooking(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"booking": booking})
}

// GET /trainers
func (h *BookingHandler) Trainers(w http.ResponseWriter, r *http.Request) {
	trainers, err := h.svc.Trainers(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"trainers": trainers})
}

// POST /seed-trainers
func (h *BookingHandler) SeedTrainers(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	trainers, err := h.svc.SeedTrainers(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Trainers seeded successfully",
		"trainers": trainers,
	})
}
