package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fjod/chess_academy/internal/domain"
	"github.com/fjod/chess_academy/internal/service"
)

type CheckoutService interface {
	Checkout(ctx context.Context, userID string) (*service.CheckoutResult, error)
	Library(ctx context.Context, userID string) ([]domain.LibraryEntry, error)
	Purchases(ctx context.Context, userID string) ([]domain.Receipt, error)
}

type CheckoutHandler struct {
	svc CheckoutService
	log *slog.Logger
}

func NewCheckoutHandler(svc CheckoutService, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, log: log}
}

type CheckoutResponseDTO struct {
	*service.CheckoutResult
	Message string `json:"message"`
}

// POST /checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	res, err := h.svc.Checkout(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, CheckoutResponseDTO{
		CheckoutResult: res,
		Message:        "Purchase successful",
	})
}

// GET /library
func (h *CheckoutHandler) Library(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	library, err := h.svc.Library(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"library": library})
}

// GET /purchases
func (h *CheckoutHandler) Purchases(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	receipts, err := h.svc.Purchases(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"purchases": receipts})
}
