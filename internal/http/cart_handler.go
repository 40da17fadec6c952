package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fjod/chess_academy/internal/cart"
	"github.com/fjod/chess_academy/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CartService interface {
	Cart(ctx context.Context, userID string) ([]domain.CartLine, error)
	AddToCart(ctx context.Context, userID string, line domain.CartLine) ([]domain.CartLine, cart.AddResult, error)
	RemoveFromCart(ctx context.Context, userID string, id domain.ItemID) ([]domain.CartLine, error)
	ClearCart(ctx context.Context, userID string) ([]domain.CartLine, error)
}

type CartHandler struct {
	svc CartService
	log *slog.Logger
}

func NewCartHandler(svc CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{svc: svc, log: log}
}

type CartResponseDTO struct {
	Cart     []domain.CartLine `json:"cart"`
	Total    int64             `json:"total"`
	Outcome  cart.Outcome      `json:"outcome,omitempty"`
	Replaced *domain.CartLine  `json:"replaced,omitempty"`
}

func newCartResponse(lines []domain.CartLine) CartResponseDTO {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return CartResponseDTO{Cart: lines, Total: cart.Total(lines)}
}

// GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	lines, err := h.svc.Cart(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(lines))
}

// POST /cart/add
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var line domain.CartLine
	if !decodeJSON(w, r, &line) {
		return
	}

	lines, res, err := h.svc.AddToCart(r.Context(), user.ID, line)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	resp := newCartResponse(lines)
	resp.Outcome = res.Outcome
	resp.Replaced = res.Replaced
	respondJSON(w, http.StatusCreated, resp)
}

// DELETE /cart/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id is required")
		return
	}

	lines, err := h.svc.RemoveFromCart(r.Context(), user.ID, domain.ItemID(id))
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(lines))
}

// DELETE /cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	lines, err := h.svc.ClearCart(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(lines))
}
