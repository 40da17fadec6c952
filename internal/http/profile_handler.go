package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fjod/chess_academy/internal/domain"
	"github.com/fjod/chess_academy/internal/service"
)

type ProfileService interface {
	Profile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, user domain.User, upd service.ProfileUpdate) (*domain.Profile, error)
	Subscription(ctx context.Context, userID string) (*domain.Subscription, error)
	ActivateSubscription(ctx context.Context, userID string, plan domain.Plan, durationMonths int) (*domain.Subscription, error)
}

type ProfileHandler struct {
	svc ProfileService
	log *slog.Logger
}

func NewProfileHandler(svc ProfileService, log *slog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, log: log}
}

type ActivateSubscriptionRequestDTO struct {
	Plan           domain.Plan `json:"plan"`
	DurationMonths int         `json:"duration_months"`
}

// GET /profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	profile, err := h.svc.Profile(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"profile": profile})
}

// PUT /profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var upd service.ProfileUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}
	profile, err := h.svc.UpdateProfile(r.Context(), user, upd)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"profile": profile})
}

// GET /subscription
func (h *ProfileHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	sub, err := h.svc.Subscription(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"subscription": sub})
}

// POST /subscription/activate
func (h *ProfileHandler) ActivateSubscription(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req ActivateSubscriptionRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	sub, err := h.svc.ActivateSubscription(r.Context(), user.ID, req.Plan, req.DurationMonths)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"subscription": sub})
}
