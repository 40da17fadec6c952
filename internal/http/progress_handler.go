package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fjod/chess_academy/internal/domain"
	"github.com/go-chi/chi/v5"
)

type ProgressService interface {
	SaveProgress(ctx context.Context, userID string, kind domain.ProgressType, rec domain.ProgressRecord) ([]domain.ProgressRecord, error)
	Progress(ctx context.Context, userID string, kind domain.ProgressType) ([]domain.ProgressRecord, error)
}

type ProgressHandler struct {
	svc ProgressService
	log *slog.Logger
}

func NewProgressHandler(svc ProgressService, log *slog.Logger) *ProgressHandler {
	return &ProgressHandler{svc: svc, log: log}
}

// POST /progress/{type}
func (h *ProgressHandler) Save(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	var rec domain.ProgressRecord
	if !decodeJSON(w, r, &rec) {
		return
	}
	kind := domain.ProgressType(chi.URLParam(r, "type"))
	records, err := h.svc.SaveProgress(r.Context(), user.ID, kind, rec)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"progress": records})
}

// GET /progress/{type}
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	kind := domain.ProgressType(chi.URLParam(r, "type"))
	records, err := h.svc.Progress(r.Context(), user.ID, kind)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"progress": records})
}
