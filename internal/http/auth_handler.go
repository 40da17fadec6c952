package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fjod/chess_academy/internal/auth"
	"github.com/fjod/chess_academy/internal/domain"
	"github.com/fjod/chess_academy/internal/service"
)

type AccountService interface {
	InitAccount(ctx context.Context, user domain.User) (*domain.Profile, error)
	Session(ctx context.Context, user domain.User) (*service.Session, error)
	SignOut(ctx context.Context, userID string) error
}

type AuthHandler struct {
	provider auth.Provider
	accounts AccountService
	log      *slog.Logger
}

func NewAuthHandler(provider auth.Provider, accounts AccountService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		accounts: accounts,
		log:      log,
	}
}

type SignUpRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type SignInRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponseDTO struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        domain.User `json:"user"`
}

// POST /auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email, password and name are required")
		return
	}

	user, err := h.provider.CreateUser(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	if _, err := h.accounts.InitAccount(r.Context(), *user); err != nil {
		// drop the account so the same email can sign up again
		if errDel := h.provider.DeleteUser(context.WithoutCancel(r.Context()), user.Email); errDel != nil {
			h.log.Error("signup rollback failed", slog.String("user_id", user.ID), slog.Any("error", errDel))
		}
		handleServiceError(w, h.log, err)
		return
	}

	h.log.Info("user signed up", slog.String("user_id", user.ID))
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"user":    user,
		"message": "User created successfully",
	})
}

// POST /auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	token, user, err := h.provider.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, SignInResponseDTO{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        *user,
	})
}

// POST /auth/signout
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.accounts.SignOut(r.Context(), user.ID); err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}

// GET /auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	session, err := h.accounts.Session(r.Context(), user)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"session": session})
}
