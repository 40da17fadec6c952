package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/fjod/chess_academy/internal/auth"
	"github.com/fjod/chess_academy/internal/cart"
	"github.com/fjod/chess_academy/internal/checkout"
	"github.com/fjod/chess_academy/internal/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Default().Error("failed to encode response", slog.Any("error", err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// decodeJSON reads the request body into dst. An empty body leaves dst
// untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(w, http.StatusRequestEntityTooLarge, "request_too_large",
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return false
	}
	respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
	return false
}

// specificCodes refines the machine code of well-known validation errors.
var specificCodes = []struct {
	err  error
	code string
}{
	{cart.ErrAlreadyInCart, "already_in_cart"},
	{cart.ErrAlreadyOwned, "already_owned"},
	{checkout.ErrEmptyCart, "empty_cart"},
	{checkout.ErrUnknownAIPackage, "unknown_ai_package"},
	{auth.ErrEmailTaken, "email_taken"},
	{auth.ErrInvalidCredentials, "invalid_credentials"},
	{auth.ErrInvalidToken, "invalid_token"},
}

// handleServiceError converts domain error categories to HTTP status codes.
func handleServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	var httpStatus int
	var code string

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		httpStatus = http.StatusUnauthorized
		code = "unauthenticated"
	case errors.Is(err, domain.ErrForbidden):
		httpStatus = http.StatusForbidden
		code = "permission_denied"
	case errors.Is(err, domain.ErrValidation):
		httpStatus = http.StatusBadRequest
		code = "invalid_argument"
	case errors.Is(err, domain.ErrNotFound):
		httpStatus = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, context.DeadlineExceeded):
		httpStatus = http.StatusGatewayTimeout
		code = "timeout"
	case errors.Is(err, context.Canceled):
		httpStatus = http.StatusRequestTimeout
		code = "request_canceled"
	default:
		log.Error("request failed", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	for _, sc := range specificCodes {
		if errors.Is(err, sc.err) {
			code = sc.code
			break
		}
	}
	respondError(w, httpStatus, code, err.Error())
}
