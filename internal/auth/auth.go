// Package auth issues and verifies bearer tokens for storefront users.
package auth

import (
	"context"
	"fmt"

	"github.com/fjod/chess_academy/internal/domain"
)

var (
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", domain.ErrValidation)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", domain.ErrUnauthenticated)
	ErrInvalidToken       = fmt.Errorf("%w: invalid or expired token", domain.ErrUnauthenticated)
)

type User = domain.User

type Provider interface {
	CreateUser(ctx context.Context, email, password, name string) (*User, error)
	SignIn(ctx context.Context, email, password string) (string, *User, error)
	Verify(ctx context.Context, token string) (*User, error)
	// DeleteUser removes the account registered under email. Deleting an
	// unknown email is not an error.
	DeleteUser(ctx context.Context, email string) error
}
