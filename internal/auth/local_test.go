package auth

import (
	"context"
	"testing"
	"time"

	"github.com/fjod/chess_academy/internal/domain"
	"github.com/fjod/chess_academy/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestProvider() *LocalProvider {
	p := NewLocalProvider(repository.NewMemoryStore(), "test-secret", time.Hour)
	p.cost = bcrypt.MinCost
	return p
}

func TestCreateUser_ThenSignIn(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	created, err := p.CreateUser(ctx, "  Magnus@Example.com ", "secret123", "Magnus")
	require.NoError(t, err)
	assert.Equal(t, "magnus@example.com", created.Email)
	assert.NotEmpty(t, created.ID)

	token, user, err := p.SignIn(ctx, "magnus@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, created.ID, user.ID)

	verified, err := p.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, verified.ID)
	assert.Equal(t, "Magnus", verified.Name)
}

func TestCreateUser_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		userName string
	}{
		{"missing email", "", "secret123", "A"},
		{"missing name", "a@b.com", "secret123", " "},
		{"bad email", "not-an-email", "secret123", "A"},
		{"short password", "a@b.com", "123", "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestProvider().CreateUser(context.Background(), tt.email, tt.password, tt.userName)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCreateUser_EmailTaken(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()
	_, err := p.CreateUser(ctx, "a@b.com", "secret123", "A")
	require.NoError(t, err)

	_, err = p.CreateUser(ctx, "A@B.com", "other-pass", "B")

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestDeleteUser_FreesEmail(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()
	_, err := p.CreateUser(ctx, "magnus@example.com", "secret123", "Magnus")
	require.NoError(t, err)

	require.NoError(t, p.DeleteUser(ctx, " Magnus@Example.com"))

	_, _, err = p.SignIn(ctx, "magnus@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = p.CreateUser(ctx, "magnus@example.com", "secret123", "Magnus")
	require.NoError(t, err)

	require.NoError(t, p.DeleteUser(ctx, "nobody@example.com"))
}

func TestSignIn_WrongPassword(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()
	_, err := p.CreateUser(ctx, "a@b.com", "secret123", "A")
	require.NoError(t, err)

	_, _, err = p.SignIn(ctx, "a@b.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = p.SignIn(ctx, "nobody@b.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestVerify_RejectsBadTokens(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()
	_, err := p.CreateUser(ctx, "a@b.com", "secret123", "A")
	require.NoError(t, err)
	token, _, err := p.SignIn(ctx, "a@b.com", "secret123")
	require.NoError(t, err)

	_, err = p.Verify(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := newTestProvider()
	other.secret = []byte("another-secret")
	_, err = other.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	p.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = p.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
