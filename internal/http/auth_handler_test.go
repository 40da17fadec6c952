package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fjod/chess_academy/internal/auth"
	"github.com/fjod/chess_academy/internal/domain"
	"github.com/fjod/chess_academy/internal/logger"
	"github.com/fjod/chess_academy/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryProvider registers users by email and enforces uniqueness.
type memoryProvider struct {
	mockProvider
	users map[string]domain.User
}

func (m *memoryProvider) CreateUser(_ context.Context, email, _, name string) (*auth.User, error) {
	if _, ok := m.users[email]; ok {
		return nil, auth.ErrEmailTaken
	}
	u := domain.User{ID: "id-" + email, Email: email, Name: name}
	m.users[email] = u
	return &u, nil
}

func (m *memoryProvider) DeleteUser(_ context.Context, email string) error {
	delete(m.users, email)
	return nil
}

type mockAccountService struct {
	initErr error
	inits   int
}

func (m *mockAccountService) InitAccount(_ context.Context, user domain.User) (*domain.Profile, error) {
	m.inits++
	if m.initErr != nil {
		return nil, m.initErr
	}
	return &domain.Profile{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

func (m *mockAccountService) Session(context.Context, domain.User) (*service.Session, error) {
	return nil, nil
}

func (m *mockAccountService) SignOut(context.Context, string) error {
	return nil
}

func signUpRequest() *http.Request {
	body := `{"email":"magnus@example.com","password":"secret123","name":"Magnus"}`
	return httptest.NewRequest("POST", "/auth/signup", bytes.NewBufferString(body))
}

func TestSignUp_Created(t *testing.T) {
	provider := &memoryProvider{users: map[string]domain.User{}}
	accounts := &mockAccountService{}
	handler := NewAuthHandler(provider, accounts, logger.Discard())
	recorder := httptest.NewRecorder()

	handler.SignUp(recorder, signUpRequest())

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, 1, accounts.inits)
	assert.Contains(t, provider.users, "magnus@example.com")
}

func TestSignUp_InitFailureReleasesEmail(t *testing.T) {
	provider := &memoryProvider{users: map[string]domain.User{}}
	accounts := &mockAccountService{initErr: errors.New("store unavailable")}
	handler := NewAuthHandler(provider, accounts, logger.Discard())

	recorder := httptest.NewRecorder()
	handler.SignUp(recorder, signUpRequest())

	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Empty(t, provider.users)

	accounts.initErr = nil
	recorder = httptest.NewRecorder()
	handler.SignUp(recorder, signUpRequest())

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, 2, accounts.inits)
}
