package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/fjod/chess_academy/internal/domain"
	"github.com/fjod/chess_academy/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

type claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// LocalProvider keeps bcrypt-hashed credentials in the key-value store and
// signs HS256 tokens.
type LocalProvider struct {
	store  repository.Store
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time

	mu sync.Mutex
}

func NewLocalProvider(store repository.Store, secret string, ttl time.Duration) *LocalProvider {
	return &LocalProvider{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
}

func (p *LocalProvider) CreateUser(ctx context.Context, email, password, name string) (*User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, fmt.Errorf("%w: email, password and name are required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	_, err = p.store.Get(ctx, accountKey(email))
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrKeyNotFound) {
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	acc := account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    p.now().UTC(),
	}
	data, err := json.Marshal(acc)
	if err != nil {
		return nil, fmt.Errorf("marshal account: %w", err)
	}
	if err := p.store.Set(ctx, accountKey(email), data); err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}

	return acc.user(), nil
}

func (p *LocalProvider) DeleteUser(ctx context.Context, email string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.store.Delete(ctx, accountKey(normalizeEmail(email))); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (string, *User, error) {
	data, err := p.store.Get(ctx, accountKey(normalizeEmail(email)))
	if errors.Is(err, repository.ErrKeyNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("lookup account: %w", err)
	}

	var acc account
	if err := json.Unmarshal(data, &acc); err != nil {
		return "", nil, fmt.Errorf("unmarshal account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := p.issue(acc)
	if err != nil {
		return "", nil, err
	}
	return token, acc.user(), nil
}

func (p *LocalProvider) Verify(_ context.Context, token string) (*User, error) {
	keyFunc := func(*jwt.Token) (interface{}, error) {
		return p.secret, nil
	}

	c := &claims{}
	parsed, err := jwt.ParseWithClaims(token, c, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil || !parsed.Valid || c.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &User{ID: c.Subject, Email: c.Email, Name: c.Name}, nil
}

func (p *LocalProvider) issue(acc account) (string, error) {
	now := p.now()
	c := &claims{
		Email: acc.Email,
		Name:  acc.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (a account) user() *User {
	return &User{ID: a.ID, Email: a.Email, Name: a.Name, CreatedAt: a.CreatedAt}
}

func accountKey(email string) string {
	return "account:" + email
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
