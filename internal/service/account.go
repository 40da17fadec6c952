package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fjod/chess_academy/internal/domain"
)

type Session struct {
	User    domain.User    `json:"user"`
	Profile domain.Profile `json:"profile"`
}

// ProfileUpdate carries the editable profile fields. Nil fields are left as
// they are.
type ProfileUpdate struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

// InitAccount seeds the records of a freshly registered user.
func (s *Service) InitAccount(ctx context.Context, user domain.User) (*domain.Profile, error) {
	if err := requireUser(user.ID); err != nil {
		return nil, err
	}

	profile := domain.Profile{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: s.now().UTC(),
	}

	records, err := entries([]keyValue{
		{userKey(user.ID), profile},
		{libraryKey(user.ID), []domain.LibraryEntry{}},
		{cartKey(user.ID), []domain.CartLine{}},
		{subscriptionKey(user.ID), domain.FreeSubscription()},
	})
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(user.ID)
	defer unlock()

	if err := s.store.SetMany(ctx, records); err != nil {
		return nil, fmt.Errorf("init account: %w", err)
	}
	s.log.Info("account initialized", slog.String("user_id", user.ID))
	return &profile, nil
}

// Session returns the user together with their profile. A missing or
// unreadable profile falls back to the bare identity.
func (s *Service) Session(ctx context.Context, user domain.User) (*Session, error) {
	if err := requireUser(user.ID); err != nil {
		return nil, err
	}

	fallback := domain.Profile{ID: user.ID, Email: user.Email, Name: user.Name}
	var profile domain.Profile
	found, err := s.getJSON(ctx, userKey(user.ID), &profile)
	if err != nil {
		s.log.Error("failed to load profile for session",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
	}
	if err != nil || !found {
		profile = fallback
	}

	return &Session{User: user, Profile: profile}, nil
}

func (s *Service) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	var profile domain.Profile
	found, err := s.getJSON(ctx, userKey(userID), &profile)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: profile", domain.ErrNotFound)
	}
	return &profile, nil
}

// UpdateProfile applies the update. The id and email of a profile never
// change here.
func (s *Service) UpdateProfile(ctx context.Context, user domain.User, upd ProfileUpdate) (*domain.Profile, error) {
	if err := requireUser(user.ID); err != nil {
		return nil, err
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
	}

	unlock := s.locks.Lock(user.ID)
	defer unlock()

	profile, err := s.Profile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		profile.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Avatar != nil {
		if *upd.Avatar == "" {
			profile.Avatar = nil
		} else {
			avatar := *upd.Avatar
			profile.Avatar = &avatar
		}
	}
	profile.ID = user.ID
	if user.Email != "" {
		profile.Email = user.Email
	}

	if err := s.setJSON(ctx, userKey(user.ID), profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SignOut clears the server-side cart.
func (s *Service) SignOut(ctx context.Context, userID string) error {
	_, err := s.ClearCart(ctx, userID)
	return err
}
