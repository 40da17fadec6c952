package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fjod/chess_academy/internal/domain"
)

func (s *Service) Subscription(ctx context.Context, userID string) (*domain.Subscription, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	sub, err := s.loadSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ActivateSubscription sets the plan and its expiry. An AI package bought
// at checkout keeps granting AI access whatever the plan.
func (s *Service) ActivateSubscription(ctx context.Context, userID string, plan domain.Plan, durationMonths int) (*domain.Subscription, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if plan == "" || durationMonths == 0 {
		return nil, fmt.Errorf("%w: plan and duration required", domain.ErrValidation)
	}
	if !plan.Valid() {
		return nil, fmt.Errorf("%w: unknown plan %q", domain.ErrValidation, plan)
	}
	if durationMonths < 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrValidation)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	current, err := s.loadSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	expires := now.AddDate(0, durationMonths, 0)
	sub := domain.Subscription{
		Plan:        plan,
		AIPackage:   current.AIPackage,
		HasAIAccess: plan == domain.PlanPremium || current.AIPackage != "",
		ActivatedAt: &now,
		ExpiresAt:   &expires,
	}

	if err := s.setJSON(ctx, subscriptionKey(userID), sub); err != nil {
		return nil, err
	}
	s.log.Info("subscription activated",
		slog.String("user_id", userID),
		slog.String("plan", string(plan)),
		slog.Int("months", durationMonths))
	return &sub, nil
}
