package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Payment charges the user for a checkout and returns a transaction id.
type Payment interface {
	Charge(ctx context.Context, userID string, amount int64) (string, error)
}

// SimulatedPayment always succeeds after a fixed delay.
type SimulatedPayment struct {
	delay time.Duration
}

func NewSimulatedPayment(delay time.Duration) *SimulatedPayment {
	return &SimulatedPayment{delay: delay}
}

func (p *SimulatedPayment) Charge(ctx context.Context, _ string, _ int64) (string, error) {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("payment aborted: %w", ctx.Err())
		case <-timer.C:
		}
	}
	return fmt.Sprintf("TXN-%s", uuid.NewString()), nil
}
