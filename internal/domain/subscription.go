package domain

import "time"

type Plan string

const (
	PlanFree    Plan = "free"
	PlanBasic   Plan = "basic"
	PlanPremium Plan = "premium"
)

func (p Plan) Valid() bool {
	return p == PlanFree || p == PlanBasic || p == PlanPremium
}

// Subscription is the per-user entitlement record. AIPackage is set by
// checkout when an AI package is purchased; HasAIAccess is kept in sync on
// every write.
type Subscription struct {
	Plan        Plan       `json:"plan"`
	HasAIAccess bool       `json:"has_ai_access"`
	AIPackage   ItemID     `json:"ai_package,omitempty"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

func FreeSubscription() Subscription {
	return Subscription{Plan: PlanFree}
}
