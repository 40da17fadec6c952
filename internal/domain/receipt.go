package domain

import "time"

// PurchaseSummary lists which kinds of entitlement a checkout granted.
type PurchaseSummary struct {
	CoursesAdded  int    `json:"courses_added"`
	EbooksAdded   int    `json:"ebooks_added"`
	AIActivated   bool   `json:"ai_activated"`
	AIPackage     ItemID `json:"ai_package,omitempty"`
	BookingsAdded int    `json:"bookings_added"`
}

// Receipt is the immutable record of a completed checkout.
type Receipt struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Items       []CartLine      `json:"items"`
	Total       int64           `json:"total"`
	Currency    string          `json:"currency"`
	PaymentID   string          `json:"payment_id"`
	Summary     PurchaseSummary `json:"summary"`
	PurchasedAt time.Time       `json:"purchased_at"`
}
