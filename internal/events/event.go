package events

import (
	"time"

	"github.com/fjod/chess_academy/internal/domain"
)

const (
	// OutboxPrefix is the key prefix under which pending events are stored.
	OutboxPrefix = "outbox:"

	TypePurchaseCompleted = "purchase.completed"
)

// PurchaseEvent is written to the outbox in the same write as the checkout
// it describes, then published by the OutboxPoller.
type PurchaseEvent struct {
	ID          string                 `json:"id"`
	Type        string                 `json:"type"`
	UserID      string                 `json:"user_id"`
	ReceiptID   string                 `json:"receipt_id"`
	PaymentID   string                 `json:"payment_id"`
	Items       []PurchasedItem        `json:"items"`
	Total       int64                  `json:"total"`
	Currency    string                 `json:"currency"`
	Summary     domain.PurchaseSummary `json:"summary"`
	CompletedAt time.Time              `json:"completed_at"`
}

type PurchasedItem struct {
	ID    domain.ItemID `json:"id"`
	Kind  domain.Kind   `json:"type"`
	Price int64         `json:"price"`
}

func NewPurchaseEvent(id string, r domain.Receipt) PurchaseEvent {
	items := make([]PurchasedItem, 0, len(r.Items))
	for _, l := range r.Items {
		items = append(items, PurchasedItem{ID: l.ID, Kind: l.Kind, Price: l.Price})
	}
	return PurchaseEvent{
		ID:          id,
		Type:        TypePurchaseCompleted,
		UserID:      r.UserID,
		ReceiptID:   r.ID,
		PaymentID:   r.PaymentID,
		Items:       items,
		Total:       r.Total,
		Currency:    r.Currency,
		Summary:     r.Summary,
		CompletedAt: r.PurchasedAt,
	}
}

func OutboxKey(id string) string {
	return OutboxPrefix + id
}
