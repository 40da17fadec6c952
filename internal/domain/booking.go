package domain

import "time"

type BookingStatus string

const (
	BookingUpcoming  BookingStatus = "upcoming"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

type Booking struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Trainer     BookingTrainer `json:"trainer"`
	Level       BookingLevel   `json:"level"`
	Date        string         `json:"date"`
	Time        string         `json:"time"`
	Price       int64          `json:"price"`
	Status      BookingStatus  `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	CancelledAt *time.Time     `json:"cancelled_at,omitempty"`
}
