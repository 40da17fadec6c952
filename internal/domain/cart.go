package domain

import "time"

type BookingTrainer struct {
	Name   string `json:"name"`
	Title  string `json:"title,omitempty"`
	Rating int    `json:"rating,omitempty"`
	Image  string `json:"image,omitempty"`
}

type BookingLevel struct {
	Name string `json:"name"`
}

// CartLine is a pending purchase. Trainer, Level, Date and Time are only
// meaningful for booking lines.
type CartLine struct {
	ID      ItemID          `json:"id"`
	Title   string          `json:"title"`
	Price   int64           `json:"price"`
	Kind    Kind            `json:"type"`
	Image   string          `json:"image,omitempty"`
	Trainer *BookingTrainer `json:"trainer,omitempty"`
	Level   *BookingLevel   `json:"level,omitempty"`
	Date    string          `json:"date,omitempty"`
	Time    string          `json:"time,omitempty"`
	AddedAt time.Time       `json:"added_at"`
}
