package domain

import "time"

type LibraryEntry struct {
	ID          ItemID    `json:"id"`
	Title       string    `json:"title"`
	Price       int64     `json:"price"`
	Kind        Kind      `json:"type"`
	Image       string    `json:"image,omitempty"`
	Description string    `json:"description"`
	Duration    string    `json:"duration"`
	Lessons     int       `json:"lessons"`
	Level       string    `json:"level"`
	Progress    int       `json:"progress"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// Owns reports whether the library already holds an entry with the given id.
func Owns(library []LibraryEntry, id ItemID) bool {
	for _, e := range library {
		if e.ID == id {
			return true
		}
	}
	return false
}
