package domain

// Kind is the product category of a cart line or library entry.
type Kind string

const (
	KindVideo   Kind = "video"
	KindEbook   Kind = "ebook"
	KindAI      Kind = "ai"
	KindBooking Kind = "booking"
)

func (k Kind) Valid() bool {
	switch k {
	case KindVideo, KindEbook, KindAI, KindBooking:
		return true
	}
	return false
}

// Entitling reports whether a purchase of this kind lands in the library.
func (k Kind) Entitling() bool {
	return k == KindVideo || k == KindEbook || k == KindAI
}

// DefaultLevel is the level of items that do not name one.
const DefaultLevel = "All Levels"

type CatalogItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    Kind   `json:"type"`
	Duration    string `json:"duration"`
	Lessons     int    `json:"lessons"`
	Level       string `json:"level"`
	Image       string `json:"image"`
}

type AIPackage struct {
	ID            ItemID   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"original_price,omitempty"`
	DurationDays  int      `json:"duration_days"`
	Features      []string `json:"features"`
}

type TrainingLevel struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Focus       []string `json:"focus"`
	Rating      string   `json:"rating"`
}

type Trainer struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Rating       int      `json:"rating"`
	Specialties  []string `json:"specialties"`
	Levels       []string `json:"levels"`
	HourlyRate   int64    `json:"hourly_rate"`
	Avatar       string   `json:"avatar"`
	Bio          string   `json:"bio"`
	Availability []string `json:"availability"`
}
