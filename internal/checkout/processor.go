// Package checkout turns a cart into entitlements: library entries, trainer
// bookings and AI access.
package checkout

import (
	"fmt"
	"time"

	"github.com/fjod/chess_academy/internal/domain"
	"github.com/google/uuid"
)

const (
	defaultTrainerName  = "Unknown Trainer"
	defaultTrainerTitle = "Chess Instructor"
	defaultTrainerRate  = 2400
	defaultLevelName    = "Beginner to Intermediate"
	defaultSessionTime  = "10:00 AM"
	dateLayout          = "2006-01-02"
)

// Catalog resolves metadata for purchased items.
type Catalog interface {
	Lookup(id domain.ItemID) (domain.CatalogItem, bool)
	AIPackage(id domain.ItemID) (domain.AIPackage, bool)
}

type Input struct {
	UserID       string
	Lines        []domain.CartLine
	Library      []domain.LibraryEntry
	Bookings     []domain.Booking
	Subscription domain.Subscription
}

type Result struct {
	Library      []domain.LibraryEntry
	NewEntries   []domain.LibraryEntry
	Bookings     []domain.Booking
	NewBookings  []domain.Booking
	Subscription domain.Subscription
	// Charged holds the lines the user pays for; Skipped the entitlement
	// lines dropped because the user already owns them.
	Charged []domain.CartLine
	Skipped []domain.CartLine
	Total   int64
	Summary domain.PurchaseSummary
}

type Processor struct {
	catalog Catalog
	now     func() time.Time
	newID   func() string
}

type Option func(*Processor)

func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(p *Processor) { p.newID = newID }
}

func NewProcessor(catalog Catalog, opts ...Option) *Processor {
	p := &Processor{
		catalog: catalog,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Process computes the post-checkout state. It does not touch storage and
// leaves the input slices unmodified.
func (p *Processor) Process(in Input) (*Result, error) {
	if len(in.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	now := p.now().UTC()
	res := &Result{
		Library:      append([]domain.LibraryEntry(nil), in.Library...),
		Bookings:     append([]domain.Booking(nil), in.Bookings...),
		Subscription: in.Subscription,
	}

	for _, line := range in.Lines {
		if line.Kind == domain.KindBooking {
			b := p.booking(in.UserID, line, now)
			res.NewBookings = append(res.NewBookings, b)
			res.Charged = append(res.Charged, line)
			res.Total += line.Price
			res.Summary.BookingsAdded++
			continue
		}
		if !line.Kind.Entitling() {
			return nil, fmt.Errorf("%w: unknown type %q", domain.ErrValidation, line.Kind)
		}
		if line.Kind == domain.KindAI {
			pkg, ok := p.catalog.AIPackage(line.ID)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownAIPackage, line.ID)
			}
			line.Price = pkg.Price
		}
		if domain.Owns(res.Library, line.ID) {
			res.Skipped = append(res.Skipped, line)
			continue
		}

		entry := p.entry(line, now)
		res.Library = append(res.Library, entry)
		res.NewEntries = append(res.NewEntries, entry)
		res.Charged = append(res.Charged, line)
		res.Total += line.Price

		switch line.Kind {
		case domain.KindVideo:
			res.Summary.CoursesAdded++
		case domain.KindEbook:
			res.Summary.EbooksAdded++
		case domain.KindAI:
			res.Subscription.AIPackage = line.ID
			res.Subscription.HasAIAccess = true
			res.Summary.AIActivated = true
			res.Summary.AIPackage = line.ID
		}
	}

	res.Bookings = append(res.Bookings, res.NewBookings...)
	return res, nil
}

func (p *Processor) entry(line domain.CartLine, now time.Time) domain.LibraryEntry {
	e := domain.LibraryEntry{
		ID:          line.ID,
		Title:       line.Title,
		Price:       line.Price,
		Kind:        line.Kind,
		Image:       line.Image,
		Level:       domain.DefaultLevel,
		Progress:    0,
		PurchasedAt: now,
	}
	if item, ok := p.catalog.Lookup(line.ID); ok {
		e.Description = item.Description
		e.Duration = item.Duration
		e.Lessons = item.Lessons
		if item.Level != "" {
			e.Level = item.Level
		}
	}
	return e
}

func (p *Processor) booking(userID string, line domain.CartLine, now time.Time) domain.Booking {
	trainer := domain.BookingTrainer{Name: defaultTrainerName, Title: defaultTrainerTitle, Rating: defaultTrainerRate}
	if line.Trainer != nil {
		if line.Trainer.Name != "" {
			trainer.Name = line.Trainer.Name
		}
		if line.Trainer.Title != "" {
			trainer.Title = line.Trainer.Title
		}
		if line.Trainer.Rating != 0 {
			trainer.Rating = line.Trainer.Rating
		}
		trainer.Image = line.Trainer.Image
	}

	level := domain.BookingLevel{Name: defaultLevelName}
	if line.Level != nil && line.Level.Name != "" {
		level.Name = line.Level.Name
	}

	date := line.Date
	if date == "" {
		date = now.Format(dateLayout)
	}
	tm := line.Time
	if tm == "" {
		tm = defaultSessionTime
	}

	return domain.Booking{
		ID:        p.newID(),
		UserID:    userID,
		Trainer:   trainer,
		Level:     level,
		Date:      date,
		Time:      tm,
		Price:     line.Price,
		Status:    domain.BookingUpcoming,
		CreatedAt: now,
	}
}
