// Package catalog holds the immutable storefront data loaded once at startup
// and passed to the services that need it.
package catalog

import (
	"github.com/fjod/chess_academy/internal/domain"
)

type Catalog struct {
	courses    []domain.CatalogItem
	byID       map[int64]domain.CatalogItem
	aiPackages []domain.AIPackage
	levels     []domain.TrainingLevel
	trainers   []domain.Trainer
}

func New(courses []domain.CatalogItem, aiPackages []domain.AIPackage, levels []domain.TrainingLevel, trainers []domain.Trainer) *Catalog {
	byID := make(map[int64]domain.CatalogItem, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	return &Catalog{
		courses:    courses,
		byID:       byID,
		aiPackages: aiPackages,
		levels:     levels,
		trainers:   trainers,
	}
}

// Default returns the catalog the storefront ships with.
func Default() *Catalog {
	return New(defaultCourses(), defaultAIPackages(), defaultLevels(), defaultTrainers())
}

// Lookup finds a course or e-book by item id. AI packages and bookings are
// not catalog items.
func (c *Catalog) Lookup(id domain.ItemID) (domain.CatalogItem, bool) {
	n, ok := id.Int()
	if !ok {
		return domain.CatalogItem{}, false
	}
	item, ok := c.byID[n]
	return item, ok
}

func (c *Catalog) AIPackage(id domain.ItemID) (domain.AIPackage, bool) {
	for _, p := range c.aiPackages {
		if p.ID == id {
			return p, true
		}
	}
	return domain.AIPackage{}, false
}

func (c *Catalog) Courses() []domain.CatalogItem {
	return append([]domain.CatalogItem(nil), c.courses...)
}

func (c *Catalog) AIPackages() []domain.AIPackage {
	return append([]domain.AIPackage(nil), c.aiPackages...)
}

func (c *Catalog) Levels() []domain.TrainingLevel {
	return append([]domain.TrainingLevel(nil), c.levels...)
}

// Trainers is the development seed used by the seed-trainers route.
func (c *Catalog) Trainers() []domain.Trainer {
	return append([]domain.Trainer(nil), c.trainers...)
}
