package http

import (
	"net/http"

	"github.com/fjod/chess_academy/internal/catalog"
	"github.com/fjod/chess_academy/internal/domain"
)

type CatalogResponseDTO struct {
	Courses    []domain.CatalogItem   `json:"courses"`
	Ebooks     []domain.CatalogItem   `json:"ebooks"`
	AIPackages []domain.AIPackage     `json:"ai_packages"`
	Levels     []domain.TrainingLevel `json:"levels"`
}

// GET /catalog
func catalogHandler(c *catalog.Catalog) http.HandlerFunc {
	resp := CatalogResponseDTO{
		Courses:    []domain.CatalogItem{},
		Ebooks:     []domain.CatalogItem{},
		AIPackages: c.AIPackages(),
		Levels:     c.Levels(),
	}
	for _, item := range c.Courses() {
		if item.Category == domain.KindEbook {
			resp.Ebooks = append(resp.Ebooks, item)
			continue
		}
		resp.Courses = append(resp.Courses, item)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, resp)
	}
}
