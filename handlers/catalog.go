package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"chiffrage/services"
)

// HandleCatalogOptions returns the dropdown data every estimate form needs:
// business types, divisional sectors with their sectors, product families,
// people and the revision letters.
func HandleCatalogOptions(cat *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		type dasEntry struct {
			Name    string   `json:"name"`
			Sectors []string `json:"sectors"`
		}
		type familyEntry struct {
			Name     string   `json:"name"`
			Products []string `json:"products"`
		}

		das := make([]dasEntry, 0, len(cat.DAS))
		for _, d := range cat.DAS {
			das = append(das, dasEntry{Name: d.Name, Sectors: d.Sectors})
		}
		families := make([]familyEntry, 0, len(cat.ProductCategories))
		for _, f := range cat.ProductCategories {
			families = append(families, familyEntry{Name: f.Name, Products: f.Products})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"business_types":     cat.BusinessTypes,
			"divisional_sectors": das,
			"product_categories": families,
			"people":             cat.People,
			"revisions":          services.Revisions,
		})
	}
}
