package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"chiffrage/services"
)

// configRequest is the partial scalar update payload. Only the fields
// present are applied; none of them triggers a catalog reset.
type configRequest struct {
	ReferenceNumber  *string `json:"reference_number"`
	Client           *string `json:"client"`
	BusinessType     *string `json:"business_type"`
	DivisionalSector *string `json:"divisional_sector"`
	Sector           *string `json:"sector"`
	ProductCategory  *string `json:"product_category"`
	Product          *string `json:"product"`
	Designation      *string `json:"designation"`
	Quantity         *int    `json:"quantity"`
	Revision         *string `json:"revision"`
	Date             *string `json:"date"`
	Author           *string `json:"author"`
	Validator        *string `json:"validator"`
	Description      *string `json:"description"`

	ContingencyPercent    *float64 `json:"contingency_percent"`
	ExperienceCoefficient *float64 `json:"experience_coefficient"`
	// ExperienceHours is free text: a parseable value makes the entered
	// hours the authority for the final total, anything else clears them
	// and hands authority back to the coefficient.
	ExperienceHours *string `json:"experience_hours"`
}

// HandleEstimateConfig applies a partial scalar update. Changing sector,
// business type or product never rebuilds the item collections here; the
// explicit reset endpoint does that.
func HandleEstimateConfig(app *pocketbase.PocketBase, cat *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing estimate ID")
		}

		var req configRequest
		if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
			return e.String(http.StatusBadRequest, "Invalid JSON body")
		}
		if req.Quantity != nil && *req.Quantity <= 0 {
			return e.String(http.StatusBadRequest, "Quantity must be at least 1")
		}

		record, p, err := loadEstimate(app, cat, id)
		if err != nil {
			log.Printf("estimate_config: %v", err)
			return e.String(http.StatusNotFound, "Estimate not found")
		}

		applyString := func(dst *string, src *string) {
			if src != nil {
				*dst = *src
			}
		}
		applyString(&p.CRMNumber, req.ReferenceNumber)
		applyString(&p.Client, req.Client)
		applyString(&p.BusinessType, req.BusinessType)
		applyString(&p.DAS, req.DivisionalSector)
		applyString(&p.Sector, req.Sector)
		applyString(&p.ProductCategory, req.ProductCategory)
		applyString(&p.Product, req.Product)
		applyString(&p.Designation, req.Designation)
		applyString(&p.Revision, req.Revision)
		applyString(&p.Date, req.Date)
		applyString(&p.Author, req.Author)
		applyString(&p.Validator, req.Validator)
		applyString(&p.Description, req.Description)
		if req.Quantity != nil {
			p.Quantity = *req.Quantity
		}
		if req.ContingencyPercent != nil {
			p.ContingencyPercent = *req.ContingencyPercent
		}
		if req.ExperienceCoefficient != nil {
			p.RexCoeff = *req.ExperienceCoefficient
			p.ManualRexHours = nil
		}
		if req.ExperienceHours != nil {
			p.ManualRexHours = services.ParseManualHours(*req.ExperienceHours)
		}

		if err := storeEstimate(app, record, p); err != nil {
			log.Printf("estimate_config: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"estimate": scalarsOf(record, p),
			"totals":   p.ComputeTotals(),
		})
	}
}

// HandleEstimateReset rebuilds every item collection from the catalog for
// the estimate's current configuration, discarding all per-item overrides.
func HandleEstimateReset(app *pocketbase.PocketBase, cat *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing estimate ID")
		}

		record, p, err := loadEstimate(app, cat, id)
		if err != nil {
			log.Printf("estimate_reset: %v", err)
			return e.String(http.StatusNotFound, "Estimate not found")
		}

		p.ResetToDefaults(cat)

		if err := storeEstimate(app, record, p); err != nil {
			log.Printf("estimate_reset: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"estimate": scalarsOf(record, p),
			"summary":  p.SummaryTree(),
			"totals":   p.ComputeTotals(),
		})
	}
}
