package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"chiffrage/services"
)

// HandleEstimateSummary returns the recap tree of an estimate.
func HandleEstimateSummary(app *pocketbase.PocketBase, cat *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing estimate ID")
		}

		_, p, err := loadEstimate(app, cat, id)
		if err != nil {
			log.Printf("estimate_summary: %v", err)
			return e.String(http.StatusNotFound, "Estimate not found")
		}

		return e.JSON(http.StatusOK, p.SummaryTree())
	}
}

// HandleEstimateTotals returns the totals pipeline snapshot.
func HandleEstimateTotals(app *pocketbase.PocketBase, cat *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing estimate ID")
		}

		_, p, err := loadEstimate(app, cat, id)
		if err != nil {
			log.Printf("estimate_totals: %v", err)
			return e.String(http.StatusNotFound, "Estimate not found")
		}

		return e.JSON(http.StatusOK, p.ComputeTotals())
	}
}

// HandleEstimateRepartition returns the hours per job code, in catalog
// order, with the global contingency and experience scaling applied.
func HandleEstimateRepartition(app *pocketbase.PocketBase, cat *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing estimate ID")
		}

		_, p, err := loadEstimate(app, cat, id)
		if err != nil {
			log.Printf("estimate_repartition: %v", err)
			return e.String(http.StatusNotFound, "Estimate not found")
		}

		return e.JSON(http.StatusOK, p.Repartition(cat))
	}
}
