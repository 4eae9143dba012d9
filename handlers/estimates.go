package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"chiffrage/services"
)

// HandleEstimateList returns all estimates, newest first, as listing rows.
func HandleEstimateList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("estimates")
		if err != nil {
			log.Printf("estimate_list: collection: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter(col, "id != ''", "-created", 0, 0, nil)
		if err != nil {
			records = nil
		}

		type listRow struct {
			ID              string `json:"id"`
			ReferenceNumber string `json:"reference_number"`
			Client          string `json:"client"`
			Designation     string `json:"designation"`
			Sector          string `json:"sector"`
			Product         string `json:"product"`
			Revision        string `json:"revision"`
			Updated         string `json:"updated"`
		}
		rows := make([]listRow, 0, len(records))
		for _, r := range records {
			rows = append(rows, listRow{
				ID:              r.Id,
				ReferenceNumber: r.GetString("reference_number"),
				Client:          r.GetString("client"),
				Designation:     r.GetString("designation"),
				Sector:          r.GetString("sector"),
				Product:         r.GetString("product"),
				Revision:        r.GetString("revision"),
				Updated:         r.GetString("updated"),
			})
		}
		return e.JSON(http.StatusOK, rows)
	}
}

// createEstimateRequest is the creation payload: the full scalar
// configuration of a new estimate.
type createEstimateRequest struct {
	ReferenceNumber  string `json:"reference_number"`
	Client           string `json:"client"`
	BusinessType     string `json:"business_type"`
	DivisionalSector string `json:"divisional_sector"`
	Sector           string `json:"sector"`
	ProductCategory  string `json:"product_category"`
	Product          string `json:"product"`
	Designation      string `json:"designation"`
	Quantity         int    `json:"quantity"`
	Date             string `json:"date"`
	Author           string `json:"author"`
	Description      string `json:"description"`
}

// HandleEstimateCreate creates an estimate from its configuration and
// materializes the catalog defaults for it.
func HandleEstimateCreate(app *pocketbase.PocketBase, cat *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req createEstimateRequest
		if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
			return e.String(http.StatusBadRequest, "Invalid JSON body")
		}
		if req.Quantity <= 0 {
			return e.String(http.StatusBadRequest, "Quantity must be at least 1")
		}

		p := services.NewProject()
		p.CRMNumber = req.ReferenceNumber
		p.Client = req.Client
		p.BusinessType = req.BusinessType
		p.DAS = req.DivisionalSector
		p.Sector = req.Sector
		p.ProductCategory = req.ProductCategory
		p.Product = req.Product
		p.Designation = req.Designation
		p.Quantity = req.Quantity
		p.Date = req.Date
		p.Author = req.Author
		p.Description = req.Description
		p.ResetToDefaults(cat)

		col, err := app.FindCollectionByNameOrId("estimates")
		if err != nil {
			log.Printf("estimate_create: collection: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		if err := storeEstimate(app, record, p); err != nil {
			log.Printf("estimate_create: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, scalarsOf(record, p))
	}
}

// HandleEstimateView returns the full state of one estimate: scalars,
// summary tree and totals.
func HandleEstimateView(app *pocketbase.PocketBase, cat *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing estimate ID")
		}

		record, p, err := loadEstimate(app, cat, id)
		if err != nil {
			log.Printf("estimate_view: %v", err)
			return e.String(http.StatusNotFound, "Estimate not found")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"estimate": scalarsOf(record, p),
			"summary":  p.SummaryTree(),
			"totals":   p.ComputeTotals(),
		})
	}
}

// HandleEstimateDelete removes an estimate.
func HandleEstimateDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing estimate ID")
		}

		record, err := app.FindRecordById("estimates", id)
		if err != nil {
			log.Printf("estimate_delete: not found %s: %v", id, err)
			return e.String(http.StatusNotFound, "Estimate not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("estimate_delete: error deleting %s: %v", id, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": id})
	}
}
