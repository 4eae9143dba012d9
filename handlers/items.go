package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"chiffrage/services"
)

// itemUpdateRequest is the per-item mutation payload. ManualHours is free
// text: empty or unparseable input clears the override.
type itemUpdateRequest struct {
	IsSelected  *bool   `json:"is_selected"`
	ManualHours *string `json:"manual_hours"`
}

var itemKinds = map[string]bool{
	services.KindGeneralTask:      true,
	services.KindContractDocument: true,
	services.KindOption:           true,
	services.KindCalculation:      true,
	services.KindLabItem:          true,
}

// HandleItemUpdate mutates one cost item, identified by its kind and stable
// index, and returns the refreshed totals.
func HandleItemUpdate(app *pocketbase.PocketBase, cat *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		kind := e.Request.PathValue("kind")
		if id == "" || kind == "" {
			return e.String(http.StatusBadRequest, "Missing required IDs")
		}
		if !itemKinds[kind] {
			return e.String(http.StatusBadRequest, "Unknown item kind")
		}
		index, err := strconv.Atoi(e.Request.PathValue("index"))
		if err != nil {
			return e.String(http.StatusBadRequest, "Invalid item index")
		}

		var req itemUpdateRequest
		if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
			return e.String(http.StatusBadRequest, "Invalid JSON body")
		}

		record, p, err := loadEstimate(app, cat, id)
		if err != nil {
			log.Printf("item_update: %v", err)
			return e.String(http.StatusNotFound, "Estimate not found")
		}

		if req.IsSelected != nil {
			if !p.SetSelected(kind, index, *req.IsSelected) {
				return e.String(http.StatusNotFound, "Item not found or not selectable")
			}
		}
		if req.ManualHours != nil {
			if !p.SetManualHours(kind, index, *req.ManualHours) {
				return e.String(http.StatusNotFound, "Item not found")
			}
		}

		if err := storeEstimate(app, record, p); err != nil {
			log.Printf("item_update: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"totals": p.ComputeTotals(),
		})
	}
}
