package handlers

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"chiffrage/services"
)

// loadEstimate fetches an estimate record and rebuilds its working state
// from the persisted document against the catalog.
func loadEstimate(app *pocketbase.PocketBase, cat *services.Catalog, id string) (*core.Record, *services.Project, error) {
	record, err := app.FindRecordById("estimates", id)
	if err != nil {
		return nil, nil, fmt.Errorf("estimate %s not found: %w", id, err)
	}

	p, err := services.UnmarshalProject(cat, []byte(record.GetString("document")))
	if err != nil {
		return nil, nil, fmt.Errorf("estimate %s: %w", id, err)
	}
	return record, p, nil
}

// storeEstimate persists the estimate back into its record, refreshing the
// denormalized listing columns alongside the document.
func storeEstimate(app *pocketbase.PocketBase, record *core.Record, p *services.Project) error {
	doc, err := services.MarshalProject(p)
	if err != nil {
		return err
	}
	record.Set("reference_number", p.CRMNumber)
	record.Set("client", p.Client)
	record.Set("designation", p.Designation)
	record.Set("sector", p.Sector)
	record.Set("product", p.Product)
	record.Set("revision", p.Revision)
	record.Set("document", string(doc))
	if err := app.Save(record); err != nil {
		return fmt.Errorf("save estimate %s: %w", record.Id, err)
	}
	return nil
}

// estimateScalars is the JSON shape of an estimate's configuration on the
// read side.
type estimateScalars struct {
	ID                    string   `json:"id"`
	ReferenceNumber       string   `json:"reference_number"`
	Client                string   `json:"client"`
	BusinessType          string   `json:"business_type"`
	DivisionalSector      string   `json:"divisional_sector"`
	Sector                string   `json:"sector"`
	ProductCategory       string   `json:"product_category"`
	Product               string   `json:"product"`
	Designation           string   `json:"designation"`
	Quantity              int      `json:"quantity"`
	Revision              string   `json:"revision"`
	Date                  string   `json:"date"`
	Author                string   `json:"author"`
	Validator             string   `json:"validator"`
	Description           string   `json:"description"`
	ContingencyPercent    float64  `json:"contingency_percent"`
	ExperienceCoefficient float64  `json:"experience_coefficient"`
	ExperienceHours       *float64 `json:"experience_hours,omitempty"`
}

func scalarsOf(record *core.Record, p *services.Project) estimateScalars {
	return estimateScalars{
		ID:                    record.Id,
		ReferenceNumber:       p.CRMNumber,
		Client:                p.Client,
		BusinessType:          p.BusinessType,
		DivisionalSector:      p.DAS,
		Sector:                p.Sector,
		ProductCategory:       p.ProductCategory,
		Product:               p.Product,
		Designation:           p.Designation,
		Quantity:              p.Quantity,
		Revision:              p.Revision,
		Date:                  p.Date,
		Author:                p.Author,
		Validator:             p.Validator,
		Description:           p.Description,
		ContingencyPercent:    p.ContingencyPercent,
		ExperienceCoefficient: p.EffectiveRexCoeff(),
		ExperienceHours:       p.ManualRexHours,
	}
}
