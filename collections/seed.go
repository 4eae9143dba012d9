package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"chiffrage/services"
)

type seedDef struct {
	reference    string
	client       string
	designation  string
	businessType string
	das          string
	sector       string
	category     string
	product      string
	quantity     int
	date         string
	author       string
	customize    func(p *services.Project)
}

// Seed populates the estimates collection with a few representative
// estimates derived from the catalog. It is safe to call on every startup
// because it returns early if any estimate records already exist.
func Seed(app *pocketbase.PocketBase, cat *services.Catalog) error {
	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		return fmt.Errorf("seed: could not find estimates collection: %w", err)
	}
	existing, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("seed: could not query estimates: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	defs := []seedDef{
		{
			reference:    "CRM-2024-0117",
			client:       "EDF",
			designation:  "Condenseurs tranche 2",
			businessType: "REMPLACEMENT",
			das:          "NUCLEAIRE",
			sector:       "NUCLEAIRE FRANCE",
			category:     "ECHANGEURS",
			product:      "CONDENSEUR",
			quantity:     2,
			date:         "2024-03-12",
			author:       "A. MARTIN",
			customize: func(p *services.Project) {
				p.SetSelected(services.KindOption, 0, true)
			},
		},
		{
			reference:    "CRM-2024-0203",
			client:       "NAVAL GROUP",
			designation:  "Rechauffeurs BP serie",
			businessType: "NEUF",
			das:          "INDUSTRIE",
			sector:       "NAVAL",
			category:     "ECHANGEURS",
			product:      "RECHAUFFEUR BP",
			quantity:     4,
			date:         "2024-05-02",
			author:       "C. DUBOIS",
			customize: func(p *services.Project) {
				p.SetManualHours(services.KindGeneralTask, 0, "30")
			},
		},
		{
			reference:    "CRM-2024-0255",
			client:       "TOTALENERGIES",
			designation:  "Bache alimentaire unite 4",
			businessType: "NEUF",
			das:          "ENERGIE",
			sector:       "THERMIQUE",
			category:     "RESERVOIRS",
			product:      "BACHE ALIMENTAIRE",
			quantity:     1,
			date:         "2024-06-18",
			author:       "J. LEROY",
		},
	}

	for _, def := range defs {
		p := services.NewProject()
		p.CRMNumber = def.reference
		p.Client = def.client
		p.Designation = def.designation
		p.BusinessType = def.businessType
		p.DAS = def.das
		p.Sector = def.sector
		p.ProductCategory = def.category
		p.Product = def.product
		p.Quantity = def.quantity
		p.Date = def.date
		p.Author = def.author
		p.ResetToDefaults(cat)
		if def.customize != nil {
			def.customize(p)
		}

		doc, err := services.MarshalProject(p)
		if err != nil {
			return fmt.Errorf("seed: marshal estimate %s: %w", def.reference, err)
		}

		record := core.NewRecord(col)
		record.Set("reference_number", p.CRMNumber)
		record.Set("client", p.Client)
		record.Set("designation", p.Designation)
		record.Set("sector", p.Sector)
		record.Set("product", p.Product)
		record.Set("revision", p.Revision)
		record.Set("document", string(doc))
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: save estimate %s: %w", def.reference, err)
		}
	}

	log.Printf("seed: inserted %d estimates\n", len(defs))
	return nil
}
