// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"chiffrage/collections"
	"chiffrage/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// TestCatalog builds a small in-memory catalog exercising every item kind,
// both gating modes and all lookup tables.
func TestCatalog() *services.Catalog {
	return &services.Catalog{
		BusinessTypes: []string{"NEUF", "REMPLACEMENT"},
		DAS: []services.DASEntry{
			{Name: "NUCLEAIRE", Sectors: []string{"NUCLEAIRE FRANCE"}},
			{Name: "INDUSTRIE", Sectors: []string{"NAVAL"}},
		},
		ProductCategories: []services.ProductFamily{
			{Name: "ECHANGEURS", Products: []string{"CONDENSEUR", "RECHAUFFEUR BP"}},
			{Name: "RESERVOIRS", Products: []string{"BACHE ALIMENTAIRE"}},
		},
		People: []string{"A. MARTIN", "C. DUBOIS"},
		TaskTree: []services.TaskCategory{
			{
				Name: "ETUDES",
				Subcategories: []services.TaskSubcategory{
					{
						Name: "Conception",
						Tasks: []*services.GeneralTask{
							{
								Index:         0,
								Label:         "Etude d'implantation",
								BaseHours:     map[string]float64{"CONDENSEUR": 10, "BACHE ALIMENTAIRE": 6},
								BusinessCoeff: map[string]float64{"NEUF": 1.0, "REMPLACEMENT": 1.2},
								SectorCoeff:   map[string]float64{"NUCLEAIRE FRANCE": 1.5},
								Repartition:   map[string]float64{"BE": 1.0},
							},
							{
								Index:          1,
								Label:          "Plans de fabrication",
								BaseHours:      map[string]float64{"CONDENSEUR": 20, "BACHE ALIMENTAIRE": 12},
								BusinessCoeff:  map[string]float64{"NEUF": 1.0},
								SectorCoeff:    map[string]float64{},
								Multiplicative: true,
								Repartition:    map[string]float64{"BE": 0.5, "DOC": 0.5},
							},
						},
					},
				},
			},
			{
				Name: "GESTION",
				Subcategories: []services.TaskSubcategory{
					{
						Name: "Projet",
						Tasks: []*services.GeneralTask{
							{
								Index:         2,
								Label:         "Pilotage d'affaire",
								BaseHours:     map[string]float64{"CONDENSEUR": 8, "BACHE ALIMENTAIRE": 4},
								BusinessCoeff: map[string]float64{"NEUF": 1.0},
								SectorCoeff:   map[string]float64{},
								Repartition:   map[string]float64{"PROJ": 1.0},
							},
						},
					},
				},
			},
		},
		Documents: []*services.ContractDocument{
			{
				Index:            0,
				Label:            "Plan d'ensemble contractuel",
				Hours:            12,
				ApplicableTo:     []string{"ECHANGEURS", "RESERVOIRS"},
				MandatorySectors: []string{"NUCLEAIRE FRANCE", "NAVAL"},
			},
			{
				Index:          1,
				Label:          "Notice d'exploitation",
				Hours:          10,
				ApplicableTo:   []string{"ECHANGEURS"},
				OptionPossible: true,
			},
			{
				Index:            2,
				Label:            "Dossier reservoir",
				Hours:            8,
				ApplicableTo:     []string{"RESERVOIRS"},
				MandatorySectors: []string{"NUCLEAIRE FRANCE"},
			},
		},
		Calculations: []*services.Calculation{
			{
				Index:     0,
				Label:     "Calcul de tenue sismique",
				Category:  "MECA",
				Hours:     map[string]float64{"ECHANGEURS": 30, "RESERVOIRS": 20},
				Selection: map[string]string{"ECHANGEURS": "Oui", "RESERVOIRS": "Choix"},
			},
			{
				Index:     1,
				Label:     "Calcul de fatigue",
				Category:  "MECA",
				Hours:     map[string]float64{"ECHANGEURS": 15},
				Selection: map[string]string{"ECHANGEURS": "Choix", "RESERVOIRS": "Non"},
			},
		},
		Options: []*services.Option{
			{Index: 0, Label: "Supervision montage", Category: "CHANTIER", Hours: 40},
			{Index: 1, Label: "Formation exploitant", Category: "SERVICES", Hours: 16},
		},
		LabItems: []*services.LabItem{
			{Index: 0, Label: "Essai de traction", Category: "MECA_LAB", Hours: 6},
			{Index: 1, Label: "Analyse chimique", Category: "CHIMIE", Hours: 5},
		},
		DocSectorCoeff:   map[string]float64{"NUCLEAIRE FRANCE": 1.3, "NAVAL": 1.1},
		DocBusinessCoeff: map[string]float64{"NEUF": 1.0, "REMPLACEMENT": 0.8},
		CalcCategoryCoeff: map[string]map[string]float64{
			"NEUF":         {"MECA": 1.0},
			"REMPLACEMENT": {"MECA": 0.9},
		},
		OptionCategoryCoeff: map[string]map[string]float64{
			"NEUF":         {"CHANTIER": 1.0, "SERVICES": 1.0},
			"REMPLACEMENT": {"CHANTIER": 1.2, "SERVICES": 1.0},
		},
		CalcCategoryLabels:   map[string]string{"MECA": "Calculs mecaniques"},
		OptionCategoryLabels: map[string]string{"CHANTIER": "Chantier", "SERVICES": "Services"},
		LabCategoryLabels:    map[string]string{"MECA_LAB": "Essais mecaniques", "CHIMIE": "Chimie"},
		JobCodes: []services.JobCode{
			{Code: "PROJ", Label: "Gestion de projet"},
			{Code: "BE", Label: "Bureau d'etudes"},
			{Code: "CALC", Label: "Calculs"},
			{Code: "DOC", Label: "Documentation"},
			{Code: "ESSAIS", Label: "Essais laboratoire"},
		},
		CalcRepartition: map[string]map[string]float64{
			"MECA": {"CALC": 0.8, "BE": 0.2},
		},
		OptionRepartition: map[string]map[string]float64{
			"CHANTIER": {"PROJ": 0.5, "BE": 0.5},
			"SERVICES": {"PROJ": 0.3, "DOC": 0.7},
		},
		DocRepartition: map[string]map[string]float64{
			services.DocGroupMandatory: {"DOC": 0.7, "BE": 0.3},
			services.DocGroupOptional:  {"DOC": 0.6, "BE": 0.4},
		},
		LabRepartition: map[string]map[string]float64{
			"MECA_LAB": {"ESSAIS": 1.0},
			"CHIMIE":   {"ESSAIS": 0.8, "DOC": 0.2},
		},
	}
}

// TestProject builds an estimate configured against TestCatalog with
// catalog defaults applied.
func TestProject(cat *services.Catalog) *services.Project {
	p := services.NewProject()
	p.CRMNumber = "CRM-TEST-0001"
	p.Client = "EDF"
	p.Designation = "Condenseur test"
	p.BusinessType = "NEUF"
	p.DAS = "NUCLEAIRE"
	p.Sector = "NUCLEAIRE FRANCE"
	p.ProductCategory = "ECHANGEURS"
	p.Product = "CONDENSEUR"
	p.Date = "2024-01-15"
	p.Author = "A. MARTIN"
	p.ResetToDefaults(cat)
	return p
}

// CreateTestEstimate saves an estimate record holding the project's
// persisted document and returns it.
func CreateTestEstimate(t *testing.T, app *pocketbase.PocketBase, p *services.Project) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		t.Fatalf("failed to find estimates collection: %v", err)
	}

	doc, err := services.MarshalProject(p)
	if err != nil {
		t.Fatalf("failed to marshal test estimate: %v", err)
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
		t.Fatalf("failed to save test estimate: %v", err)
	}

	return record
}
