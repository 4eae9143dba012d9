package services

// testCatalog builds a compact catalog exercising every item kind, both
// gating modes and all lookup tables.
func testCatalog() *Catalog {
	return &Catalog{
		BusinessTypes: []string{"NEUF", "REMPLACEMENT"},
		DAS: []DASEntry{
			{Name: "NUCLEAIRE", Sectors: []string{"NUCLEAIRE FRANCE"}},
			{Name: "INDUSTRIE", Sectors: []string{"NAVAL"}},
		},
		ProductCategories: []ProductFamily{
			{Name: "ECHANGEURS", Products: []string{"CONDENSEUR"}},
			{Name: "RESERVOIRS", Products: []string{"BACHE ALIMENTAIRE"}},
		},
		TaskTree: []TaskCategory{
			{
				Name: "ETUDES",
				Subcategories: []TaskSubcategory{
					{
						Name: "Conception",
						Tasks: []*GeneralTask{
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
								Multiplicative: true,
								Repartition:    map[string]float64{"BE": 0.5, "DOC": 0.5},
							},
						},
					},
				},
			},
			{
				Name: "GESTION",
				Subcategories: []TaskSubcategory{
					{
						Name: "Projet",
						Tasks: []*GeneralTask{
							{
								Index:       2,
								Label:       "Pilotage d'affaire",
								BaseHours:   map[string]float64{"CONDENSEUR": 8, "BACHE ALIMENTAIRE": 4},
								Repartition: map[string]float64{"PROJ": 1.0},
							},
						},
					},
				},
			},
		},
		Documents: []*ContractDocument{
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
		Calculations: []*Calculation{
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
		Options: []*Option{
			{Index: 0, Label: "Supervision montage", Category: "CHANTIER", Hours: 40},
			{Index: 1, Label: "Formation exploitant", Category: "SERVICES", Hours: 16},
		},
		LabItems: []*LabItem{
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
		JobCodes: []JobCode{
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
			DocGroupMandatory: {"DOC": 0.7, "BE": 0.3},
			DocGroupOptional:  {"DOC": 0.6, "BE": 0.4},
		},
		LabRepartition: map[string]map[string]float64{
			"MECA_LAB": {"ESSAIS": 1.0},
			"CHIMIE":   {"ESSAIS": 0.8, "DOC": 0.2},
		},
	}
}

// testProject returns an estimate against testCatalog in the standard
// configuration with catalog defaults materialized.
//
// Default effective hours for this configuration:
//
//	tasks     15 + 20 + 8    (Etude 10*1.0*1.5, Plans 20, Pilotage 8)
//	documents 15.6           (Plan d'ensemble 12*1.3*1.0; Notice unselected)
//	calcs     30             (sismique mandatory; fatigue unselected)
//	options   0
//	lab       11             (6 + 5)
//	subtotal  99.6
func testProject(cat *Catalog) *Project {
	p := NewProject()
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

func floatPtr(v float64) *float64 { return &v }
