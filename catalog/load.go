// Package catalog loads the reference dataset (tasks, documents,
// calculations, options, lab items, coefficient and repartition tables)
// from its JSON file into the immutable services.Catalog shared by all
// estimates.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"chiffrage/services"
)

// File mirrors the on-disk catalog schema. Item indices are assigned at
// load time from file order, per kind; the file order is therefore part
// of the catalog's contract with persisted estimates.
type File struct {
	BusinessTypes     []string        `json:"business_types"`
	DAS               []fileDAS       `json:"divisional_sectors"`
	ProductCategories []fileFamily    `json:"product_categories"`
	People            []string        `json:"people"`
	Tasks             []fileTaskCat   `json:"general_tasks"`
	Documents         []fileDocument  `json:"contract_documents"`
	Calculations      []fileCalc      `json:"calculations"`
	Options           []fileOption    `json:"options"`
	LabItems          []fileLabItem   `json:"lab_items"`
	Coefficients      fileCoeffs      `json:"coefficients"`
	CategoryLabels    fileCategories  `json:"category_labels"`
	JobCodes          []fileJobCode   `json:"job_codes"`
	Repartition       fileRepartition `json:"repartition"`
}

type fileDAS struct {
	Name    string   `json:"name"`
	Sectors []string `json:"sectors"`
}

type fileFamily struct {
	Name     string   `json:"name"`
	Products []string `json:"products"`
}

type fileTaskCat struct {
	Name          string        `json:"name"`
	Subcategories []fileTaskSub `json:"subcategories"`
}

type fileTaskSub struct {
	Name  string     `json:"name"`
	Tasks []fileTask `json:"tasks"`
}

type fileTask struct {
	Label          string             `json:"label"`
	BaseHours      map[string]float64 `json:"base_hours"`
	BusinessCoeff  map[string]float64 `json:"business_coeff"`
	SectorCoeff    map[string]float64 `json:"sector_coeff"`
	Multiplicative bool               `json:"multiplicative"`
	Repartition    map[string]float64 `json:"repartition"`
}

type fileDocument struct {
	Label            string   `json:"label"`
	Hours            float64  `json:"hours"`
	ApplicableTo     []string `json:"applicable_to"`
	MandatorySectors []string `json:"mandatory_sectors"`
	OptionPossible   bool     `json:"option_possible"`
}

type fileCalc struct {
	Label     string             `json:"label"`
	Category  string             `json:"category"`
	Hours     map[string]float64 `json:"hours"`
	Selection map[string]string  `json:"selection"`
}

type fileOption struct {
	Label    string  `json:"label"`
	Category string  `json:"category"`
	Hours    float64 `json:"hours"`
}

type fileLabItem struct {
	Label    string  `json:"label"`
	Category string  `json:"category"`
	Hours    float64 `json:"hours"`
}

type fileCoeffs struct {
	DocSector      map[string]float64            `json:"doc_sector"`
	DocBusiness    map[string]float64            `json:"doc_business"`
	CalcCategory   map[string]map[string]float64 `json:"calc_category"`
	OptionCategory map[string]map[string]float64 `json:"option_category"`
}

type fileJobCode struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type fileRepartition struct {
	Calculations map[string]map[string]float64 `json:"calculations"`
	Options      map[string]map[string]float64 `json:"options"`
	Documents    map[string]map[string]float64 `json:"documents"`
	Lab          map[string]map[string]float64 `json:"lab"`
}

type fileCategories struct {
	Calculations map[string]string `json:"calculations"`
	Options      map[string]string `json:"options"`
	Lab          map[string]string `json:"lab"`
}

// Load reads and validates the catalog file at path.
func Load(path string) (*services.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a catalog from raw JSON. A catalog without general tasks
// is rejected: nothing downstream can work without them.
func Parse(data []byte) (*services.Catalog, error) {
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	cat := &services.Catalog{
		BusinessTypes:        file.BusinessTypes,
		People:               file.People,
		DocSectorCoeff:       file.Coefficients.DocSector,
		DocBusinessCoeff:     file.Coefficients.DocBusiness,
		CalcCategoryCoeff:    file.Coefficients.CalcCategory,
		OptionCategoryCoeff:  file.Coefficients.OptionCategory,
		CalcCategoryLabels:   file.CategoryLabels.Calculations,
		OptionCategoryLabels: file.CategoryLabels.Options,
		LabCategoryLabels:    file.CategoryLabels.Lab,
		CalcRepartition:      file.Repartition.Calculations,
		OptionRepartition:    file.Repartition.Options,
		DocRepartition:       file.Repartition.Documents,
		LabRepartition:       file.Repartition.Lab,
	}

	for _, d := range file.DAS {
		cat.DAS = append(cat.DAS, services.DASEntry{Name: d.Name, Sectors: d.Sectors})
	}
	for _, f := range file.ProductCategories {
		cat.ProductCategories = append(cat.ProductCategories, services.ProductFamily{Name: f.Name, Products: f.Products})
	}
	for _, jc := range file.JobCodes {
		cat.JobCodes = append(cat.JobCodes, services.JobCode{Code: jc.Code, Label: jc.Label})
	}

	// Indices are positional per kind, in file order.
	taskIndex := 0
	for _, fc := range file.Tasks {
		tc := services.TaskCategory{Name: fc.Name}
		for _, fs := range fc.Subcategories {
			ts := services.TaskSubcategory{Name: fs.Name}
			for _, ft := range fs.Tasks {
				ts.Tasks = append(ts.Tasks, &services.GeneralTask{
					Index:          taskIndex,
					Label:          ft.Label,
					BaseHours:      ft.BaseHours,
					BusinessCoeff:  ft.BusinessCoeff,
					SectorCoeff:    ft.SectorCoeff,
					Multiplicative: ft.Multiplicative,
					Repartition:    ft.Repartition,
				})
				taskIndex++
			}
			tc.Subcategories = append(tc.Subcategories, ts)
		}
		cat.TaskTree = append(cat.TaskTree, tc)
	}

	for i, fd := range file.Documents {
		cat.Documents = append(cat.Documents, &services.ContractDocument{
			Index:            i,
			Label:            fd.Label,
			Hours:            fd.Hours,
			ApplicableTo:     fd.ApplicableTo,
			MandatorySectors: fd.MandatorySectors,
			OptionPossible:   fd.OptionPossible,
		})
	}
	for i, fc := range file.Calculations {
		cat.Calculations = append(cat.Calculations, &services.Calculation{
			Index:     i,
			Label:     fc.Label,
			Category:  fc.Category,
			Hours:     fc.Hours,
			Selection: fc.Selection,
		})
	}
	for i, fo := range file.Options {
		cat.Options = append(cat.Options, &services.Option{
			Index:    i,
			Label:    fo.Label,
			Category: fo.Category,
			Hours:    fo.Hours,
		})
	}
	for i, fl := range file.LabItems {
		cat.LabItems = append(cat.LabItems, &services.LabItem{
			Index:    i,
			Label:    fl.Label,
			Category: fl.Category,
			Hours:    fl.Hours,
		})
	}

	if taskIndex == 0 {
		return nil, fmt.Errorf("parse catalog: no general tasks defined")
	}

	return cat, nil
}
