package services

import (
	"encoding/json"
	"fmt"
)

// ProjectFileVersion tags the current persisted-document schema.
const ProjectFileVersion = 1

// ProjectFile is the persisted form of an estimate: the scalar configuration
// plus a sparse diff of per-item overrides. Items left at their catalog
// defaults are omitted entirely.
type ProjectFile struct {
	Version       int             `json:"version"`
	Project       *ProjectScalars `json:"project"`
	Modifications *Modifications  `json:"modifications"`
}

// ProjectScalars are the estimate's scalar fields.
type ProjectScalars struct {
	ReferenceNumber       string  `json:"reference_number"`
	Client                string  `json:"client"`
	BusinessType          string  `json:"business_type"`
	DivisionalSector      string  `json:"divisional_sector"`
	Sector                string  `json:"sector"`
	ProductCategory       string  `json:"product_category"`
	Product               string  `json:"product"`
	Designation           string  `json:"designation"`
	Quantity              int     `json:"quantity"`
	Revision              string  `json:"revision"`
	Date                  string  `json:"date"`
	Author                string  `json:"author"`
	Validator             string  `json:"validator"`
	Description           string  `json:"description"`
	ContingencyPercent    float64 `json:"contingency_percent"`
	ExperienceCoefficient float64 `json:"experience_coefficient"`
}

// ItemDelta is one overridden item, keyed by its stable index. Only fields
// that differ from the catalog default are carried.
type ItemDelta struct {
	Index       int      `json:"index"`
	IsSelected  *bool    `json:"is_selected,omitempty"`
	ManualHours *float64 `json:"manual_hours,omitempty"`
}

// Modifications holds the override deltas per collection. General tasks and
// lab items never carry is_selected; they are not gated.
type Modifications struct {
	GeneralTasks      []ItemDelta `json:"general_tasks,omitempty"`
	ContractDocuments []ItemDelta `json:"contract_documents,omitempty"`
	Options           []ItemDelta `json:"options,omitempty"`
	Calculations      []ItemDelta `json:"calculations,omitempty"`
	LabItems          []ItemDelta `json:"lab_items,omitempty"`
}

// SaveProject captures the estimate as a persistable document. The stored
// experience coefficient is the effective one, so an estimate whose final
// total came from directly entered hours reproduces that total on load.
func SaveProject(p *Project) *ProjectFile {
	scalars := &ProjectScalars{
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
	}

	mods := &Modifications{}
	for _, t := range p.AllTasks() {
		if t.ManualHours != nil {
			mods.GeneralTasks = append(mods.GeneralTasks, ItemDelta{Index: t.Index, ManualHours: cloneFloatPtr(t.ManualHours)})
		}
	}
	for _, d := range p.Documents {
		if delta, ok := gatedDelta(d.Index, d.IsSelected, d.ManualHours); ok {
			mods.ContractDocuments = append(mods.ContractDocuments, delta)
		}
	}
	for _, o := range p.Options {
		if delta, ok := gatedDelta(o.Index, o.IsSelected, o.ManualHours); ok {
			mods.Options = append(mods.Options, delta)
		}
	}
	for _, c := range p.Calculations {
		if delta, ok := gatedDelta(c.Index, c.IsSelected, c.ManualHours); ok {
			mods.Calculations = append(mods.Calculations, delta)
		}
	}
	for _, l := range p.LabItems {
		if l.ManualHours != nil {
			mods.LabItems = append(mods.LabItems, ItemDelta{Index: l.Index, ManualHours: cloneFloatPtr(l.ManualHours)})
		}
	}

	return &ProjectFile{
		Version:       ProjectFileVersion,
		Project:       scalars,
		Modifications: mods,
	}
}

// gatedDelta builds the delta for a gated item; catalog default is
// unselected with no override, so anything else is a diff.
func gatedDelta(index int, selected bool, manual *float64) (ItemDelta, bool) {
	if !selected && manual == nil {
		return ItemDelta{}, false
	}
	delta := ItemDelta{Index: index, ManualHours: cloneFloatPtr(manual)}
	if selected {
		sel := true
		delta.IsSelected = &sel
	}
	return delta, true
}

// LoadProject rebuilds an estimate from a persisted document against the
// current catalog: scalars first, then a full catalog reset using the
// restored configuration, then the persisted contingency/experience values
// (the reset clears them), then the override deltas. Deltas referencing
// items no longer in the catalog-derived collections are skipped silently.
// A document missing its project or modifications block is treated as empty.
func LoadProject(cat *Catalog, file *ProjectFile) *Project {
	p := NewProject()
	if file == nil {
		p.ResetToDefaults(cat)
		return p
	}

	if s := file.Project; s != nil {
		p.CRMNumber = s.ReferenceNumber
		p.Client = s.Client
		p.BusinessType = s.BusinessType
		p.DAS = s.DivisionalSector
		p.Sector = s.Sector
		p.ProductCategory = s.ProductCategory
		p.Product = s.Product
		p.Designation = s.Designation
		p.Quantity = s.Quantity
		if p.Quantity < 1 {
			p.Quantity = 1
		}
		p.Revision = s.Revision
		if p.Revision == "" {
			p.Revision = "A"
		}
		p.Date = s.Date
		p.Author = s.Author
		p.Validator = s.Validator
		p.Description = s.Description
	}

	p.ResetToDefaults(cat)

	if s := file.Project; s != nil {
		p.ContingencyPercent = s.ContingencyPercent
		p.RexCoeff = s.ExperienceCoefficient
		p.ManualRexHours = nil
	}

	if m := file.Modifications; m != nil {
		applyDeltas(m.GeneralTasks, func(d ItemDelta) bool {
			t := p.TaskByIndex(d.Index)
			if t == nil {
				return false
			}
			t.ManualHours = cloneFloatPtr(d.ManualHours)
			return true
		})
		applyDeltas(m.ContractDocuments, func(d ItemDelta) bool {
			doc := p.DocumentByIndex(d.Index)
			if doc == nil {
				return false
			}
			if d.IsSelected != nil {
				doc.IsSelected = *d.IsSelected
			}
			doc.ManualHours = cloneFloatPtr(d.ManualHours)
			return true
		})
		applyDeltas(m.Options, func(d ItemDelta) bool {
			o := p.OptionByIndex(d.Index)
			if o == nil {
				return false
			}
			if d.IsSelected != nil {
				o.IsSelected = *d.IsSelected
			}
			o.ManualHours = cloneFloatPtr(d.ManualHours)
			return true
		})
		applyDeltas(m.Calculations, func(d ItemDelta) bool {
			c := p.CalculationByIndex(d.Index)
			if c == nil {
				return false
			}
			if d.IsSelected != nil {
				c.IsSelected = *d.IsSelected
			}
			c.ManualHours = cloneFloatPtr(d.ManualHours)
			return true
		})
		applyDeltas(m.LabItems, func(d ItemDelta) bool {
			l := p.LabItemByIndex(d.Index)
			if l == nil {
				return false
			}
			l.ManualHours = cloneFloatPtr(d.ManualHours)
			return true
		})
	}

	return p
}

func applyDeltas(deltas []ItemDelta, apply func(ItemDelta) bool) {
	for _, d := range deltas {
		apply(d)
	}
}

// MarshalProject serializes the estimate to its persisted JSON document.
func MarshalProject(p *Project) ([]byte, error) {
	data, err := json.Marshal(SaveProject(p))
	if err != nil {
		return nil, fmt.Errorf("marshal project document: %w", err)
	}
	return data, nil
}

// UnmarshalProject rebuilds an estimate from persisted JSON. Syntactically
// invalid JSON is an error; structurally incomplete documents degrade to
// defaults per LoadProject.
func UnmarshalProject(cat *Catalog, data []byte) (*Project, error) {
	var file ProjectFile
	if len(data) > 0 {
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("unmarshal project document: %w", err)
		}
	}
	return LoadProject(cat, &file), nil
}
