package services

// Item kind identifiers used by the persisted document and the HTTP surface.
const (
	KindGeneralTask      = "general_tasks"
	KindContractDocument = "contract_documents"
	KindOption           = "options"
	KindCalculation      = "calculations"
	KindLabItem          = "lab_items"
)

// Project is the mutable working state of one quotation: its scalar
// configuration, the coefficients resolved for that configuration, and deep
// copies of the catalog items the user can override. A Project is exclusively
// owned by one caller; the engine does no locking.
type Project struct {
	CRMNumber       string
	Client          string
	BusinessType    string
	DAS             string
	Sector          string
	ProductCategory string
	Product         string
	Designation     string
	Quantity        int
	Revision        string
	Date            string // ISO yyyy-MM-dd
	Author          string
	Validator       string
	Description     string

	// Coefficients resolved from the catalog for the current
	// (sector, business type) selection.
	DocSectorCoeff      float64
	DocBusinessCoeff    float64
	CalcCategoryCoeff   map[string]float64
	OptionCategoryCoeff map[string]float64

	// ContingencyPercent is the "divers" inflation, stored as a fraction
	// (0.05 = 5%). RexCoeff is the experience factor; ManualRexHours, when
	// set, is the authoritative final total and RexCoeff is only derived
	// for display.
	ContingencyPercent float64
	RexCoeff           float64
	ManualRexHours     *float64

	Tasks        []TaskCategory
	Documents    []*ContractDocument
	Options      []*Option
	Calculations []*Calculation
	LabItems     []*LabItem
}

// NewProject returns an empty estimate with neutral coefficients and the
// standard defaults (quantity 1, revision A, 5% contingency).
func NewProject() *Project {
	return &Project{
		Quantity:           1,
		Revision:           "A",
		DocSectorCoeff:     1.0,
		DocBusinessCoeff:   1.0,
		ContingencyPercent: 0.05,
		RexCoeff:           1.0,
	}
}

// Context builds the computation context for the current configuration.
func (p *Project) Context() Context {
	return Context{
		Product:             p.Product,
		ProductCategory:     p.ProductCategory,
		BusinessType:        p.BusinessType,
		Sector:              p.Sector,
		DocSectorCoeff:      p.DocSectorCoeff,
		DocBusinessCoeff:    p.DocBusinessCoeff,
		CalcCategoryCoeff:   p.CalcCategoryCoeff,
		OptionCategoryCoeff: p.OptionCategoryCoeff,
	}
}

// ResetToDefaults rebuilds the estimate from the catalog for the current
// (sector, business type, product category) selection: coefficients are
// re-resolved, contingency and experience factor return to their defaults,
// and every collection is replaced by a fresh deep copy. All prior per-item
// overrides are lost. This is the expensive, explicitly destructive
// operation; plain scalar writes never trigger it.
func (p *Project) ResetToDefaults(cat *Catalog) {
	p.DocSectorCoeff = coeffFor(cat.DocSectorCoeff, p.Sector)
	p.DocBusinessCoeff = coeffFor(cat.DocBusinessCoeff, p.BusinessType)
	p.CalcCategoryCoeff = cloneFloatMap(cat.CalcCategoryCoeff[p.BusinessType])
	p.OptionCategoryCoeff = cloneFloatMap(cat.OptionCategoryCoeff[p.BusinessType])

	p.ContingencyPercent = 0.05
	p.RexCoeff = 1.0
	p.ManualRexHours = nil

	ctx := p.Context()

	p.Tasks = cloneTaskTree(cat.TaskTree)

	p.Documents = nil
	for _, d := range cat.Documents {
		if !d.IsApplicable(ctx) {
			continue
		}
		if d.IsMandatory(ctx) || d.OptionPossible {
			p.Documents = append(p.Documents, d.Clone())
		}
	}

	p.Options = nil
	for _, o := range cat.Options {
		p.Options = append(p.Options, o.Clone())
	}

	p.Calculations = nil
	for _, c := range cat.Calculations {
		if c.IsMandatory(ctx) || c.IsSelectable(ctx) {
			p.Calculations = append(p.Calculations, c.Clone())
		}
	}

	p.LabItems = nil
	for _, l := range cat.LabItems {
		p.LabItems = append(p.LabItems, l.Clone())
	}
}

// AllTasks returns the flat list of general tasks in tree order.
func (p *Project) AllTasks() []*GeneralTask {
	var out []*GeneralTask
	for _, cat := range p.Tasks {
		for _, sub := range cat.Subcategories {
			out = append(out, sub.Tasks...)
		}
	}
	return out
}

// TaskByIndex finds a general task by its stable index.
func (p *Project) TaskByIndex(index int) *GeneralTask {
	for _, t := range p.AllTasks() {
		if t.Index == index {
			return t
		}
	}
	return nil
}

// DocumentByIndex finds a contractual document by its stable index.
func (p *Project) DocumentByIndex(index int) *ContractDocument {
	for _, d := range p.Documents {
		if d.Index == index {
			return d
		}
	}
	return nil
}

// OptionByIndex finds an option by its stable index.
func (p *Project) OptionByIndex(index int) *Option {
	for _, o := range p.Options {
		if o.Index == index {
			return o
		}
	}
	return nil
}

// CalculationByIndex finds a calculation by its stable index.
func (p *Project) CalculationByIndex(index int) *Calculation {
	for _, c := range p.Calculations {
		if c.Index == index {
			return c
		}
	}
	return nil
}

// LabItemByIndex finds a lab item by its stable index.
func (p *Project) LabItemByIndex(index int) *LabItem {
	for _, l := range p.LabItems {
		if l.Index == index {
			return l
		}
	}
	return nil
}

// SetManualHours applies a manual-hours override to the item identified by
// kind and stable index. The text is parsed permissively: empty or
// unparseable input clears the override instead of failing. Returns false
// when no such item exists. No totals are recomputed; the caller re-runs the
// pipeline when it wants fresh numbers.
func (p *Project) SetManualHours(kind string, index int, text string) bool {
	hours := ParseManualHours(text)
	switch kind {
	case KindGeneralTask:
		if t := p.TaskByIndex(index); t != nil {
			t.ManualHours = hours
			return true
		}
	case KindContractDocument:
		if d := p.DocumentByIndex(index); d != nil {
			d.ManualHours = hours
			return true
		}
	case KindOption:
		if o := p.OptionByIndex(index); o != nil {
			o.ManualHours = hours
			return true
		}
	case KindCalculation:
		if c := p.CalculationByIndex(index); c != nil {
			c.ManualHours = hours
			return true
		}
	case KindLabItem:
		if l := p.LabItemByIndex(index); l != nil {
			l.ManualHours = hours
			return true
		}
	}
	return false
}

// SetSelected toggles the selection state of a gated item. Returns false for
// unknown items and for kinds that carry no selection state (general tasks
// and lab items are never gated).
func (p *Project) SetSelected(kind string, index int, selected bool) bool {
	switch kind {
	case KindContractDocument:
		if d := p.DocumentByIndex(index); d != nil {
			d.IsSelected = selected
			return true
		}
	case KindOption:
		if o := p.OptionByIndex(index); o != nil {
			o.IsSelected = selected
			return true
		}
	case KindCalculation:
		if c := p.CalculationByIndex(index); c != nil {
			c.IsSelected = selected
			return true
		}
	}
	return false
}
