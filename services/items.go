package services

// Selection modes of a calculation for a given product category.
const (
	SelectionMandatory   = "Oui"
	SelectionOptional    = "Choix"
	SelectionUnavailable = "Non"
)

// CostItem is the uniform hours contract shared by all five item kinds.
//
// DefaultHours is the catalog-derived value for the given context and never
// consults the manual override. EffectiveHours applies gating, coefficients
// and the manual override; it is the value every aggregation consumes.
type CostItem interface {
	ItemIndex() int
	ItemLabel() string
	DefaultHours(ctx Context) float64
	EffectiveHours(ctx Context) float64
}

// GeneralTask is an engineering task with per-product base hours scaled by
// business-type and sector coefficients. Tasks are never gated: a manual
// override is always honored. Multiplicative tasks additionally feed the
// extra-machine contribution of the totals pipeline.
type GeneralTask struct {
	Index int
	Label string

	BaseHours     map[string]float64 // product -> hours
	BusinessCoeff map[string]float64 // business type -> coefficient
	SectorCoeff   map[string]float64 // sector -> coefficient

	Multiplicative bool
	Repartition    map[string]float64 // job code -> fraction of this task's hours

	ManualHours *float64
}

func (t *GeneralTask) ItemIndex() int    { return t.Index }
func (t *GeneralTask) ItemLabel() string { return t.Label }

func (t *GeneralTask) DefaultHours(ctx Context) float64 {
	base := hoursFor(t.BaseHours, ctx.Product)
	return base * coeffFor(t.BusinessCoeff, ctx.BusinessType) * coeffFor(t.SectorCoeff, ctx.Sector)
}

func (t *GeneralTask) EffectiveHours(ctx Context) float64 {
	if t.ManualHours != nil {
		return *t.ManualHours
	}
	return t.DefaultHours(ctx)
}

// Clone returns an independent copy, including the override state.
func (t *GeneralTask) Clone() *GeneralTask {
	c := *t
	c.BaseHours = cloneFloatMap(t.BaseHours)
	c.BusinessCoeff = cloneFloatMap(t.BusinessCoeff)
	c.SectorCoeff = cloneFloatMap(t.SectorCoeff)
	c.Repartition = cloneFloatMap(t.Repartition)
	c.ManualHours = cloneFloatPtr(t.ManualHours)
	return &c
}

// ContractDocument is a contractual deliverable (plans, dossiers, notes).
// It only counts when applicable to the product category and either mandatory
// for the sector or explicitly selected where selection is possible.
type ContractDocument struct {
	Index int
	Label string
	Hours float64

	ApplicableTo     []string // product categories
	MandatorySectors []string
	OptionPossible   bool

	IsSelected  bool
	ManualHours *float64
}

func (d *ContractDocument) ItemIndex() int    { return d.Index }
func (d *ContractDocument) ItemLabel() string { return d.Label }

// IsApplicable reports whether the document exists at all for the context's
// product category.
func (d *ContractDocument) IsApplicable(ctx Context) bool {
	return containsString(d.ApplicableTo, ctx.ProductCategory)
}

// IsMandatory reports whether the document is imposed by the sector.
func (d *ContractDocument) IsMandatory(ctx Context) bool {
	return d.IsApplicable(ctx) && containsString(d.MandatorySectors, ctx.Sector)
}

// IsActive reports whether the document contributes hours: mandatory, or
// optionally selectable and actually selected.
func (d *ContractDocument) IsActive(ctx Context) bool {
	if !d.IsApplicable(ctx) {
		return false
	}
	if containsString(d.MandatorySectors, ctx.Sector) {
		return true
	}
	return d.OptionPossible && d.IsSelected
}

func (d *ContractDocument) DefaultHours(Context) float64 { return d.Hours }

func (d *ContractDocument) EffectiveHours(ctx Context) float64 {
	if !d.IsActive(ctx) {
		return 0.0
	}
	if d.ManualHours != nil {
		return *d.ManualHours
	}
	return d.Hours * ctx.DocSectorCoeff * ctx.DocBusinessCoeff
}

func (d *ContractDocument) Clone() *ContractDocument {
	c := *d
	c.ApplicableTo = append([]string(nil), d.ApplicableTo...)
	c.MandatorySectors = append([]string(nil), d.MandatorySectors...)
	c.ManualHours = cloneFloatPtr(d.ManualHours)
	return &c
}

// Calculation is a dimensioning study whose availability depends on the
// product category: mandatory ("Oui"), user-selectable ("Choix") or not
// offered ("Non").
type Calculation struct {
	Index    int
	Label    string
	Category string

	Hours     map[string]float64 // product category -> hours
	Selection map[string]string  // product category -> selection mode

	IsSelected  bool
	ManualHours *float64
}

func (c *Calculation) ItemIndex() int    { return c.Index }
func (c *Calculation) ItemLabel() string { return c.Label }

func (c *Calculation) IsMandatory(ctx Context) bool {
	return c.Selection[ctx.ProductCategory] == SelectionMandatory
}

func (c *Calculation) IsSelectable(ctx Context) bool {
	return c.Selection[ctx.ProductCategory] == SelectionOptional
}

func (c *Calculation) IsActive(ctx Context) bool {
	return c.IsMandatory(ctx) || (c.IsSelectable(ctx) && c.IsSelected)
}

func (c *Calculation) DefaultHours(ctx Context) float64 {
	return hoursFor(c.Hours, ctx.ProductCategory)
}

func (c *Calculation) EffectiveHours(ctx Context) float64 {
	if !c.IsActive(ctx) {
		return 0.0
	}
	if c.ManualHours != nil {
		return *c.ManualHours
	}
	return c.DefaultHours(ctx) * coeffFor(ctx.CalcCategoryCoeff, c.Category)
}

func (c *Calculation) Clone() *Calculation {
	cc := *c
	cc.Hours = cloneFloatMap(c.Hours)
	cc.Selection = cloneStringMap(c.Selection)
	cc.ManualHours = cloneFloatPtr(c.ManualHours)
	return &cc
}

// Option is an optional extra, zero unless selected.
type Option struct {
	Index    int
	Label    string
	Category string
	Hours    float64

	IsSelected  bool
	ManualHours *float64
}

func (o *Option) ItemIndex() int    { return o.Index }
func (o *Option) ItemLabel() string { return o.Label }

func (o *Option) DefaultHours(Context) float64 { return o.Hours }

func (o *Option) EffectiveHours(ctx Context) float64 {
	if !o.IsSelected {
		return 0.0
	}
	if o.ManualHours != nil {
		return *o.ManualHours
	}
	return o.Hours * coeffFor(ctx.OptionCategoryCoeff, o.Category)
}

func (o *Option) Clone() *Option {
	c := *o
	c.ManualHours = cloneFloatPtr(o.ManualHours)
	return &c
}

// LabItem is laboratory work, always counted; only the manual override
// applies.
type LabItem struct {
	Index    int
	Label    string
	Category string
	Hours    float64

	ManualHours *float64
}

func (l *LabItem) ItemIndex() int    { return l.Index }
func (l *LabItem) ItemLabel() string { return l.Label }

func (l *LabItem) DefaultHours(Context) float64 { return l.Hours }

func (l *LabItem) EffectiveHours(Context) float64 {
	if l.ManualHours != nil {
		return *l.ManualHours
	}
	return l.Hours
}

func (l *LabItem) Clone() *LabItem {
	c := *l
	c.ManualHours = cloneFloatPtr(l.ManualHours)
	return &c
}

func cloneFloatMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	c := make(map[string]float64, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func cloneFloatPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func containsString(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}
