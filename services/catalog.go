package services

// Catalog is the immutable reference dataset every estimate is derived from.
// It is assembled once at startup (see the catalog package) and may be shared
// read-only by any number of estimates; estimates only ever work on deep
// copies of its items.
type Catalog struct {
	BusinessTypes     []string
	DAS               []DASEntry
	ProductCategories []ProductFamily
	People            []string

	TaskTree     []TaskCategory
	Documents    []*ContractDocument
	Calculations []*Calculation
	Options      []*Option
	LabItems     []*LabItem

	// Coefficient lookup tables resolved per estimate configuration.
	DocSectorCoeff      map[string]float64            // sector -> coeff
	DocBusinessCoeff    map[string]float64            // business type -> coeff
	CalcCategoryCoeff   map[string]map[string]float64 // business type -> category -> coeff
	OptionCategoryCoeff map[string]map[string]float64 // business type -> category -> coeff

	// Category code -> display label, per categorized kind.
	CalcCategoryLabels   map[string]string
	OptionCategoryLabels map[string]string
	LabCategoryLabels    map[string]string

	// Job codes in export/display order, and the category-level job-code
	// distribution tables (category -> job code -> fraction). Document
	// distributions are keyed by the two fixed groups DocGroupMandatory and
	// DocGroupOptional.
	JobCodes          []JobCode
	CalcRepartition   map[string]map[string]float64
	OptionRepartition map[string]map[string]float64
	DocRepartition    map[string]map[string]float64
	LabRepartition    map[string]map[string]float64
}

// Document repartition group keys.
const (
	DocGroupMandatory = "mandatory"
	DocGroupOptional  = "optional"
)

// JobCode identifies a scheduling/labor category used by the export.
type JobCode struct {
	Code  string
	Label string
}

// DASEntry groups the sectors belonging to one divisional sector.
type DASEntry struct {
	Name    string
	Sectors []string
}

// ProductFamily groups the products of one product category.
type ProductFamily struct {
	Name     string
	Products []string
}

// TaskCategory is the top level of the general-task tree.
type TaskCategory struct {
	Name          string
	Subcategories []TaskSubcategory
}

// TaskSubcategory holds the tasks of one subcategory, in catalog order.
type TaskSubcategory struct {
	Name  string
	Tasks []*GeneralTask
}

// Sectors returns every sector across all divisional sectors, in order.
func (c *Catalog) Sectors() []string {
	var out []string
	for _, das := range c.DAS {
		out = append(out, das.Sectors...)
	}
	return out
}

// CalcCategoryLabel resolves a calculation category code to its display
// label, falling back to the code itself.
func (c *Catalog) CalcCategoryLabel(code string) string {
	return labelOr(c.CalcCategoryLabels, code)
}

// OptionCategoryLabel resolves an option category code to its display label.
func (c *Catalog) OptionCategoryLabel(code string) string {
	return labelOr(c.OptionCategoryLabels, code)
}

// LabCategoryLabel resolves a lab category code to its display label.
func (c *Catalog) LabCategoryLabel(code string) string {
	return labelOr(c.LabCategoryLabels, code)
}

func labelOr(labels map[string]string, code string) string {
	if l, ok := labels[code]; ok {
		return l
	}
	return code
}

func cloneTaskTree(tree []TaskCategory) []TaskCategory {
	out := make([]TaskCategory, len(tree))
	for i, cat := range tree {
		subs := make([]TaskSubcategory, len(cat.Subcategories))
		for j, sub := range cat.Subcategories {
			tasks := make([]*GeneralTask, len(sub.Tasks))
			for k, t := range sub.Tasks {
				tasks[k] = t.Clone()
			}
			subs[j] = TaskSubcategory{Name: sub.Name, Tasks: tasks}
		}
		out[i] = TaskCategory{Name: cat.Name, Subcategories: subs}
	}
	return out
}
