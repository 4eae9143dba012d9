package services

// OptionGroup, CalculationGroup and LabGroup are read-side groupings of the
// categorized collections. Building them never mutates the collections.
type OptionGroup struct {
	Code  string
	Label string
	Items []*Option
}

type CalculationGroup struct {
	Code  string
	Label string
	Items []*Calculation
}

type LabGroup struct {
	Code  string
	Label string
	Items []*LabItem
}

// DocumentGroups is the binary grouping of contractual documents after
// product-category filtering: sector-mandatory ones first, then the
// particular (optionally selectable, not mandatory) ones.
type DocumentGroups struct {
	Mandatory []*ContractDocument
	Optional  []*ContractDocument
}

// OptionsByCategory groups the estimate's options by category code, in first
// appearance order, with labels resolved from the catalog.
func (p *Project) OptionsByCategory(cat *Catalog) []OptionGroup {
	var groups []OptionGroup
	byCode := map[string]int{}
	for _, o := range p.Options {
		i, ok := byCode[o.Category]
		if !ok {
			i = len(groups)
			byCode[o.Category] = i
			groups = append(groups, OptionGroup{Code: o.Category, Label: cat.OptionCategoryLabel(o.Category)})
		}
		groups[i].Items = append(groups[i].Items, o)
	}
	return groups
}

// CalculationsByCategory groups the estimate's calculations by category code.
func (p *Project) CalculationsByCategory(cat *Catalog) []CalculationGroup {
	var groups []CalculationGroup
	byCode := map[string]int{}
	for _, c := range p.Calculations {
		i, ok := byCode[c.Category]
		if !ok {
			i = len(groups)
			byCode[c.Category] = i
			groups = append(groups, CalculationGroup{Code: c.Category, Label: cat.CalcCategoryLabel(c.Category)})
		}
		groups[i].Items = append(groups[i].Items, c)
	}
	return groups
}

// LabItemsByCategory groups the estimate's lab items by category code.
func (p *Project) LabItemsByCategory(cat *Catalog) []LabGroup {
	var groups []LabGroup
	byCode := map[string]int{}
	for _, l := range p.LabItems {
		i, ok := byCode[l.Category]
		if !ok {
			i = len(groups)
			byCode[l.Category] = i
			groups = append(groups, LabGroup{Code: l.Category, Label: cat.LabCategoryLabel(l.Category)})
		}
		groups[i].Items = append(groups[i].Items, l)
	}
	return groups
}

// DocumentsByGroup splits the documents into mandatory vs particular for the
// current configuration. Documents not applicable to the product category are
// excluded entirely.
func (p *Project) DocumentsByGroup() DocumentGroups {
	ctx := p.Context()
	var g DocumentGroups
	for _, d := range p.Documents {
		if !d.IsApplicable(ctx) {
			continue
		}
		if d.IsMandatory(ctx) {
			g.Mandatory = append(g.Mandatory, d)
		} else if d.OptionPossible {
			g.Optional = append(g.Optional, d)
		}
	}
	return g
}

// SummaryNode is one row of the recap tree: a section, category or item with
// its aggregated effective hours.
type SummaryNode struct {
	Label    string        `json:"label"`
	Hours    float64       `json:"hours"`
	Manual   bool          `json:"manual,omitempty"`
	Children []SummaryNode `json:"children,omitempty"`
}

// SummaryTree builds the full recap of the estimate: one section per
// collection, general tasks nested category -> subcategory -> task. Node
// hours are the sum of their children's effective hours.
func (p *Project) SummaryTree() []SummaryNode {
	ctx := p.Context()

	taskSection := SummaryNode{Label: "General tasks"}
	for _, cat := range p.Tasks {
		catNode := SummaryNode{Label: cat.Name}
		for _, sub := range cat.Subcategories {
			subNode := SummaryNode{Label: sub.Name}
			for _, t := range sub.Tasks {
				subNode.Children = append(subNode.Children, itemNode(t, ctx, t.ManualHours))
				subNode.Hours += t.EffectiveHours(ctx)
			}
			catNode.Children = append(catNode.Children, subNode)
			catNode.Hours += subNode.Hours
		}
		taskSection.Children = append(taskSection.Children, catNode)
		taskSection.Hours += catNode.Hours
	}

	sections := []SummaryNode{
		taskSection,
		flatSection("Contractual documents", costItems(p.Documents), ctx),
		flatSection("Options", costItems(p.Options), ctx),
		flatSection("Calculations", costItems(p.Calculations), ctx),
		flatSection("Laboratory", costItems(p.LabItems), ctx),
	}
	return sections
}

func flatSection(label string, items []CostItem, ctx Context) SummaryNode {
	node := SummaryNode{Label: label}
	for _, it := range items {
		child := itemNode(it, ctx, manualOf(it))
		node.Children = append(node.Children, child)
		node.Hours += child.Hours
	}
	return node
}

func itemNode(it CostItem, ctx Context, manual *float64) SummaryNode {
	return SummaryNode{
		Label:  it.ItemLabel(),
		Hours:  it.EffectiveHours(ctx),
		Manual: manual != nil,
	}
}

func manualOf(it CostItem) *float64 {
	switch v := it.(type) {
	case *GeneralTask:
		return v.ManualHours
	case *ContractDocument:
		return v.ManualHours
	case *Option:
		return v.ManualHours
	case *Calculation:
		return v.ManualHours
	case *LabItem:
		return v.ManualHours
	}
	return nil
}

func costItems[T CostItem](items []T) []CostItem {
	out := make([]CostItem, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
