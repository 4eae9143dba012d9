package services

// JobHours is one row of the repartition result, in catalog job-code order.
type JobHours struct {
	Code  string  `json:"code"`
	Label string  `json:"label"`
	Hours float64 `json:"hours"`
}

// Repartition distributes the estimate's effective hours over the catalog's
// job codes.
//
// General tasks distribute individually through their own job-code table.
// The four categorized collections distribute through the catalog's
// per-category tables, applied to each category's summed hours (documents
// through their two fixed groups). A category or job code missing from a
// table simply contributes nothing, and fractions are taken as-is: no
// normalization.
//
// The contingency and experience scaling is applied once, globally, at the
// end, as a uniform inflation of the already-computed distribution.
func (p *Project) Repartition(cat *Catalog) []JobHours {
	ctx := p.Context()
	totals := make(map[string]float64, len(cat.JobCodes))

	for _, t := range p.AllTasks() {
		h := t.EffectiveHours(ctx)
		if h == 0 || len(t.Repartition) == 0 {
			continue
		}
		for code, frac := range t.Repartition {
			totals[code] += h * frac
		}
	}

	distribute(totals, p.calcHoursByCategory(ctx), cat.CalcRepartition)
	distribute(totals, p.optionHoursByCategory(ctx), cat.OptionRepartition)
	distribute(totals, p.docHoursByGroup(), cat.DocRepartition)
	distribute(totals, p.labHoursByCategory(ctx), cat.LabRepartition)

	scale := (1 + p.ContingencyPercent) * p.EffectiveRexCoeff()
	out := make([]JobHours, 0, len(cat.JobCodes))
	for _, jc := range cat.JobCodes {
		out = append(out, JobHours{Code: jc.Code, Label: jc.Label, Hours: totals[jc.Code] * scale})
	}
	return out
}

// distribute spreads each category's summed hours over the job codes of its
// distribution table.
func distribute(totals map[string]float64, sums map[string]float64, tables map[string]map[string]float64) {
	for category, sum := range sums {
		for code, frac := range tables[category] {
			totals[code] += sum * frac
		}
	}
}

func (p *Project) calcHoursByCategory(ctx Context) map[string]float64 {
	sums := map[string]float64{}
	for _, c := range p.Calculations {
		sums[c.Category] += c.EffectiveHours(ctx)
	}
	return sums
}

func (p *Project) optionHoursByCategory(ctx Context) map[string]float64 {
	sums := map[string]float64{}
	for _, o := range p.Options {
		sums[o.Category] += o.EffectiveHours(ctx)
	}
	return sums
}

func (p *Project) labHoursByCategory(ctx Context) map[string]float64 {
	sums := map[string]float64{}
	for _, l := range p.LabItems {
		sums[l.Category] += l.EffectiveHours(ctx)
	}
	return sums
}

func (p *Project) docHoursByGroup() map[string]float64 {
	ctx := p.Context()
	groups := p.DocumentsByGroup()
	sums := map[string]float64{}
	for _, d := range groups.Mandatory {
		sums[DocGroupMandatory] += d.EffectiveHours(ctx)
	}
	for _, d := range groups.Optional {
		sums[DocGroupOptional] += d.EffectiveHours(ctx)
	}
	return sums
}
