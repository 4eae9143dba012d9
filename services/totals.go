package services

// Totals is a snapshot of the four-stage pipeline plus the experience
// coefficient actually applied (derived from the manual hours when those are
// the authority).
type Totals struct {
	FirstMachineSubtotal  float64 `json:"first_machine_subtotal"`
	FirstMachineTotal     float64 `json:"first_machine_total"`
	NMachinesTotal        float64 `json:"n_machines_total"`
	TotalFinal            float64 `json:"total_final"`
	ExperienceCoefficient float64 `json:"experience_coefficient"`
}

// FirstMachineSubtotal sums the effective hours of every item in every
// collection for a single machine, before any global scaling.
func (p *Project) FirstMachineSubtotal() float64 {
	ctx := p.Context()
	var sum float64
	for _, t := range p.AllTasks() {
		sum += t.EffectiveHours(ctx)
	}
	for _, d := range p.Documents {
		sum += d.EffectiveHours(ctx)
	}
	for _, o := range p.Options {
		sum += o.EffectiveHours(ctx)
	}
	for _, c := range p.Calculations {
		sum += c.EffectiveHours(ctx)
	}
	for _, l := range p.LabItems {
		sum += l.EffectiveHours(ctx)
	}
	return sum
}

// FirstMachineTotal is the subtotal inflated by the contingency percentage.
func (p *Project) FirstMachineTotal() float64 {
	return p.FirstMachineSubtotal() * (1 + p.ContingencyPercent)
}

// MultiplicativeHours sums the effective hours of the general tasks whose
// workload repeats for each additional machine.
func (p *Project) MultiplicativeHours() float64 {
	ctx := p.Context()
	var sum float64
	for _, t := range p.AllTasks() {
		if t.Multiplicative {
			sum += t.EffectiveHours(ctx)
		}
	}
	return sum
}

// NMachinesTotal extends the first-machine total with the extra-machine
// contribution: only multiplicative tasks repeat, at the tiered coefficient
// for the configured quantity.
func (p *Project) NMachinesTotal() float64 {
	return p.FirstMachineTotal() + p.MultiplicativeHours()*MultiMachineCoeff(p.Quantity)
}

// EffectiveRexCoeff is the experience coefficient actually applied: the
// manual one, or the value derived from directly entered experience hours.
func (p *Project) EffectiveRexCoeff() float64 {
	if p.ManualRexHours == nil {
		return p.RexCoeff
	}
	n := p.NMachinesTotal()
	if n == 0 {
		return p.RexCoeff
	}
	return *p.ManualRexHours / n
}

// TotalFinal is the quoted figure: directly entered experience hours when
// present, otherwise the n-machine total scaled by the experience
// coefficient.
func (p *Project) TotalFinal() float64 {
	if p.ManualRexHours != nil {
		return *p.ManualRexHours
	}
	return p.NMachinesTotal() * p.RexCoeff
}

// ComputeTotals runs the whole pipeline and returns the snapshot. Every
// stage is a pure function of the current item state, so calling this twice
// without an intervening mutation yields identical results.
func (p *Project) ComputeTotals() Totals {
	return Totals{
		FirstMachineSubtotal:  p.FirstMachineSubtotal(),
		FirstMachineTotal:     p.FirstMachineTotal(),
		NMachinesTotal:        p.NMachinesTotal(),
		TotalFinal:            p.TotalFinal(),
		ExperienceCoefficient: p.EffectiveRexCoeff(),
	}
}
