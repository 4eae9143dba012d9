package services

import (
	"math"
	"testing"
)

func TestRepartition(t *testing.T) {
	cat := testCatalog()
	p := testProject(cat)

	rows := p.Repartition(cat)

	t.Run("rows follow catalog job-code order", func(t *testing.T) {
		if len(rows) != len(cat.JobCodes) {
			t.Fatalf("got %d rows, want %d", len(rows), len(cat.JobCodes))
		}
		for i, jc := range cat.JobCodes {
			if rows[i].Code != jc.Code {
				t.Errorf("row %d code = %q, want %q", i, rows[i].Code, jc.Code)
			}
		}
	})

	t.Run("per-code distribution", func(t *testing.T) {
		// Unscaled: tasks put 15 + 10 on BE, 10 on DOC, 8 on PROJ; the
		// mandatory document group splits 15.6 as 70/30 DOC/BE; the MECA
		// calculation splits 30 as 80/20 CALC/BE; lab puts 6 + 4 on
		// ESSAIS and 1 on DOC. Global scale 1.05.
		want := map[string]float64{
			"PROJ":   8 * 1.05,
			"BE":     35.68 * 1.05,
			"CALC":   24 * 1.05,
			"DOC":    21.92 * 1.05,
			"ESSAIS": 10 * 1.05,
		}
		for _, row := range rows {
			if math.Abs(row.Hours-want[row.Code]) > 0.001 {
				t.Errorf("%s = %v, want %v", row.Code, row.Hours, want[row.Code])
			}
		}
	})

	t.Run("conservation", func(t *testing.T) {
		// Every distribution table in the fixture sums to 1, so the rows
		// must sum to the contingency-and-experience scaled subtotal.
		var sum float64
		for _, row := range rows {
			sum += row.Hours
		}
		want := p.FirstMachineSubtotal() * (1 + p.ContingencyPercent) * p.EffectiveRexCoeff()
		if math.Abs(sum-want) > 0.001 {
			t.Errorf("sum = %v, want %v", sum, want)
		}
	})
}

func TestRepartitionScaling(t *testing.T) {
	cat := testCatalog()

	t.Run("experience coefficient scales uniformly", func(t *testing.T) {
		p := testProject(cat)
		base := p.Repartition(cat)
		p.RexCoeff = 0.8
		scaled := p.Repartition(cat)
		for i := range base {
			if math.Abs(scaled[i].Hours-base[i].Hours*0.8) > 0.001 {
				t.Errorf("%s = %v, want %v", scaled[i].Code, scaled[i].Hours, base[i].Hours*0.8)
			}
		}
	})

	t.Run("manual experience hours drive the scale", func(t *testing.T) {
		p := testProject(cat)
		p.ManualRexHours = floatPtr(120)
		rows := p.Repartition(cat)
		var sum float64
		for _, row := range rows {
			sum += row.Hours
		}
		want := p.FirstMachineSubtotal() * (1 + p.ContingencyPercent) * p.EffectiveRexCoeff()
		if math.Abs(sum-want) > 0.001 {
			t.Errorf("sum = %v, want %v", sum, want)
		}
	})
}

func TestRepartitionMissingTables(t *testing.T) {
	cat := testCatalog()
	// Strip the calculation table: the MECA hours must silently vanish
	// instead of erroring or being re-normalized.
	cat.CalcRepartition = map[string]map[string]float64{}
	p := testProject(cat)

	rows := p.Repartition(cat)
	var sum float64
	for _, row := range rows {
		sum += row.Hours
	}
	want := (p.FirstMachineSubtotal() - 30.0) * (1 + p.ContingencyPercent)
	if math.Abs(sum-want) > 0.001 {
		t.Errorf("sum = %v, want %v (calculation hours dropped)", sum, want)
	}
}
