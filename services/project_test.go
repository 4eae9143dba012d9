package services

import (
	"math"
	"testing"
)

func TestNewProjectDefaults(t *testing.T) {
	p := NewProject()
	if p.Quantity != 1 {
		t.Errorf("Quantity = %d, want 1", p.Quantity)
	}
	if p.Revision != "A" {
		t.Errorf("Revision = %q, want A", p.Revision)
	}
	if math.Abs(p.ContingencyPercent-0.05) > 0.001 {
		t.Errorf("ContingencyPercent = %v, want 0.05", p.ContingencyPercent)
	}
	if math.Abs(p.RexCoeff-1.0) > 0.001 {
		t.Errorf("RexCoeff = %v, want 1.0", p.RexCoeff)
	}
}

func TestResetToDefaults(t *testing.T) {
	cat := testCatalog()

	t.Run("resolves coefficients for the configuration", func(t *testing.T) {
		p := testProject(cat)
		if math.Abs(p.DocSectorCoeff-1.3) > 0.001 {
			t.Errorf("DocSectorCoeff = %v, want 1.3", p.DocSectorCoeff)
		}
		if math.Abs(p.DocBusinessCoeff-1.0) > 0.001 {
			t.Errorf("DocBusinessCoeff = %v, want 1.0", p.DocBusinessCoeff)
		}
	})

	t.Run("filters documents by applicability", func(t *testing.T) {
		p := testProject(cat)
		// The reservoir-only document must not appear for ECHANGEURS.
		if p.DocumentByIndex(2) != nil {
			t.Error("reservoir document leaked into an exchanger estimate")
		}
		if p.DocumentByIndex(0) == nil || p.DocumentByIndex(1) == nil {
			t.Error("applicable documents missing")
		}
	})

	t.Run("filters calculations by selection mode", func(t *testing.T) {
		p := testProject(cat)
		p.ProductCategory = "RESERVOIRS"
		p.Product = "BACHE ALIMENTAIRE"
		p.ResetToDefaults(cat)
		// "Calcul de fatigue" is Non for RESERVOIRS.
		if p.CalculationByIndex(1) != nil {
			t.Error("unavailable calculation kept after reset")
		}
		if p.CalculationByIndex(0) == nil {
			t.Error("selectable calculation dropped")
		}
	})

	t.Run("discards overrides and restores global defaults", func(t *testing.T) {
		p := testProject(cat)
		p.SetManualHours(KindGeneralTask, 0, "99")
		p.SetSelected(KindOption, 0, true)
		p.ContingencyPercent = 0.2
		p.RexCoeff = 0.7
		p.ManualRexHours = floatPtr(500)

		p.ResetToDefaults(cat)

		if p.TaskByIndex(0).ManualHours != nil {
			t.Error("task override survived the reset")
		}
		if p.OptionByIndex(0).IsSelected {
			t.Error("option selection survived the reset")
		}
		if math.Abs(p.ContingencyPercent-0.05) > 0.001 || math.Abs(p.RexCoeff-1.0) > 0.001 || p.ManualRexHours != nil {
			t.Error("global factors not restored to defaults")
		}
	})

	t.Run("items are deep copies of the catalog", func(t *testing.T) {
		p := testProject(cat)
		p.TaskByIndex(0).BaseHours["CONDENSEUR"] = 999
		p.DocumentByIndex(0).Hours = 999
		if cat.TaskTree[0].Subcategories[0].Tasks[0].BaseHours["CONDENSEUR"] != 10 {
			t.Error("estimate shares task state with the catalog")
		}
		if cat.Documents[0].Hours != 12 {
			t.Error("estimate shares document state with the catalog")
		}
	})
}

func TestSetManualHours(t *testing.T) {
	cat := testCatalog()
	p := testProject(cat)

	t.Run("sets and clears per kind", func(t *testing.T) {
		if !p.SetManualHours(KindGeneralTask, 0, "25.5") {
			t.Fatal("SetManualHours refused a valid task")
		}
		if got := p.TaskByIndex(0).ManualHours; got == nil || *got != 25.5 {
			t.Errorf("ManualHours = %v, want 25.5", got)
		}
		if !p.SetManualHours(KindGeneralTask, 0, "") {
			t.Fatal("clearing refused")
		}
		if p.TaskByIndex(0).ManualHours != nil {
			t.Error("override not cleared by empty input")
		}
	})

	t.Run("invalid input clears instead of failing", func(t *testing.T) {
		p.SetManualHours(KindLabItem, 0, "4")
		if !p.SetManualHours(KindLabItem, 0, "quatre") {
			t.Fatal("unparseable input rejected")
		}
		if p.LabItemByIndex(0).ManualHours != nil {
			t.Error("unparseable input did not clear the override")
		}
	})

	t.Run("unknown index is reported", func(t *testing.T) {
		if p.SetManualHours(KindGeneralTask, 404, "1") {
			t.Error("SetManualHours accepted an unknown index")
		}
		if p.SetManualHours("widgets", 0, "1") {
			t.Error("SetManualHours accepted an unknown kind")
		}
	})
}

func TestSetSelected(t *testing.T) {
	cat := testCatalog()
	p := testProject(cat)

	if !p.SetSelected(KindOption, 0, true) {
		t.Fatal("SetSelected refused a valid option")
	}
	if !p.OptionByIndex(0).IsSelected {
		t.Error("option not selected")
	}

	if p.SetSelected(KindGeneralTask, 0, true) {
		t.Error("general tasks must not carry selection state")
	}
	if p.SetSelected(KindLabItem, 0, true) {
		t.Error("lab items must not carry selection state")
	}
	if p.SetSelected(KindOption, 404, true) {
		t.Error("SetSelected accepted an unknown index")
	}
}

func TestAllTasksOrder(t *testing.T) {
	cat := testCatalog()
	p := testProject(cat)

	tasks := p.AllTasks()
	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tasks))
	}
	for i, task := range tasks {
		if task.Index != i {
			t.Errorf("task %d has index %d; tree order broken", i, task.Index)
		}
	}
}
