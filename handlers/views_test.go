package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"chiffrage/services"
	"chiffrage/testhelpers"
)

func TestHandleEstimateSummary(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cat := testhelpers.TestCatalog()
	record := testhelpers.CreateTestEstimate(t, app, testhelpers.TestProject(cat))

	req := httptest.NewRequest(http.MethodGet, "/estimates/"+record.Id+"/summary", nil)
	req.SetPathValue("id", record.Id)
	rec := httptest.NewRecorder()
	if err := HandleEstimateSummary(app, cat)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var sections []services.SummaryNode
	if err := json.Unmarshal(rec.Body.Bytes(), &sections); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(sections) != 5 {
		t.Fatalf("got %d sections, want 5", len(sections))
	}
	if sections[0].Label != "General tasks" || len(sections[0].Children) == 0 {
		t.Errorf("unexpected first section: %+v", sections[0])
	}
}

func TestHandleEstimateTotals(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cat := testhelpers.TestCatalog()
	record := testhelpers.CreateTestEstimate(t, app, testhelpers.TestProject(cat))
	handler := HandleEstimateTotals(app, cat)

	t.Run("reports the pipeline snapshot", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/estimates/"+record.Id+"/totals", nil)
		req.SetPathValue("id", record.Id)
		rec := httptest.NewRecorder()
		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var totals services.Totals
		if err := json.Unmarshal(rec.Body.Bytes(), &totals); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		want := totals.FirstMachineSubtotal * 1.05
		if math.Abs(totals.FirstMachineTotal-want) > 0.001 {
			t.Errorf("first_machine_total = %v, want %v", totals.FirstMachineTotal, want)
		}
		if math.Abs(totals.ExperienceCoefficient-1.0) > 0.001 {
			t.Errorf("experience_coefficient = %v, want 1.0", totals.ExperienceCoefficient)
		}
	})

	t.Run("unknown estimate is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/estimates/nope/totals", nil)
		req.SetPathValue("id", "nope")
		rec := httptest.NewRecorder()
		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestHandleEstimateRepartition(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cat := testhelpers.TestCatalog()
	record := testhelpers.CreateTestEstimate(t, app, testhelpers.TestProject(cat))

	req := httptest.NewRequest(http.MethodGet, "/estimates/"+record.Id+"/repartition", nil)
	req.SetPathValue("id", record.Id)
	rec := httptest.NewRecorder()
	if err := HandleEstimateRepartition(app, cat)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var rows []services.JobHours
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(rows) != len(cat.JobCodes) {
		t.Fatalf("got %d rows, want %d", len(rows), len(cat.JobCodes))
	}
	for i, jc := range cat.JobCodes {
		if rows[i].Code != jc.Code {
			t.Errorf("row %d code = %q, want %q", i, rows[i].Code, jc.Code)
		}
	}
}
