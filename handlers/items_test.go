package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chiffrage/services"
	"chiffrage/testhelpers"
)

func TestHandleItemUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cat := testhelpers.TestCatalog()
	record := testhelpers.CreateTestEstimate(t, app, testhelpers.TestProject(cat))
	handler := HandleItemUpdate(app, cat)

	send := func(t *testing.T, kind, index, body string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPatch,
			"/estimates/"+record.Id+"/items/"+kind+"/"+index, strings.NewReader(body))
		req.SetPathValue("id", record.Id)
		req.SetPathValue("kind", kind)
		req.SetPathValue("index", index)
		rec := httptest.NewRecorder()
		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec
	}

	reload := func(t *testing.T) *services.Project {
		t.Helper()
		r, err := app.FindRecordById("estimates", record.Id)
		if err != nil {
			t.Fatalf("reload record: %v", err)
		}
		p, err := services.UnmarshalProject(cat, []byte(r.GetString("document")))
		if err != nil {
			t.Fatalf("reload project: %v", err)
		}
		return p
	}

	t.Run("selects an option and totals move", func(t *testing.T) {
		rec := send(t, services.KindOption, "0", `{"is_selected": true}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Totals services.Totals `json:"totals"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		p := reload(t)
		if !p.OptionByIndex(0).IsSelected {
			t.Error("selection not persisted")
		}
		if math.Abs(resp.Totals.TotalFinal-p.TotalFinal()) > 0.001 {
			t.Errorf("reported totals %v do not match persisted state %v",
				resp.Totals.TotalFinal, p.TotalFinal())
		}
	})

	t.Run("manual hours override persists", func(t *testing.T) {
		rec := send(t, services.KindGeneralTask, "0", `{"manual_hours": "25.5"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		p := reload(t)
		if got := p.TaskByIndex(0).ManualHours; got == nil || *got != 25.5 {
			t.Errorf("override = %v, want 25.5", got)
		}
	})

	t.Run("unparseable hours clear the override", func(t *testing.T) {
		rec := send(t, services.KindGeneralTask, "0", `{"manual_hours": "n/a"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		p := reload(t)
		if p.TaskByIndex(0).ManualHours != nil {
			t.Error("override not cleared")
		}
	})

	t.Run("selection on a non-gated kind is rejected", func(t *testing.T) {
		rec := send(t, services.KindLabItem, "0", `{"is_selected": true}`)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		rec := send(t, "widgets", "0", `{"is_selected": true}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown index is 404", func(t *testing.T) {
		rec := send(t, services.KindOption, "404", `{"is_selected": true}`)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("non-numeric index is rejected", func(t *testing.T) {
		rec := send(t, services.KindOption, "abc", `{"is_selected": true}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}
