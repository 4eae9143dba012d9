package collections

import (
	"testing"

	"github.com/pocketbase/pocketbase"
)

func newBootstrappedApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: t.TempDir(),
	})
	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}
	return app
}

func TestSetup(t *testing.T) {
	app := newBootstrappedApp(t)
	Setup(app)

	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		t.Fatalf("estimates collection not created: %v", err)
	}

	for _, field := range []string{"reference_number", "client", "designation", "sector", "product", "revision", "document", "created", "updated"} {
		if col.Fields.GetByName(field) == nil {
			t.Errorf("estimates collection missing field %q", field)
		}
	}
}

func TestSetupIdempotent(t *testing.T) {
	app := newBootstrappedApp(t)
	Setup(app)
	Setup(app) // must not fail or duplicate

	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		t.Fatalf("estimates collection missing after second Setup: %v", err)
	}
	if col.Fields.GetByName("document") == nil {
		t.Error("document field missing after second Setup")
	}
}
