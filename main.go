package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"chiffrage/catalog"
	"chiffrage/collections"
	"chiffrage/handlers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	catalogPath := os.Getenv("CATALOG_PATH")
	if catalogPath == "" {
		catalogPath = "data/catalog.json"
	}
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app, cat); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Estimate CRUD ────────────────────────────────────────
		se.Router.GET("/estimates", handlers.HandleEstimateList(app))
		se.Router.POST("/estimates", handlers.HandleEstimateCreate(app, cat))
		se.Router.GET("/estimates/{id}", handlers.HandleEstimateView(app, cat))
		se.Router.DELETE("/estimates/{id}", handlers.HandleEstimateDelete(app))

		// ── Configuration ────────────────────────────────────────
		se.Router.PATCH("/estimates/{id}/config", handlers.HandleEstimateConfig(app, cat))
		se.Router.POST("/estimates/{id}/reset", handlers.HandleEstimateReset(app, cat))

		// ── Item mutation ────────────────────────────────────────
		se.Router.PATCH("/estimates/{id}/items/{kind}/{index}", handlers.HandleItemUpdate(app, cat))

		// ── Read views ───────────────────────────────────────────
		se.Router.GET("/estimates/{id}/summary", handlers.HandleEstimateSummary(app, cat))
		se.Router.GET("/estimates/{id}/totals", handlers.HandleEstimateTotals(app, cat))
		se.Router.GET("/estimates/{id}/repartition", handlers.HandleEstimateRepartition(app, cat))

		// ── Export ───────────────────────────────────────────────
		se.Router.GET("/estimates/{id}/export/excel", handlers.HandleEstimateExportExcel(app, cat))
		se.Router.GET("/estimates/{id}/export/pdf", handlers.HandleEstimateExportPDF(app, cat))

		// ── Catalog ──────────────────────────────────────────────
		se.Router.GET("/catalog/options", handlers.HandleCatalogOptions(cat))

		// Redirect home to estimates list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/estimates")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
