package main

import (
	"log"
	"net/http"

	"trip_planner/internal/config"
	"trip_planner/internal/controllers"
	"trip_planner/internal/logger"
	"trip_planner/internal/money"
	"trip_planner/internal/planner"
	"trip_planner/internal/routes"
	"trip_planner/internal/store"
)

func main() {
	cfg := config.Load()

	// Initialize structured logging to file
	logger.Setup(cfg.LogFile)

	// Pick the snapshot store
	var st store.Store
	switch cfg.Storage {
	case "postgres":
		gs, err := store.OpenGorm(cfg.DSN())
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		st = gs
	default:
		st = store.NewMemory()
	}

	p := planner.New(st)

	format, err := money.NewFormatter(cfg.Currency, cfg.Locale)
	if err != nil {
		log.Fatalf("invalid currency %q: %v", cfg.Currency, err)
	}

	// Setup Gin router
	r := routes.SetupRouter(
		controllers.NewRouteController(p),
		controllers.NewWaypointController(p),
		controllers.NewBudgetController(p, format),
		controllers.NewUploadController(p),
	)

	log.Printf("🚀 Server running at %s", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
