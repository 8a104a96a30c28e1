package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"bizdash/m/internal/api"
	"bizdash/m/internal/config"
	"bizdash/m/internal/database"
	"bizdash/m/internal/importer"
	"bizdash/m/internal/ledger"
	"bizdash/m/internal/migrations"
	"bizdash/m/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("unable to build logger: %v", err)
	}
	defer logger.Sync()

	svc := ledger.NewService(db, logger)
	imp := importer.New(svc, logger)

	if cfg.SeedSample {
		sales, err := svc.ListSales()
		if err != nil {
			log.Fatalf("unable to read sales ledger: %v", err)
		}
		if len(sales) == 0 {
			seed.Generate(svc, logger)
		}
	}

	handler := api.New(svc, imp, logger)

	log.Printf("business dashboard server starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
