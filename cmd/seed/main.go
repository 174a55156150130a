package main

import (
	"context"
	"log"

	"market-ingest/internal/config"
	"market-ingest/internal/database"
	"market-ingest/internal/ident"
	"market-ingest/internal/repository"
	"market-ingest/internal/services"
	"market-ingest/internal/sources"
)

// One-shot seeder: runs the ingestion pipeline once and exits. A store
// connection failure is the only fatal condition; degraded feeds just
// contribute zero candidates.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	repo := repository.NewRepository(database.GetDB())
	minter := ident.NewCryptoMinter()

	srcs := sources.Curated()
	srcs = append(srcs,
		sources.NewGDELTSource(cfg.Ingest.FetchTimeout),
		sources.NewRSSSource(cfg.Ingest.FetchTimeout),
	)

	stats := services.NewIngestService(repo, minter, srcs).Run(context.Background())

	log.Printf("Seeding completed: %+v", stats)
}
