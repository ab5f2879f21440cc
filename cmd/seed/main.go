// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"barstock/internal/domain/catalogs/item"
	"barstock/internal/domain/catalogs/location"
	"barstock/internal/infrastructure/storage/postgres"
	"barstock/internal/infrastructure/storage/postgres/catalog_repo"
	"barstock/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)
	itemRepo := catalog_repo.NewItemRepo(txManager)
	locationRepo := catalog_repo.NewLocationRepo(txManager)

	if err := seedLocations(ctx, locationRepo, log); err != nil {
		log.Fatalw("failed to seed locations", "error", err)
	}

	if err := seedItems(ctx, itemRepo, log); err != nil {
		log.Fatalw("failed to seed items", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedLocations(ctx context.Context, repo *catalog_repo.LocationRepo, log *logger.Logger) error {
	locations := []struct {
		code string
		name string
	}{
		{"MAIN", "Main bar"},
		{"TERRACE", "Terrace bar"},
		{"CELLAR", "Cellar storage"},
	}

	for _, l := range locations {
		loc := location.New(l.code, l.name)
		if err := repo.Create(ctx, loc); err != nil {
			log.Warnw("location already exists, skipping", "code", l.code, "error", err)
			continue
		}
		log.Infow("location created", "code", l.code, "id", loc.ID)
	}

	return nil
}

func seedItems(ctx context.Context, repo *catalog_repo.ItemRepo, log *logger.Logger) error {
	items := []struct {
		kind item.Kind
		code string
		name string
		unit string
	}{
		{item.KindProduct, "BEER-LAGER", "Lager 0.5l bottle", "pcs"},
		{item.KindProduct, "WINE-RED", "House red wine", "bottle"},
		{item.KindIngredient, "LIME", "Fresh lime", "kg"},
		{item.KindIngredient, "MINT", "Mint leaves", "kg"},
		{item.KindIngredient, "SYRUP-SUGAR", "Sugar syrup", "l"},
	}

	for _, i := range items {
		itm := item.New(i.kind, i.code, i.name, i.unit)
		if err := repo.Create(ctx, itm); err != nil {
			log.Warnw("item already exists, skipping", "code", i.code, "error", err)
			continue
		}
		log.Infow("item created", "code", i.code, "id", itm.ID)
	}

	return nil
}
