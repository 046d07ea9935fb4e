package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"jericho-storefront/internal/catalog"
	"jericho-storefront/internal/config"
	"jericho-storefront/internal/db"
	"jericho-storefront/internal/importer"
	"jericho-storefront/internal/migrate"
	"jericho-storefront/internal/seed"
)

func main() {
	var (
		filePath string
		dryRun   bool
	)
	flag.StringVar(&filePath, "file", "", "Path to a product CSV file")
	flag.BoolVar(&dryRun, "dry-run", false, "Validate the file without saving")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns, logger)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	snaps := seed.NewSnapshots(pool, logger)
	catalogSeed, settingsSeed, err := snaps.Load(ctx)
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}
	store, err := catalog.New(catalogSeed)
	if err != nil {
		logger.Fatalf("build catalog: %v", err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	start := time.Now()
	res, err := importer.NewCSVImporter(f, store).Run(ctx)
	if err != nil {
		logger.Fatalf("import failed after %d product(s): %v", res.Imported(), err)
	}

	if dryRun {
		fmt.Printf("Validated %d products (%d new, %d updated), nothing saved\n", res.Imported(), res.Added, res.Updated)
		return
	}
	if err := snaps.Save(ctx, store.Snapshot(), settingsSeed); err != nil {
		logger.Fatalf("save catalog: %v", err)
	}

	fmt.Printf("Imported %d products (%d new, %d updated, %d new categories) in %s\n",
		res.Imported(), res.Added, res.Updated, len(res.Categories), time.Since(start).Truncate(time.Millisecond))
}
