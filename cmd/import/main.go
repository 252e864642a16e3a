package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/margauxcellars/cellar-backend/internal/importer"
	"github.com/margauxcellars/cellar-backend/pkg/config"
	"github.com/margauxcellars/cellar-backend/pkg/db"
	"github.com/margauxcellars/cellar-backend/pkg/logger"
	"github.com/margauxcellars/cellar-backend/pkg/metrics"
)

// Imports a purchase workbook straight from disk, for backfills and initial
// catalog loads outside the API.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "import"})

	_ = godotenv.Load()

	path := flag.String("file", "", "path to the xlsx workbook")
	flag.Parse()

	if *path == "" {
		logg.Error(ctx, "missing -file argument", nil)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "import",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	imp, err := importer.New(
		importer.NewRepository(dbClient),
		logg,
		metrics.NewImportMetrics(prometheus.NewRegistry()),
	)
	if err != nil {
		logg.Error(ctx, "failed to create importer", err)
		os.Exit(1)
	}

	file, err := os.Open(*path)
	if err != nil {
		logg.Error(ctx, "failed to open workbook", err)
		os.Exit(1)
	}
	defer file.Close()

	ctx = logg.WithField(ctx, "file", *path)
	summary, err := imp.Run(ctx, file)
	if err != nil {
		logg.Error(ctx, "import failed", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"sheets":   summary.Sheets,
		"imported": summary.Imported,
		"skipped":  summary.Skipped,
	})
	logg.Info(ctx, "import complete")
}
