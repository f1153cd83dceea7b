package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"flight-footprint/atlas/internal/airports"
	"flight-footprint/atlas/internal/config"
	"flight-footprint/atlas/internal/dataset"
	"flight-footprint/atlas/internal/db"
	"flight-footprint/atlas/internal/db/repositories"
	"flight-footprint/atlas/internal/logging"
	"flight-footprint/atlas/internal/providers"
	"flight-footprint/atlas/internal/services"
)

func main() {
	cfg := config.Load()

	var (
		dryRun       bool
		outPath      string
		previewLimit int
		verbose      bool
		csvPath      string
		scoringPath  string
		mirror       bool
	)
	flag.BoolVar(&dryRun, "dry-run", false, "print a preview instead of writing the dataset")
	flag.StringVar(&outPath, "output", cfg.DatasetPath, "dataset output path")
	flag.StringVar(&outPath, "o", cfg.DatasetPath, "dataset output path (shorthand)")
	flag.IntVar(&previewLimit, "preview-limit", 50, "records shown by -dry-run")
	flag.IntVar(&previewLimit, "l", 50, "records shown by -dry-run (shorthand)")
	flag.BoolVar(&verbose, "verbose", false, "debug logging")
	flag.BoolVar(&verbose, "v", false, "debug logging (shorthand)")
	flag.StringVar(&csvPath, "csv", cfg.CSVSnapshotPath, "also write a CSV snapshot to this path")
	flag.StringVar(&scoringPath, "scoring", cfg.ScoringConfigPath, "YAML file overriding the scoring table")
	flag.BoolVar(&mirror, "mirror", cfg.DatabaseDSN != "", "replace the SQL mirror (DATABASE_DSN) after writing")
	flag.Parse()

	if err := logging.InitCLI(verbose); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scoring := airports.DefaultScoringConfig()
	if scoringPath != "" {
		loaded, err := config.LoadScoring(scoringPath)
		if err != nil {
			logging.Fatal("Failed to load scoring config", "path", scoringPath, "error", err)
		}
		scoring = loaded
	}

	svc := services.NewRegenerationService(
		providers.NewFetcher(cfg.FetchTimeout),
		services.SourceLocations{
			OpenFlights: cfg.OpenFlightsURL,
			OurAirports: cfg.OurAirportsURL,
			Factbook:    cfg.FactbookURL,
			ISOCSVPath:  cfg.ISOCSVPath,
		},
		scoring,
		cfg.AirportTypes,
		nil,
	)

	if mirror && !dryRun {
		if cfg.DatabaseDSN == "" {
			logging.Fatal("-mirror needs DATABASE_DSN")
		}
		gormDB, err := db.Open(cfg.DatabaseDSN)
		if err != nil {
			logging.Fatal("Failed to connect to SQL mirror", "error", err)
		}
		if err := db.Migrate(gormDB); err != nil {
			logging.Fatal("Failed to migrate SQL mirror", "error", err)
		}
		svc.WithMirror(repositories.NewAirportRepository(gormDB))
	}

	result, err := svc.Run(ctx, services.RegenerationOptions{
		OutputPath: outPath,
		CSVPath:    csvPath,
		DryRun:     dryRun,
	})
	if err != nil {
		logging.Fatal("Regeneration failed", "error", err)
	}

	if dryRun {
		preview, err := dataset.Preview(result.Records, previewLimit)
		if err != nil {
			logging.Fatal("Failed to render preview", "error", err)
		}
		fmt.Print(string(preview))

		shown := len(result.Records)
		if previewLimit > 0 {
			shown = min(previewLimit, shown)
		}
		logging.Info("Dry run complete, nothing written", "records", len(result.Records), "shown", shown)
		return
	}

	logging.Info("Dataset updated",
		"path", result.Write.Path,
		"backup", result.Write.BackupPath,
		"records", len(result.Records),
		"countries_from", result.CountrySource,
		"mirrored", result.Mirrored,
		"duration", result.Duration.String(),
	)
	if len(result.Warnings) > 0 {
		logging.Fatal("Dataset published but secondary outputs failed", "warnings", result.Warnings)
	}
}
