package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"flight-footprint/atlas/internal/config"
	"flight-footprint/atlas/internal/logging"
	"flight-footprint/atlas/internal/providers"
)

func main() {
	cfg := config.Load()

	var (
		outPath = flag.String("out", cfg.ISOCSVPath, "iso.csv output path")
		url     = flag.String("url", cfg.FactbookURL, "Factbook country data codes page")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if err := logging.InitCLI(*verbose); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	codes, err := providers.FetchFactbookCodes(ctx, providers.NewFetcher(cfg.FetchTimeout), *url)
	if err != nil {
		logging.Fatal("Failed to scrape country codes", "url", *url, "error", err)
	}

	if dir := filepath.Dir(*outPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logging.Fatal("Failed to create output directory", "dir", dir, "error", err)
		}
	}

	f, err := os.Create(*outPath)
	if err != nil {
		logging.Fatal("Failed to create output file", "path", *outPath, "error", err)
	}
	if err := providers.WriteCountryCodes(f, codes); err != nil {
		f.Close()
		logging.Fatal("Failed to write country codes", "path", *outPath, "error", err)
	}
	if err := f.Close(); err != nil {
		logging.Fatal("Failed to close output file", "path", *outPath, "error", err)
	}

	logging.Info("Country codes written", "path", *outPath, "count", len(codes))
}
