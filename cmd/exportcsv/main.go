// Command exportcsv runs only the cleaning half of the pipeline and writes
// the cleaned visit rows to CSV, for spreadsheet work outside the dashboard.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"visitascli/internal/config"
	"visitascli/internal/dataprocessing"
	"visitascli/internal/exporter"
	"visitascli/internal/infrastructure"
)

func main() {
	inFile := flag.String("in", "", "input .xlsx visit log (defaults to configured input file)")
	outFile := flag.String("out", "visitas_cleaned.csv", "output CSV path")
	configFile := flag.String("config", "config.yaml", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *inFile == "" {
		*inFile = cfg.Paths.InputFile
	}

	sheet, err := dataprocessing.ParseFile(*inFile)
	if err != nil {
		logger.Error("Error reading visit workbook", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	visits := dataprocessing.NewCleaner(logger).Clean(ctx, sheet)

	if err := exporter.New(logger).WriteCleanedCSV(ctx, *outFile, visits); err != nil {
		logger.Error("Error writing cleaned CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Cleaned CSV exported",
		slog.String("path", *outFile),
		slog.Int("visit_count", len(visits)))
}
