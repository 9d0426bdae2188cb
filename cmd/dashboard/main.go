// Command dashboard generates the field-visit analytics dashboard from a
// visit-log workbook: a rendered static HTML page, the report JSON, and a
// cleaned-visit CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"visitascli/internal/config"
	"visitascli/internal/dataprocessing"
	"visitascli/internal/exporter"
	"visitascli/internal/infrastructure"
	"visitascli/pkg/contracts"
)

func main() {
	inFile := flag.String("in", "", "input .xlsx visit log (defaults to configured input file)")
	outDir := flag.String("out", "", "output directory for report artifacts (defaults to configured reports dir)")
	configFile := flag.String("config", "config.yaml", "optional YAML config file")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

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
	if *outDir == "" {
		*outDir = cfg.Paths.ReportsDir
	}

	logger = logger.With(slog.String("run_id", uuid.New().String()))
	logger.Info("Starting visit dashboard generation",
		slog.String("input_file", *inFile),
		slog.String("output_dir", *outDir))

	sheet, err := dataprocessing.ParseFile(*inFile)
	if err != nil {
		logger.Error("Error reading visit workbook", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Workbook loaded", slog.String("sheet", dataprocessing.Describe(sheet)))

	ctx := context.Background()
	cleaner := dataprocessing.NewCleaner(logger)
	visits := cleaner.Clean(ctx, sheet)

	aggregator := dataprocessing.NewAggregator(logger, dataprocessing.DefaultAggregatorConfig())
	report := aggregator.BuildReport(ctx, visits, sheet.Schema)

	exp := exporter.New(logger)

	jsonPath := filepath.Join(*outDir, "visitas_report.json")
	if err := exp.WriteReportJSON(ctx, jsonPath, report); err != nil {
		logger.Error("Error writing report JSON", slog.String("error", err.Error()))
		os.Exit(1)
	}

	htmlPath := filepath.Join(*outDir, "visitas_dashboard.html")
	if err := exp.RenderHTML(ctx, htmlPath, report); err != nil {
		logger.Error("Error rendering dashboard", slog.String("error", err.Error()))
		os.Exit(1)
	}

	csvPath := filepath.Join(*outDir, "visitas_cleaned.csv")
	if err := exp.WriteCleanedCSV(ctx, csvPath, visits); err != nil {
		logger.Error("Error writing cleaned CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}

	summaryPath := filepath.Join(*outDir, "visitas_medicos.csv")
	if err := exp.WriteDoctorSummaryCSV(ctx, summaryPath, report); err != nil {
		logger.Error("Error writing doctor summary CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := exp.WriteDoctorHistoryCSVs(ctx, filepath.Join(*outDir, "medicos"), report); err != nil {
		logger.Error("Error writing per-doctor history CSVs", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Dashboard generated successfully",
		slog.String("dashboard", htmlPath),
		slog.String("report", jsonPath),
		slog.String("cleaned_csv", csvPath),
		slog.Int("total_visits", report.TotalVisits),
		slog.Int("unique_doctors", report.UniqueDoctorCount))
}
