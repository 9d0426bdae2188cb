// Package exporter writes the report artifacts: the serialized aggregate
// JSON, the rendered static dashboard, and the cleaned-visit CSV.
package exporter

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"visitascli/internal/errors"
	"visitascli/pkg/contracts"
	"visitascli/pkg/contracts/domain"
)

// reportFormat tags the JSON artifact so downstream consumers can detect
// schema changes.
const reportFormat = "visit_report_v1"

// Exporter writes report artifacts to the reports directory.
type Exporter struct {
	logger *slog.Logger
}

// New creates an exporter with the given logger.
func New(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger}
}

// WriteReportJSON writes the report aggregate with run metadata to path.
func (e *Exporter) WriteReportJSON(ctx context.Context, path string, report *domain.ReportAggregate) error {
	e.logger.InfoContext(ctx, "writing report JSON",
		slog.String("path", path))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for JSON output", err)
	}

	jsonData := map[string]interface{}{
		"report":       report,
		"report_id":    uuid.New().String(),
		"generated_at": time.Now().Format(time.RFC3339),
		"generator":    contracts.GetVersionString(),
		"format":       reportFormat,
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create JSON report file", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(jsonData); err != nil {
		return errors.NewStorageError("failed to encode report to JSON", err)
	}

	e.logger.InfoContext(ctx, "report JSON written", slog.String("path", path))
	return nil
}

// WriteCleanedCSV writes the cleaned visit rows to path in source order.
// Nullable fields serialize as empty cells.
func (e *Exporter) WriteCleanedCSV(ctx context.Context, path string, visits []domain.CleanedVisit) error {
	e.logger.InfoContext(ctx, "writing cleaned visits CSV",
		slog.String("path", path),
		slog.Int("visit_count", len(visits)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for CSV output", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create CSV file for cleaned visits", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Doctor", "VisitDate", "Month", "DurationMinutes", "Status", "Comment", "PhotoReference"}
	if err := writer.Write(header); err != nil {
		return errors.NewStorageError("failed to write CSV header row", err)
	}

	for _, v := range visits {
		row := []string{
			v.DoctorName,
			v.VisitDateString(),
			v.Month,
			formatDuration(v.DurationMinutes),
			stringOrEmpty(v.Status),
			stringOrEmpty(v.Comment),
			v.PhotoRef,
		}
		if err := writer.Write(row); err != nil {
			return errors.NewStorageError("failed to write CSV data row", err)
		}
	}

	e.logger.InfoContext(ctx, "cleaned visits CSV written", slog.String("path", path))
	return nil
}

func formatDuration(minutes *float64) string {
	if minutes == nil {
		return ""
	}
	return fmt.Sprintf("%.1f", *minutes)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
