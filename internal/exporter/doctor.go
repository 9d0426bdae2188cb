package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"visitascli/internal/errors"
	"visitascli/pkg/contracts/domain"
)

// WriteDoctorSummaryCSV writes one summary row per doctor, in the report's
// ranking order.
func (e *Exporter) WriteDoctorSummaryCSV(ctx context.Context, path string, report *domain.ReportAggregate) error {
	e.logger.InfoContext(ctx, "writing doctor summary CSV",
		slog.String("path", path),
		slog.Int("doctor_count", len(report.Doctors)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for doctor summary", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create doctor summary CSV", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Doctor", "TotalVisits", "Visited", "NotVisited", "LastVisitDate", "AvgDurationMinutes"}
	if err := writer.Write(header); err != nil {
		return errors.NewStorageError("failed to write doctor summary header", err)
	}

	for _, doc := range report.Doctors {
		row := []string{
			doc.Name,
			fmt.Sprintf("%d", doc.TotalVisits),
			fmt.Sprintf("%d", doc.VisitedCount),
			fmt.Sprintf("%d", doc.NotVisitedCount),
			doc.LastVisitDate,
			formatDuration(doctorAverageDuration(doc)),
		}
		if err := writer.Write(row); err != nil {
			return errors.NewStorageError("failed to write doctor summary row", err)
		}
	}

	e.logger.InfoContext(ctx, "doctor summary CSV written", slog.String("path", path))
	return nil
}

// WriteDoctorHistoryCSVs writes one CSV per doctor with the full visit
// timeline, most recent first, under outputDir.
func (e *Exporter) WriteDoctorHistoryCSVs(ctx context.Context, outputDir string, report *domain.ReportAggregate) error {
	e.logger.InfoContext(ctx, "writing per-doctor history CSVs",
		slog.String("output_dir", outputDir),
		slog.Int("doctor_count", len(report.Doctors)))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return errors.NewStorageError("failed to create per-doctor output directory", err)
	}

	for _, doc := range report.Doctors {
		path := filepath.Join(outputDir, doctorFileName(doc.Name))
		if err := e.writeDoctorHistory(path, doc); err != nil {
			return err
		}
	}

	e.logger.InfoContext(ctx, "per-doctor history CSVs written",
		slog.Int("file_count", len(report.Doctors)))
	return nil
}

func (e *Exporter) writeDoctorHistory(path string, doc domain.DoctorAggregate) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create doctor history CSV", err).
			WithContext("doctor", doc.Name)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"VisitDate", "DurationMinutes", "Status", "Comment", "PhotoReference"}
	if err := writer.Write(header); err != nil {
		return errors.NewStorageError("failed to write doctor history header", err)
	}

	for _, v := range doc.History {
		row := []string{
			v.VisitDateString(),
			formatDuration(v.DurationMinutes),
			stringOrEmpty(v.Status),
			stringOrEmpty(v.Comment),
			v.PhotoRef,
		}
		if err := writer.Write(row); err != nil {
			return errors.NewStorageError("failed to write doctor history row", err)
		}
	}
	return nil
}

// doctorAverageDuration is the mean of the doctor's non-null durations,
// nil when none exist.
func doctorAverageDuration(doc domain.DoctorAggregate) *float64 {
	var sum float64
	var n int
	for _, v := range doc.History {
		if v.DurationMinutes != nil {
			sum += *v.DurationMinutes
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// doctorFileName turns a doctor name into a safe CSV filename. Normalized
// names are ASCII already, so only separators and punctuation need care.
func doctorFileName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '.', r == '-', r == '_':
			b.WriteRune('_')
		}
	}
	s := strings.Trim(b.String(), "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	if s == "" {
		s = "doctor"
	}
	return s + "_historial.csv"
}
