package exporter

import (
	"context"
	_ "embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"visitascli/internal/errors"
	"visitascli/pkg/contracts/domain"
)

//go:embed dashboard.tmpl.html
var dashboardTemplate string

// dashboardPayload is the structure embedded into the rendered page for the
// client-side charts and tables. The parallel label/data arrays feed
// Chart.js directly.
type dashboardPayload struct {
	TotalVisits            int                      `json:"total_visits"`
	UniqueDoctorCount      int                      `json:"unique_doctor_count"`
	AverageDurationMinutes float64                  `json:"average_duration_minutes"`
	AverageVisitsPerDay    float64                  `json:"average_visits_per_day"`
	MonthlyLabels          []string                 `json:"monthly_labels"`
	MonthlyData            []int                    `json:"monthly_data"`
	StatusLabels           []string                 `json:"status_labels"`
	StatusData             []int                    `json:"status_data"`
	TopDoctorLabels        []string                 `json:"top_doctor_labels"`
	TopDoctorData          []int                    `json:"top_doctor_data"`
	TopDoctorVisited       []int                    `json:"top_doctor_visited"`
	TopDoctorNotVisited    []int                    `json:"top_doctor_not_visited"`
	Doctors                []domain.DoctorAggregate `json:"doctors"`
}

type dashboardContext struct {
	DataJSON    template.JS
	GeneratedAt string
}

// RenderHTML renders the static dashboard page with the report data
// embedded as JSON for client-side rendering.
func (e *Exporter) RenderHTML(ctx context.Context, path string, report *domain.ReportAggregate) error {
	e.logger.InfoContext(ctx, "rendering dashboard HTML",
		slog.String("path", path))

	payload := dashboardPayload{
		TotalVisits:            report.TotalVisits,
		UniqueDoctorCount:      report.UniqueDoctorCount,
		AverageDurationMinutes: report.AverageDurationMinutes,
		AverageVisitsPerDay:    report.AverageVisitsPerDay,
		MonthlyLabels:          report.MonthlyLabels(),
		MonthlyData:            report.MonthlyData(),
		StatusLabels:           report.StatusLabels(),
		StatusData:             report.StatusData(),
		TopDoctorLabels:        report.TopDoctorLabels(),
		TopDoctorData:          report.TopDoctorData(),
		TopDoctorVisited:       report.TopDoctorVisited(),
		TopDoctorNotVisited:    report.TopDoctorNotVisited(),
		Doctors:                report.Doctors,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return errors.NewStorageError("failed to serialize dashboard payload", err)
	}

	tmpl, err := template.New("dashboard").Parse(dashboardTemplate)
	if err != nil {
		return errors.NewStorageError("failed to parse dashboard template", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for HTML output", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create dashboard HTML file", err)
	}
	defer file.Close()

	tmplCtx := dashboardContext{
		DataJSON:    template.JS(data),
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
	}
	if err := tmpl.Execute(file, tmplCtx); err != nil {
		return errors.NewStorageError("failed to render dashboard template", err)
	}

	e.logger.InfoContext(ctx, "dashboard HTML rendered", slog.String("path", path))
	return nil
}
