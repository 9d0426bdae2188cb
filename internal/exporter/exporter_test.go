package exporter

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitascli/internal/shared/testutil"
	"visitascli/pkg/contracts/domain"
)

func sampleReport() *domain.ReportAggregate {
	status := "Visitado"
	duration := 32.5
	history := []domain.CleanedVisit{
		{
			DoctorName:      "Dr. Juan Perez",
			VisitDate:       time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			Month:           "2024-03",
			DurationMinutes: &duration,
			Status:          &status,
			PhotoRef:        "foto1.jpg",
		},
	}
	doctors := []domain.DoctorAggregate{
		{
			Name:          "Dr. Juan Perez",
			TotalVisits:   1,
			VisitedCount:  1,
			LastVisitDate: "2024-03-05",
			History:       history,
		},
	}
	return &domain.ReportAggregate{
		TotalVisits:            1,
		UniqueDoctorCount:      1,
		AverageDurationMinutes: 32.5,
		AverageVisitsPerDay:    1.0,
		MonthlyCounts:          []domain.MonthlyCount{{Month: "2024-03", Count: 1}},
		StatusCounts:           []domain.StatusCount{{Status: "Visitado", Count: 1}},
		TopDoctors:             doctors,
		Doctors:                doctors,
	}
}

func TestWriteReportJSON(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	exp := New(logger)

	path := filepath.Join(t.TempDir(), "reports", "visitas_report.json")
	require.NoError(t, exp.WriteReportJSON(context.Background(), path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &envelope))

	assert.Contains(t, envelope, "report_id")
	assert.Contains(t, envelope, "generated_at")
	assert.Contains(t, envelope, "generator")
	var format string
	require.NoError(t, json.Unmarshal(envelope["format"], &format))
	assert.Equal(t, "visit_report_v1", format)

	var report struct {
		TotalVisits         int                   `json:"total_visits"`
		UniqueDoctorCount   int                   `json:"unique_doctor_count"`
		AverageVisitsPerDay float64               `json:"average_visits_per_day"`
		MonthlyCounts       []domain.MonthlyCount `json:"monthly_counts"`
		Doctors             []struct {
			Name    string `json:"name"`
			History []struct {
				VisitDate string `json:"visit_date"`
			} `json:"history"`
		} `json:"doctors"`
	}
	require.NoError(t, json.Unmarshal(envelope["report"], &report))

	assert.Equal(t, 1, report.TotalVisits)
	assert.Equal(t, 1, report.UniqueDoctorCount)
	assert.InDelta(t, 1.0, report.AverageVisitsPerDay, 1e-9)
	require.Len(t, report.MonthlyCounts, 1)
	assert.Equal(t, "2024-03", report.MonthlyCounts[0].Month)
	require.Len(t, report.Doctors, 1)
	require.Len(t, report.Doctors[0].History, 1)
	// Visit dates serialize as plain calendar dates, not RFC3339 timestamps.
	assert.Equal(t, "2024-03-05", report.Doctors[0].History[0].VisitDate)
}

func TestWriteCleanedCSV(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	exp := New(logger)

	status := "Visitado"
	duration := 30.0
	visits := []domain.CleanedVisit{
		{
			DoctorName:      "Dr. Juan Perez",
			VisitDate:       time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			Month:           "2024-03",
			DurationMinutes: &duration,
			Status:          &status,
			PhotoRef:        "foto1.jpg",
		},
		{
			DoctorName: "Dra. Ana Lopez",
			VisitDate:  time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			Month:      "2024-04",
		},
	}

	path := filepath.Join(t.TempDir(), "visitas_cleaned.csv")
	require.NoError(t, exp.WriteCleanedCSV(context.Background(), path, visits))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Doctor", "VisitDate", "Month", "DurationMinutes", "Status", "Comment", "PhotoReference"}, rows[0])
	assert.Equal(t, []string{"Dr. Juan Perez", "2024-03-05", "2024-03", "30.0", "Visitado", "", "foto1.jpg"}, rows[1])
	assert.Equal(t, []string{"Dra. Ana Lopez", "2024-04-01", "2024-04", "", "", "", ""}, rows[2])
}

func TestRenderHTML(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	exp := New(logger)

	path := filepath.Join(t.TempDir(), "reports", "visitas_dashboard.html")
	require.NoError(t, exp.RenderHTML(context.Background(), path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(data)

	for _, want := range []string{
		`id="monthlyChart"`,
		`id="statusChart"`,
		`id="topDoctorsChart"`,
		`id="totalVisits"`,
		`id="uniqueDoctors"`,
		`id="avgDuration"`,
		`id="avgVisitsDay"`,
		`"total_visits":1`,
		`"monthly_labels":["2024-03"]`,
		`"top_doctor_labels":["Dr. Juan Perez"]`,
	} {
		assert.Contains(t, page, want)
	}

	// The payload lands as a literal JS object, not an escaped string.
	assert.False(t, strings.Contains(page, `&#34;total_visits&#34;`))
}

func TestRenderHTMLEmptyReport(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	exp := New(logger)

	report := &domain.ReportAggregate{
		MonthlyCounts: []domain.MonthlyCount{},
		StatusCounts:  []domain.StatusCount{},
	}

	path := filepath.Join(t.TempDir(), "empty.html")
	require.NoError(t, exp.RenderHTML(context.Background(), path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total_visits":0`)
}

func TestWriteReportJSONBadPath(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	exp := New(logger)

	dir := t.TempDir()
	blocker := filepath.Join(dir, "occupied")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := exp.WriteReportJSON(context.Background(), filepath.Join(blocker, "report.json"), sampleReport())
	require.Error(t, err)
}
