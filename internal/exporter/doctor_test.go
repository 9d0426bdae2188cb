package exporter

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitascli/internal/shared/testutil"
)

func TestWriteDoctorSummaryCSV(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	exp := New(logger)

	path := filepath.Join(t.TempDir(), "visitas_medicos.csv")
	require.NoError(t, exp.WriteDoctorSummaryCSV(context.Background(), path, sampleReport()))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"Doctor", "TotalVisits", "Visited", "NotVisited", "LastVisitDate", "AvgDurationMinutes"}, rows[0])
	assert.Equal(t, []string{"Dr. Juan Perez", "1", "1", "0", "2024-03-05", "32.5"}, rows[1])
}

func TestWriteDoctorHistoryCSVs(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	exp := New(logger)

	dir := filepath.Join(t.TempDir(), "medicos")
	require.NoError(t, exp.WriteDoctorHistoryCSVs(context.Background(), dir, sampleReport()))

	file, err := os.Open(filepath.Join(dir, "dr_juan_perez_historial.csv"))
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"VisitDate", "DurationMinutes", "Status", "Comment", "PhotoReference"}, rows[0])
	assert.Equal(t, []string{"2024-03-05", "32.5", "Visitado", "", "foto1.jpg"}, rows[1])
}

func TestDoctorFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Dr. Juan Perez", "dr_juan_perez_historial.csv"},
		{"Dra. Ana-Maria Lopez", "dra_ana_maria_lopez_historial.csv"},
		{"Desconocido", "desconocido_historial.csv"},
		{"///", "doctor_historial.csv"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, doctorFileName(tt.name), "name %q", tt.name)
	}
}
