package dataprocessing

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"visitascli/internal/errors"
	"visitascli/pkg/contracts/domain"
)

// ParseFile reads a visit-log Excel workbook and extracts the raw row-set.
// Column positions are discovered from the header row, so the sheet layout
// may vary; only the doctor and visit-date columns are mandatory.
func ParseFile(filePath string) (*domain.VisitSheet, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, errors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	rows, sheetName, err := findVisitSheet(f)
	if err != nil {
		return nil, err
	}

	slog.Info("Found visit data in sheet",
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(rows)))

	headerRow, columnMap := findHeaderRow(rows)
	if headerRow == -1 {
		return nil, errors.NewParsingError("could not find header row with doctor and visit date columns", nil)
	}

	sheet := &domain.VisitSheet{
		Schema: domain.SheetSchema{
			HasCheckIn:  hasColumn(columnMap, "check_in"),
			HasCheckOut: hasColumn(columnMap, "check_out"),
			HasStatus:   hasColumn(columnMap, "status"),
			HasComment:  hasColumn(columnMap, "comment"),
			HasPhoto:    hasColumn(columnMap, "photo"),
		},
	}

	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if rowIsEmpty(row) {
			continue
		}
		sheet.Records = append(sheet.Records, domain.VisitRecord{
			DoctorName: cellAt(row, columnMap, "doctor"),
			VisitDate:  cellAt(row, columnMap, "date"),
			CheckIn:    cellAt(row, columnMap, "check_in"),
			CheckOut:   cellAt(row, columnMap, "check_out"),
			Status:     cellAt(row, columnMap, "status"),
			Comment:    cellAt(row, columnMap, "comment"),
			PhotoRef:   cellAt(row, columnMap, "photo"),
		})
	}

	slog.Info("Workbook parsed",
		slog.Int("record_count", len(sheet.Records)),
		slog.Bool("has_times", sheet.Schema.HasDuration()),
		slog.Bool("has_status", sheet.Schema.HasStatus))

	return sheet, nil
}

// findVisitSheet locates the sheet holding the visit log. The first sheet
// is the usual home, but exported copies sometimes carry extra tabs.
func findVisitSheet(f *excelize.File) ([][]string, string, error) {
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		for _, row := range rows {
			rowText := strings.ToLower(strings.Join(row, " "))
			if strings.Contains(rowText, "medico") || strings.Contains(rowText, "médico") {
				return rows, name, nil
			}
		}
	}
	return nil, "", errors.NewParsingError("could not find a sheet with visit data", nil)
}

// findHeaderRow scans for the header row and maps column positions from the
// Spanish header names. Accent variants are folded before matching.
func findHeaderRow(rows [][]string) (int, map[string]int) {
	for i, row := range rows {
		columnMap := make(map[string]int)
		for j, header := range row {
			h := strings.ToLower(strings.TrimSpace(header))
			if folded := NormalizeName(&h); folded != UnknownDoctorName {
				h = strings.ToLower(folded)
			}
			switch {
			case h == "medico" || h == "doctor" || strings.Contains(h, "nombre del medico"):
				columnMap["doctor"] = j
			case strings.Contains(h, "fecha"):
				columnMap["date"] = j
			case h == "ingreso" || h == "entrada" || strings.Contains(h, "check in"):
				columnMap["check_in"] = j
			case h == "salida" || strings.Contains(h, "check out"):
				columnMap["check_out"] = j
			case h == "estatus" || h == "estado" || h == "status":
				columnMap["status"] = j
			case strings.Contains(h, "comentario") || h == "comment":
				columnMap["comment"] = j
			case h == "foto" || h == "photo" || strings.Contains(h, "evidencia"):
				columnMap["photo"] = j
			}
		}
		if hasColumn(columnMap, "doctor") && hasColumn(columnMap, "date") {
			slog.Debug("Header row located",
				slog.Int("row_number", i),
				slog.Any("columns", columnMap))
			return i, columnMap
		}
	}
	return -1, nil
}

func hasColumn(columnMap map[string]int, name string) bool {
	_, ok := columnMap[name]
	return ok
}

// cellAt returns the trimmed cell for a mapped column, nil when the column
// is unmapped or the cell is blank. Trailing blank cells are absent from
// excelize rows, hence the length guard.
func cellAt(row []string, columnMap map[string]int, name string) *string {
	idx, ok := columnMap[name]
	if !ok || idx >= len(row) {
		return nil
	}
	value := row[idx]
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

func rowIsEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Describe summarizes the parsed sheet for log and error messages.
func Describe(sheet *domain.VisitSheet) string {
	return fmt.Sprintf("%d rows (times=%t status=%t comments=%t photos=%t)",
		len(sheet.Records),
		sheet.Schema.HasDuration(),
		sheet.Schema.HasStatus,
		sheet.Schema.HasComment,
		sheet.Schema.HasPhoto)
}
