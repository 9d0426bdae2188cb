package dataprocessing

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"visitascli/pkg/contracts/domain"
)

// MinVisitYear is the lower bound of the reporting window. Rows dated
// before it are dropped during cleaning.
const MinVisitYear = 2024

// visitDateLayouts are tried in order when coercing free-text dates.
// Day-first forms come before month-first ones because the source sheets
// are Spanish-locale.
var visitDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02/01/2006 15:04",
	"02/01/06",
}

// Cleaner turns the raw row-set into the CleanedVisit sequence, applying
// the name, time, and date normalization policies. It owns no state beyond
// its logger; Clean is safe to call once per report generation.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a cleaner with the given logger.
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger}
}

// Clean filters and normalizes the raw rows. Rows with unparseable or
// out-of-window dates are dropped silently; absent optional columns degrade
// the dependent fields and are logged once as a degraded-but-successful run.
func (c *Cleaner) Clean(ctx context.Context, sheet *domain.VisitSheet) []domain.CleanedVisit {
	c.logger.InfoContext(ctx, "cleaning visit rows",
		slog.Int("row_count", len(sheet.Records)))

	if !sheet.Schema.HasDuration() {
		c.logger.WarnContext(ctx, "check-in/check-out columns absent; durations degrade to null")
	}
	if !sheet.Schema.HasStatus {
		c.logger.WarnContext(ctx, "status column absent; status metrics degrade to empty")
	}

	cleaned := make([]domain.CleanedVisit, 0, len(sheet.Records))
	var droppedNoDate, droppedOldDate int

	for _, rec := range sheet.Records {
		date, ok := parseVisitDate(rec.VisitDate)
		if !ok {
			droppedNoDate++
			continue
		}
		if date.Year() < MinVisitYear {
			droppedOldDate++
			continue
		}

		visit := domain.CleanedVisit{
			DoctorName: NormalizeName(rec.DoctorName),
			VisitDate:  date,
			Month:      date.Format("2006-01"),
			Status:     rec.Status,
			Comment:    rec.Comment,
			PhotoRef:   normalizePhoto(rec.PhotoRef),
		}
		if sheet.Schema.HasDuration() {
			visit.DurationMinutes = VisitDuration(rec.CheckIn, rec.CheckOut)
		}
		cleaned = append(cleaned, visit)
	}

	c.logger.InfoContext(ctx, "cleaning complete",
		slog.Int("kept", len(cleaned)),
		slog.Int("dropped_unparseable_date", droppedNoDate),
		slog.Int("dropped_before_window", droppedOldDate))

	return cleaned
}

// parseVisitDate coerces a raw cell into a calendar date. It accepts the
// known text layouts plus Excel serial numbers; everything else is noise.
func parseVisitDate(raw *string) (time.Time, bool) {
	if raw == nil {
		return time.Time{}, false
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range visitDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	// Excel stores dates as day counts since the 1900 epoch; unformatted
	// cells surface that serial as plain text.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func normalizePhoto(raw *string) string {
	if raw == nil {
		return ""
	}
	return strings.TrimSpace(*raw)
}
