package domain

import (
	"encoding/json"
	"time"
)

// VisitRecord represents a single raw row from the visit log workbook.
// Optional columns are pointers so a missing cell and a missing column are
// both representable; the cleaning step decides how each case degrades.
type VisitRecord struct {
	DoctorName *string `json:"doctor_name"`
	VisitDate  *string `json:"visit_date"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Status     *string `json:"status,omitempty"`
	Comment    *string `json:"comment,omitempty"`
	PhotoRef   *string `json:"photo_reference,omitempty"`
}

// SheetSchema records which optional columns were present in the source
// sheet. Metrics depending on an absent column degrade to their documented
// defaults instead of failing the run.
type SheetSchema struct {
	HasCheckIn  bool `json:"has_check_in"`
	HasCheckOut bool `json:"has_check_out"`
	HasStatus   bool `json:"has_status"`
	HasComment  bool `json:"has_comment"`
	HasPhoto    bool `json:"has_photo"`
}

// HasDuration reports whether visit durations can be derived at all.
func (s SheetSchema) HasDuration() bool {
	return s.HasCheckIn && s.HasCheckOut
}

// VisitSheet is the raw row-set handed to the cleaning pipeline, in source
// row order.
type VisitSheet struct {
	Schema  SheetSchema   `json:"schema"`
	Records []VisitRecord `json:"records"`
}

// CleanedVisit is the per-row result of the cleaning pipeline. Every
// CleanedVisit has a parseable visit date within the reporting window;
// rows that fail that invariant never leave the filter.
type CleanedVisit struct {
	DoctorName      string    `json:"doctor_name"`
	VisitDate       time.Time `json:"-"`
	Month           string    `json:"month"`
	DurationMinutes *float64  `json:"duration_minutes"`
	Status          *string   `json:"status"`
	Comment         *string   `json:"comment"`
	PhotoRef        string    `json:"photo_reference"`
}

// VisitDateString returns the visit date in the canonical wire format.
func (v CleanedVisit) VisitDateString() string {
	return v.VisitDate.Format("2006-01-02")
}

// MarshalJSON emits the visit date as a plain "YYYY-MM-DD" string rather
// than the RFC 3339 form time.Time would produce.
func (v CleanedVisit) MarshalJSON() ([]byte, error) {
	type alias CleanedVisit
	return json.Marshal(struct {
		alias
		VisitDate string `json:"visit_date"`
	}{
		alias:     alias(v),
		VisitDate: v.VisitDateString(),
	})
}
