package domain

// MonthlyCount is one (year-month, count) entry of the monthly series.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// StatusCount is one (status, count) entry of the status distribution.
// The status keeps its original casing from the source sheet.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DoctorAggregate holds everything the report needs about one doctor.
// Built once per report generation and never mutated afterwards.
type DoctorAggregate struct {
	Name            string         `json:"name"`
	TotalVisits     int            `json:"total_visits"`
	VisitedCount    int            `json:"visited_count"`
	NotVisitedCount int            `json:"not_visited_count"`
	LastVisitDate   string         `json:"last_visit_date"`
	History         []CleanedVisit `json:"history"`
}

// ReportAggregate is the finalized analytics structure consumed by the
// presentation layer. All sequences carry their documented ordering:
// monthly ascending by label, statuses descending by count, doctors
// descending by total visits.
type ReportAggregate struct {
	TotalVisits            int               `json:"total_visits"`
	UniqueDoctorCount      int               `json:"unique_doctor_count"`
	AverageDurationMinutes float64           `json:"average_duration_minutes"`
	AverageVisitsPerDay    float64           `json:"average_visits_per_day"`
	MonthlyCounts          []MonthlyCount    `json:"monthly_counts"`
	StatusCounts           []StatusCount     `json:"status_counts"`
	TopDoctors             []DoctorAggregate `json:"top_doctors"`
	Doctors                []DoctorAggregate `json:"doctors"`
}

// MonthlyLabels returns the month labels in series order, for chart axes.
func (r *ReportAggregate) MonthlyLabels() []string {
	labels := make([]string, len(r.MonthlyCounts))
	for i, m := range r.MonthlyCounts {
		labels[i] = m.Month
	}
	return labels
}

// MonthlyData returns the monthly visit counts in series order.
func (r *ReportAggregate) MonthlyData() []int {
	data := make([]int, len(r.MonthlyCounts))
	for i, m := range r.MonthlyCounts {
		data[i] = m.Count
	}
	return data
}

// StatusLabels returns the status labels in distribution order.
func (r *ReportAggregate) StatusLabels() []string {
	labels := make([]string, len(r.StatusCounts))
	for i, s := range r.StatusCounts {
		labels[i] = s.Status
	}
	return labels
}

// StatusData returns the status counts in distribution order.
func (r *ReportAggregate) StatusData() []int {
	data := make([]int, len(r.StatusCounts))
	for i, s := range r.StatusCounts {
		data[i] = s.Count
	}
	return data
}

// TopDoctorLabels returns the ranked doctor names for the top-doctors chart.
func (r *ReportAggregate) TopDoctorLabels() []string {
	labels := make([]string, len(r.TopDoctors))
	for i, d := range r.TopDoctors {
		labels[i] = d.Name
	}
	return labels
}

// TopDoctorData returns the ranked doctors' total visit counts.
func (r *ReportAggregate) TopDoctorData() []int {
	data := make([]int, len(r.TopDoctors))
	for i, d := range r.TopDoctors {
		data[i] = d.TotalVisits
	}
	return data
}

// TopDoctorVisited returns the ranked doctors' visited counts.
func (r *ReportAggregate) TopDoctorVisited() []int {
	data := make([]int, len(r.TopDoctors))
	for i, d := range r.TopDoctors {
		data[i] = d.VisitedCount
	}
	return data
}

// TopDoctorNotVisited returns the ranked doctors' not-visited counts.
func (r *ReportAggregate) TopDoctorNotVisited() []int {
	data := make([]int, len(r.TopDoctors))
	for i, d := range r.TopDoctors {
		data[i] = d.NotVisitedCount
	}
	return data
}
