package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"

	"visitascli/pkg/contracts/domain"
)

// Canonical status labels used for the visited/not-visited classification.
// Comparison is case-insensitive and exact; any other label ("reprogramado",
// free text) contributes to neither counter. The same rule drives the
// dashboard badges so aggregation and presentation never disagree.
const (
	StatusVisited    = "visitado"
	StatusNotVisited = "no visitado"
)

// AggregatorConfig holds the tunable knobs of report aggregation.
type AggregatorConfig struct {
	TopDoctorCount int // number of doctors in the ranking view
}

// DefaultAggregatorConfig returns the standard dashboard configuration.
func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{TopDoctorCount: 10}
}

// Aggregator builds the finalized ReportAggregate from cleaned visits.
// Grouping uses explicit key-to-accumulator maps with first-seen key order,
// so ties in every ranking break deterministically by source row order.
type Aggregator struct {
	logger *slog.Logger
	topN   int
}

// NewAggregator creates an aggregator with the given configuration.
func NewAggregator(logger *slog.Logger, config AggregatorConfig) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if config.TopDoctorCount <= 0 {
		config.TopDoctorCount = DefaultAggregatorConfig().TopDoctorCount
	}
	return &Aggregator{logger: logger, topN: config.TopDoctorCount}
}

// BuildReport computes KPIs and all groupings in one pass over the cleaned
// rows. The result is owned by the caller and never mutated afterwards.
func (a *Aggregator) BuildReport(ctx context.Context, visits []domain.CleanedVisit, schema domain.SheetSchema) *domain.ReportAggregate {
	a.logger.InfoContext(ctx, "building report aggregate",
		slog.Int("visit_count", len(visits)))

	report := &domain.ReportAggregate{
		TotalVisits:   len(visits),
		MonthlyCounts: a.monthlyCounts(visits),
		StatusCounts:  a.statusCounts(visits, schema),
	}

	report.AverageDurationMinutes = a.averageDuration(visits)
	report.AverageVisitsPerDay = a.averageVisitsPerDay(visits)

	report.Doctors = a.doctorAggregates(visits, schema)
	report.UniqueDoctorCount = len(report.Doctors)

	top := report.Doctors
	if len(top) > a.topN {
		top = top[:a.topN]
	}
	report.TopDoctors = top

	a.logger.InfoContext(ctx, "report aggregate built",
		slog.Int("unique_doctors", report.UniqueDoctorCount),
		slog.Int("months", len(report.MonthlyCounts)),
		slog.Int("statuses", len(report.StatusCounts)))

	return report
}

// monthlyCounts groups visits by year-month label, ascending. Months with
// zero visits are omitted, not zero-filled.
func (a *Aggregator) monthlyCounts(visits []domain.CleanedVisit) []domain.MonthlyCount {
	counts := make(map[string]int)
	for _, v := range visits {
		counts[v.Month]++
	}

	months := make([]string, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Strings(months)

	result := make([]domain.MonthlyCount, len(months))
	for i, m := range months {
		result[i] = domain.MonthlyCount{Month: m, Count: counts[m]}
	}
	return result
}

// statusCounts builds the status distribution with original casing
// preserved, sorted descending by count with first-seen tie-breaking.
// An absent status column degrades to an empty distribution.
func (a *Aggregator) statusCounts(visits []domain.CleanedVisit, schema domain.SheetSchema) []domain.StatusCount {
	if !schema.HasStatus {
		return []domain.StatusCount{}
	}

	counts := make(map[string]int)
	var order []string
	for _, v := range visits {
		if v.Status == nil {
			continue
		}
		if _, seen := counts[*v.Status]; !seen {
			order = append(order, *v.Status)
		}
		counts[*v.Status]++
	}

	result := make([]domain.StatusCount, len(order))
	for i, s := range order {
		result[i] = domain.StatusCount{Status: s, Count: counts[s]}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// doctorAggregates groups visits by normalized doctor name and returns the
// full ranking, descending by total visits.
func (a *Aggregator) doctorAggregates(visits []domain.CleanedVisit, schema domain.SheetSchema) []domain.DoctorAggregate {
	groups := make(map[string][]domain.CleanedVisit)
	var order []string
	for _, v := range visits {
		if _, seen := groups[v.DoctorName]; !seen {
			order = append(order, v.DoctorName)
		}
		groups[v.DoctorName] = append(groups[v.DoctorName], v)
	}

	doctors := make([]domain.DoctorAggregate, 0, len(order))
	for _, name := range order {
		doctors = append(doctors, a.buildDoctorAggregate(name, groups[name], schema))
	}

	sort.SliceStable(doctors, func(i, j int) bool {
		return doctors[i].TotalVisits > doctors[j].TotalVisits
	})
	return doctors
}

func (a *Aggregator) buildDoctorAggregate(name string, group []domain.CleanedVisit, schema domain.SheetSchema) domain.DoctorAggregate {
	agg := domain.DoctorAggregate{
		Name:        name,
		TotalVisits: len(group),
	}

	if schema.HasStatus {
		for _, v := range group {
			if v.Status == nil {
				continue
			}
			switch strings.ToLower(*v.Status) {
			case StatusVisited:
				agg.VisitedCount++
			case StatusNotVisited:
				agg.NotVisitedCount++
			}
		}
	}

	history := make([]domain.CleanedVisit, len(group))
	copy(history, group)
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].VisitDate.After(history[j].VisitDate)
	})
	agg.History = history
	agg.LastVisitDate = history[0].VisitDateString()

	return agg
}

// averageDuration is the mean of the non-null durations, one decimal,
// zero when no row carries a duration.
func (a *Aggregator) averageDuration(visits []domain.CleanedVisit) float64 {
	var sum float64
	var n int
	for _, v := range visits {
		if v.DurationMinutes != nil {
			sum += *v.DurationMinutes
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return round1(sum / float64(n))
}

// averageVisitsPerDay divides total visits by the count of distinct visit
// dates, one decimal, zero when no dates exist.
func (a *Aggregator) averageVisitsPerDay(visits []domain.CleanedVisit) float64 {
	days := make(map[string]struct{})
	for _, v := range visits {
		days[v.VisitDateString()] = struct{}{}
	}
	if len(days) == 0 {
		return 0
	}
	return round1(float64(len(visits)) / float64(len(days)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
