// Package dataprocessing implements the visit-log cleaning and aggregation
// pipeline: workbook parsing, doctor-name normalization, Spanish 12-hour
// time parsing, duration derivation, date filtering, and the report
// aggregation that feeds the dashboard.
//
// Malformed per-row input (unparseable dates or times, missing names) is
// expected noise in manually entered field data; those cases degrade to
// documented defaults instead of surfacing as errors. Only structural
// problems with the workbook itself are reported to the caller.
package dataprocessing
