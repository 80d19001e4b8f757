// Package attendance aggregates raw attendance records into per-student and
// per-cohort figures. All functions are pure and operate over in-memory
// record sets; the (student, quarter, date) key is deduplicated first so a
// replaced mark never counts twice.
package attendance

import (
	"math"
	"time"

	"github.com/crixfer/DIID-GS/internal/models"
)

const dayKeyLayout = "2006-01-02"

type recordKey struct {
	studentID string
	quarterID string
	day       string
}

// Dedupe collapses records sharing a (student, quarter, date) key, keeping
// the most recently updated mark. Upstream storage upserts on the same key,
// so duplicates only appear when callers merge snapshots from different
// loads.
func Dedupe(records []models.AttendanceRecord) []models.AttendanceRecord {
	latest := make(map[recordKey]models.AttendanceRecord, len(records))
	order := make([]recordKey, 0, len(records))
	for _, record := range records {
		key := recordKey{
			studentID: record.StudentID,
			quarterID: record.QuarterID,
			day:       record.Date.Format(dayKeyLayout),
		}
		existing, seen := latest[key]
		if !seen {
			order = append(order, key)
			latest[key] = record
			continue
		}
		if !record.UpdatedAt.Before(existing.UpdatedAt) {
			latest[key] = record
		}
	}
	result := make([]models.AttendanceRecord, 0, len(latest))
	for _, key := range order {
		result = append(result, latest[key])
	}
	return result
}

// StudentStats computes the attendance summary for one student. An empty
// record set yields a zero rate rather than a division error.
func StudentStats(records []models.AttendanceRecord, studentID string) models.AttendanceStats {
	stats := models.AttendanceStats{}
	for _, record := range Dedupe(records) {
		if record.StudentID != studentID {
			continue
		}
		stats.TotalDays++
		if record.Status == models.AttendanceStatusPresent {
			stats.PresentDays++
		}
	}
	if stats.TotalDays == 0 {
		return stats
	}
	rate := float64(stats.PresentDays) / float64(stats.TotalDays) * 100
	stats.Rate = math.Round(rate*10) / 10
	return stats
}

// DailySnapshot tallies cohort statuses for a single date.
func DailySnapshot(records []models.AttendanceRecord, date time.Time) models.DailyAttendanceSnapshot {
	snapshot := models.DailyAttendanceSnapshot{Date: date}
	day := date.Format(dayKeyLayout)
	for _, record := range Dedupe(records) {
		if record.Date.Format(dayKeyLayout) != day {
			continue
		}
		switch record.Status {
		case models.AttendanceStatusPresent:
			snapshot.Present++
		case models.AttendanceStatusAbsent:
			snapshot.Absent++
		case models.AttendanceStatusExcused:
			snapshot.Excused++
		case models.AttendanceStatusLate:
			snapshot.Late++
		}
	}
	return snapshot
}

// Breakdown produces the per-status tally for every student in the record
// set, keyed by student id.
func Breakdown(records []models.AttendanceRecord) map[string]models.AttendanceBreakdown {
	result := make(map[string]models.AttendanceBreakdown)
	for _, record := range Dedupe(records) {
		entry := result[record.StudentID]
		entry.StudentID = record.StudentID
		entry.Total++
		switch record.Status {
		case models.AttendanceStatusPresent:
			entry.Present++
		case models.AttendanceStatusAbsent:
			entry.Absent++
		case models.AttendanceStatusExcused:
			entry.Excused++
		case models.AttendanceStatusLate:
			entry.Late++
		}
		result[record.StudentID] = entry
	}
	return result
}
