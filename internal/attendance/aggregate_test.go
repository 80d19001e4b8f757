package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/crixfer/DIID-GS/internal/models"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func record(studentID, date string, status models.AttendanceStatus) models.AttendanceRecord {
	return models.AttendanceRecord{
		StudentID: studentID,
		QuarterID: "q1",
		Date:      day(date),
		Status:    status,
	}
}

func TestStudentStatsEmptySet(t *testing.T) {
	stats := StudentStats(nil, "stu-1")
	assert.Equal(t, 0, stats.TotalDays)
	assert.Equal(t, 0, stats.PresentDays)
	assert.Equal(t, 0.0, stats.Rate)
}

func TestStudentStatsEightOfTen(t *testing.T) {
	var records []models.AttendanceRecord
	dates := []string{"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07",
		"2025-03-10", "2025-03-11", "2025-03-12", "2025-03-13", "2025-03-14"}
	for i, d := range dates {
		status := models.AttendanceStatusPresent
		if i >= 8 {
			status = models.AttendanceStatusAbsent
		}
		records = append(records, record("stu-1", d, status))
	}

	stats := StudentStats(records, "stu-1")
	assert.Equal(t, 10, stats.TotalDays)
	assert.Equal(t, 8, stats.PresentDays)
	assert.Equal(t, 80.0, stats.Rate)
}

func TestStudentStatsRateRounding(t *testing.T) {
	records := []models.AttendanceRecord{
		record("stu-1", "2025-03-03", models.AttendanceStatusPresent),
		record("stu-1", "2025-03-04", models.AttendanceStatusPresent),
		record("stu-1", "2025-03-05", models.AttendanceStatusAbsent),
	}

	stats := StudentStats(records, "stu-1")
	assert.Equal(t, 66.7, stats.Rate)
}

func TestStudentStatsIgnoresOtherStudents(t *testing.T) {
	records := []models.AttendanceRecord{
		record("stu-1", "2025-03-03", models.AttendanceStatusPresent),
		record("stu-2", "2025-03-03", models.AttendanceStatusAbsent),
	}

	stats := StudentStats(records, "stu-1")
	assert.Equal(t, 1, stats.TotalDays)
	assert.Equal(t, 100.0, stats.Rate)
}

func TestDedupeKeepsLatestWrite(t *testing.T) {
	earlier := record("stu-1", "2025-03-03", models.AttendanceStatusAbsent)
	earlier.UpdatedAt = day("2025-03-03")
	later := record("stu-1", "2025-03-03", models.AttendanceStatusPresent)
	later.UpdatedAt = day("2025-03-04")

	deduped := Dedupe([]models.AttendanceRecord{earlier, later})
	assert.Len(t, deduped, 1)
	assert.Equal(t, models.AttendanceStatusPresent, deduped[0].Status)

	stats := StudentStats([]models.AttendanceRecord{earlier, later}, "stu-1")
	assert.Equal(t, 1, stats.TotalDays)
	assert.Equal(t, 1, stats.PresentDays)
}

func TestDailySnapshotCountsStatuses(t *testing.T) {
	records := []models.AttendanceRecord{
		record("stu-1", "2025-03-03", models.AttendanceStatusPresent),
		record("stu-2", "2025-03-03", models.AttendanceStatusPresent),
		record("stu-3", "2025-03-03", models.AttendanceStatusAbsent),
		record("stu-4", "2025-03-03", models.AttendanceStatusExcused),
		record("stu-5", "2025-03-03", models.AttendanceStatusLate),
		record("stu-1", "2025-03-04", models.AttendanceStatusAbsent),
	}

	snapshot := DailySnapshot(records, day("2025-03-03"))
	assert.Equal(t, 2, snapshot.Present)
	assert.Equal(t, 1, snapshot.Absent)
	assert.Equal(t, 1, snapshot.Excused)
	assert.Equal(t, 1, snapshot.Late)
}

func TestBreakdownPerStudent(t *testing.T) {
	records := []models.AttendanceRecord{
		record("stu-1", "2025-03-03", models.AttendanceStatusPresent),
		record("stu-1", "2025-03-04", models.AttendanceStatusLate),
		record("stu-1", "2025-03-05", models.AttendanceStatusPresent),
		record("stu-2", "2025-03-03", models.AttendanceStatusExcused),
	}

	breakdown := Breakdown(records)
	assert.Len(t, breakdown, 2)
	assert.Equal(t, 2, breakdown["stu-1"].Present)
	assert.Equal(t, 1, breakdown["stu-1"].Late)
	assert.Equal(t, 3, breakdown["stu-1"].Total)
	assert.Equal(t, 1, breakdown["stu-2"].Excused)
}
