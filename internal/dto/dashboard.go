package dto

import (
	"time"

	"github.com/crixfer/DIID-GS/internal/models"
)

// DashboardOverview aggregates the headline figures for the selected quarter.
type DashboardOverview struct {
	Quarter         *models.Quarter                `json:"quarter"`
	EnrolledCount   int                            `json:"enrolled_count"`
	AverageScore    float64                        `json:"average_score"`
	Distribution    models.GradeDistribution       `json:"distribution"`
	TodayAttendance models.DailyAttendanceSnapshot `json:"today_attendance"`
	GeneratedAt     time.Time                      `json:"generated_at"`
}
