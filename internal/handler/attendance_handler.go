package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crixfer/DIID-GS/internal/service"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
	"github.com/crixfer/DIID-GS/pkg/response"
)

// AttendanceHandler exposes attendance endpoints.
type AttendanceHandler struct {
	service *service.AttendanceService
}

// NewAttendanceHandler constructs an attendance handler.
func NewAttendanceHandler(svc *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc}
}

func parseDay(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}

// Mark godoc
// @Summary Mark attendance for one student and day
// @Description Re-marking the same day replaces the stored status
// @Tags Attendance
// @Accept json
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Param payload body service.MarkAttendanceRequest true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Router /quarters/{quarterId}/attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req service.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.service.Mark(c.Request.Context(), c.Param("quarterId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// MarkBulk godoc
// @Summary Mark attendance for several students at once
// @Tags Attendance
// @Accept json
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Param payload body []service.MarkAttendanceRequest true "Attendance payloads"
// @Success 200 {object} response.Envelope
// @Router /quarters/{quarterId}/attendance/bulk [post]
func (h *AttendanceHandler) MarkBulk(c *gin.Context) {
	var reqs []service.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	saved, failures := h.service.MarkBulk(c.Request.Context(), c.Param("quarterId"), reqs)
	meta := map[string]interface{}{"saved": len(saved), "failed": len(failures)}
	if len(failures) > 0 {
		meta["failures"] = failures
	}
	response.JSON(c, http.StatusOK, saved, nil, meta)
}

// Unmark godoc
// @Summary Remove an attendance mark
// @Tags Attendance
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Param studentId path string true "Student ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 204
// @Router /quarters/{quarterId}/attendance/{studentId} [delete]
func (h *AttendanceHandler) Unmark(c *gin.Context) {
	day, err := parseDay(c.Query("date"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD"))
		return
	}
	if err := h.service.Unmark(c.Request.Context(), c.Param("quarterId"), c.Param("studentId"), day); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// StudentSummary godoc
// @Summary Attendance summary for one student
// @Tags Attendance
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /quarters/{quarterId}/attendance/{studentId}/summary [get]
func (h *AttendanceHandler) StudentSummary(c *gin.Context) {
	stats, err := h.service.StudentSummary(c.Request.Context(), c.Param("quarterId"), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// DailySnapshot godoc
// @Summary Cohort attendance tally for one date
// @Tags Attendance
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /quarters/{quarterId}/attendance/daily [get]
func (h *AttendanceHandler) DailySnapshot(c *gin.Context) {
	day, err := parseDay(c.Query("date"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD"))
		return
	}
	snapshot, err := h.service.DailySnapshot(c.Request.Context(), c.Param("quarterId"), day)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot, nil)
}

// History godoc
// @Summary Per-student attendance breakdown for the quarter
// @Tags Attendance
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Success 200 {object} response.Envelope
// @Router /quarters/{quarterId}/attendance/history [get]
func (h *AttendanceHandler) History(c *gin.Context) {
	breakdown, err := h.service.History(c.Request.Context(), c.Param("quarterId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, breakdown, nil)
}
