package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crixfer/DIID-GS/internal/service"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
	"github.com/crixfer/DIID-GS/pkg/response"
)

// GradeHandler exposes grade endpoints.
type GradeHandler struct {
	service *service.GradeService
}

// NewGradeHandler constructs a grade handler.
func NewGradeHandler(svc *service.GradeService) *GradeHandler {
	return &GradeHandler{service: svc}
}

// ListByQuarter godoc
// @Summary List grades for a quarter
// @Tags Grades
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Success 200 {object} response.Envelope
// @Router /quarters/{quarterId}/grades [get]
func (h *GradeHandler) ListByQuarter(c *gin.Context) {
	grades, err := h.service.ListByQuarter(c.Request.Context(), c.Param("quarterId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grades, nil)
}

// Get godoc
// @Summary Get a student's grades
// @Tags Grades
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /quarters/{quarterId}/grades/{studentId} [get]
func (h *GradeHandler) Get(c *gin.Context) {
	grade, err := h.service.Get(c.Request.Context(), c.Param("quarterId"), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grade, nil)
}

// Save godoc
// @Summary Save a student's component scores
// @Description Persists the raw components and the recomputed total in one write
// @Tags Grades
// @Accept json
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Param studentId path string true "Student ID"
// @Param payload body service.SaveGradesRequest true "Component scores"
// @Success 200 {object} response.Envelope
// @Router /quarters/{quarterId}/grades/{studentId} [put]
func (h *GradeHandler) Save(c *gin.Context) {
	var req service.SaveGradesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	grade, err := h.service.Save(c.Request.Context(), c.Param("quarterId"), c.Param("studentId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grade, nil)
}

// Distribution godoc
// @Summary Letter grade distribution for a quarter
// @Tags Grades
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Success 200 {object} response.Envelope
// @Router /quarters/{quarterId}/grades/distribution [get]
func (h *GradeHandler) Distribution(c *gin.Context) {
	dist, err := h.service.Distribution(c.Request.Context(), c.Param("quarterId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dist, nil)
}

// Report godoc
// @Summary Grade report rows for a quarter
// @Tags Grades
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Success 200 {object} response.Envelope
// @Router /quarters/{quarterId}/grades/report [get]
func (h *GradeHandler) Report(c *gin.Context) {
	rows, err := h.service.Report(c.Request.Context(), c.Param("quarterId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}
