package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/crixfer/DIID-GS/internal/models"
	"github.com/crixfer/DIID-GS/internal/service"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
	"github.com/crixfer/DIID-GS/pkg/response"
)

// QuarterHandler exposes quarter lifecycle endpoints.
type QuarterHandler struct {
	service *service.QuarterService
}

// NewQuarterHandler constructs a quarter handler.
func NewQuarterHandler(svc *service.QuarterService) *QuarterHandler {
	return &QuarterHandler{service: svc}
}

// List godoc
// @Summary List quarters
// @Description List quarters with filters
// @Tags Quarters
// @Produce json
// @Param teacherId query string false "Filter by teacher"
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /quarters [get]
func (h *QuarterHandler) List(c *gin.Context) {
	var filter models.QuarterFilter
	filter.TeacherID = c.Query("teacherId")
	if status := c.Query("status"); status != "" {
		filter.Status = models.QuarterStatus(status)
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	quarters, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quarters, pagination)
}

// Get godoc
// @Summary Get quarter
// @Tags Quarters
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Success 200 {object} response.Envelope
// @Router /quarters/{quarterId} [get]
func (h *QuarterHandler) Get(c *gin.Context) {
	quarter, err := h.service.Get(c.Request.Context(), c.Param("quarterId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quarter, nil)
}

// GetActive godoc
// @Summary Get the teacher's active quarter
// @Tags Quarters
// @Produce json
// @Param teacherId query string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /quarters/active [get]
func (h *QuarterHandler) GetActive(c *gin.Context) {
	teacherID := c.Query("teacherId")
	if teacherID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "teacherId is required"))
		return
	}
	quarter, err := h.service.GetActive(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quarter, nil)
}

// Create godoc
// @Summary Create quarter
// @Tags Quarters
// @Accept json
// @Produce json
// @Param payload body service.CreateQuarterRequest true "Quarter payload"
// @Success 201 {object} response.Envelope
// @Router /quarters [post]
func (h *QuarterHandler) Create(c *gin.Context) {
	var req service.CreateQuarterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	quarter, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, quarter)
}

// Update godoc
// @Summary Update quarter
// @Tags Quarters
// @Accept json
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Param payload body service.UpdateQuarterRequest true "Quarter payload"
// @Success 200 {object} response.Envelope
// @Router /quarters/{quarterId} [put]
func (h *QuarterHandler) Update(c *gin.Context) {
	var req service.UpdateQuarterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	quarter, err := h.service.Update(c.Request.Context(), c.Param("quarterId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quarter, nil)
}

// Activate godoc
// @Summary Activate quarter
// @Description Make the quarter the teacher's single active one
// @Tags Quarters
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Success 200 {object} response.Envelope
// @Router /quarters/{quarterId}/activate [post]
func (h *QuarterHandler) Activate(c *gin.Context) {
	quarter, err := h.service.Activate(c.Request.Context(), c.Param("quarterId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quarter, nil)
}

// Delete godoc
// @Summary Delete quarter
// @Description Delete a quarter with its enrollments, grades, attendance and notes
// @Tags Quarters
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Success 200 {object} response.Envelope
// @Router /quarters/{quarterId} [delete]
func (h *QuarterHandler) Delete(c *gin.Context) {
	fallback, err := h.service.Delete(c.Request.Context(), c.Param("quarterId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"fallback": fallback}, nil)
}
