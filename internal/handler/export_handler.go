package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/crixfer/DIID-GS/internal/service"
	"github.com/crixfer/DIID-GS/pkg/response"
)

// ExportHandler exposes spreadsheet and PDF export endpoints.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler constructs an export handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

func (h *ExportHandler) send(c *gin.Context, result *service.ExportResult, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(200, result.ContentType, result.Data)
}

// Roster godoc
// @Summary Export the quarter roster
// @Tags Exports
// @Produce text/csv
// @Param quarterId path string true "Quarter ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /quarters/{quarterId}/exports/roster [get]
func (h *ExportHandler) Roster(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.service.Roster(c.Request.Context(), c.Param("quarterId"), format)
	h.send(c, result, err)
}

// Grades godoc
// @Summary Export the quarter grade sheet
// @Tags Exports
// @Produce text/csv
// @Param quarterId path string true "Quarter ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /quarters/{quarterId}/exports/grades [get]
func (h *ExportHandler) Grades(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.service.Grades(c.Request.Context(), c.Param("quarterId"), format)
	h.send(c, result, err)
}

// Attendance godoc
// @Summary Export the quarter attendance sheet
// @Tags Exports
// @Produce text/csv
// @Param quarterId path string true "Quarter ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /quarters/{quarterId}/exports/attendance [get]
func (h *ExportHandler) Attendance(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.service.Attendance(c.Request.Context(), c.Param("quarterId"), format)
	h.send(c, result, err)
}
