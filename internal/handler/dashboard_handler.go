package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crixfer/DIID-GS/internal/service"
	"github.com/crixfer/DIID-GS/pkg/response"
)

// DashboardHandler exposes overview endpoints.
type DashboardHandler struct {
	service *service.DashboardService
	metrics *service.MetricsService
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(svc *service.DashboardService, metrics *service.MetricsService) *DashboardHandler {
	return &DashboardHandler{service: svc, metrics: metrics}
}

// Overview godoc
// @Summary Quarter overview figures
// @Tags Dashboard
// @Produce json
// @Param quarterId path string true "Quarter ID"
// @Success 200 {object} response.Envelope
// @Router /quarters/{quarterId}/dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context(), c.Param("quarterId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}

// System godoc
// @Summary Runtime metrics snapshot
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/system [get]
func (h *DashboardHandler) System(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}
